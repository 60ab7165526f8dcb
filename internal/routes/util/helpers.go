package util

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/auth"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/exceptions"
	"mealmaster.app/planner/internal/routes"
	"mealmaster.app/planner/internal/routes/filters"
)

const MISSING_TOKEN = "No token, authorization denied"

// AuthorizedRoute only runs the route when the request carries a verified
// identity.
func AuthorizedRoute(route routes.Route) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		if _, ok := auth.FromContext(ctx); ok {
			return route(event, ctx)
		}
		if err := filters.AuthError(ctx); err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.Unauthenticated(MISSING_TOKEN)
	}
}

// UserId is only meaningful inside an AuthorizedRoute.
func UserId(ctx context.Context) string {
	identity, _ := auth.FromContext(ctx)
	return identity.UserId
}

func RequestParam(ctx context.Context, name string) string {
	return routes.Params(ctx)[name]
}

func DecodeBody[T interface{}](event events.APIGatewayV2HTTPRequest) (T, error) {
	var input T
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return input, exceptions.InvalidInput("Request body is not valid base64")
		}
		body = decoded
	}
	if len(body) == 0 {
		return input, exceptions.InvalidInput("Request body is required")
	}
	if err := json.Unmarshal(body, &input); err != nil {
		return input, exceptions.InvalidInput(err.Error())
	}
	return input, nil
}

func QueryParams(event events.APIGatewayV2HTTPRequest) (data.QueryParams, error) {
	var params data.QueryParams
	if sLimit, ok := event.QueryStringParameters["limit"]; ok {
		limit, err := strconv.Atoi(sLimit)
		if err != nil {
			return params, exceptions.InvalidInput("Limit parameter was not a number type.")
		}
		params.Limit = limit
	}
	// nextToken goes out as a JSON []byte, so it comes back base64 wrapped
	if token, ok := event.QueryStringParameters["nextToken"]; ok && token != "" {
		if decoded, err := base64.StdEncoding.DecodeString(token); err == nil {
			params.NextToken = decoded
		} else {
			params.NextToken = []byte(token)
		}
	}
	return params, nil
}

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

func SerializeResponseCreated[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 201)
}

func AsIs[T interface{}](thing T) T {
	return thing
}

type Message struct {
	Message string `json:"message"`
}

func SerializeMessage(message string, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponseOK(AsIs[Message], Message{Message: message}, err)
}

func SerializeResponseNoContent(err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 204,
	}, nil
}

func ConvertQueryResults[D interface{}, R interface{}](items data.QueryResults[D], thunk func(D) R) data.QueryResults[R] {
	if items.Items != nil {
		newItems := make([]R, len(items.Items))
		for i, rd := range items.Items {
			newItems[i] = thunk(rd)
		}
		return data.QueryResults[R]{
			Items:     newItems,
			NextToken: items.NextToken,
		}
	}
	return data.QueryResults[R]{
		Items: make([]R, 0),
	}
}

func ConvertQueryResultsPartial[D interface{}, R interface{}](thunk func(D) R) func(data.QueryResults[D]) data.QueryResults[R] {
	return func(d data.QueryResults[D]) data.QueryResults[R] {
		return ConvertQueryResults(d, thunk)
	}
}
