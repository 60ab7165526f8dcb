package routes

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"golang.org/x/exp/slices"
	"mealmaster.app/planner/internal/exceptions"
	"mealmaster.app/planner/internal/log"
	"mealmaster.app/planner/internal/routes/filters"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

type paramsKey struct{}

// Params returns the path parameters captured for the matched route.
func Params(ctx context.Context) map[string]string {
	if params, ok := ctx.Value(paramsKey{}).(map[string]string); ok {
		return params
	}
	return map[string]string{}
}

func WithParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}

var namex = regexp.MustCompile(":[^/]+")

type CachedMatcher struct {
	Matcher    *regexp.Regexp
	ParamNames []string
}

func NewMatcher(path string) *CachedMatcher {
	matcher := &CachedMatcher{}
	regexPath := namex.ReplaceAllStringFunc(path, func(found string) string {
		matcher.ParamNames = append(matcher.ParamNames, found[1:])
		return "([^/]+)"
	})
	matcher.Matcher = regexp.MustCompile("^" + regexPath + "$")
	return matcher
}

type CachedRoute struct {
	Method  string
	Path    string
	Route   Route
	Matcher *CachedMatcher
}

func (cr *CachedRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	params := make(map[string]string, len(cr.Matcher.ParamNames))
	if event.RawPath == cr.Path {
		return params, true
	}
	values := cr.Matcher.Matcher.FindStringSubmatch(event.RawPath)
	if values == nil {
		return nil, false
	}
	for i, p := range cr.Matcher.ParamNames {
		params[p] = values[i+1]
	}
	return params, true
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []CachedRoute
	Logger  *log.Logger
}

// NewRouter flattens every service into one route table. Static paths are
// tried before parameterized ones so "/recipes/search" style routes never
// get swallowed by "/recipes/:id".
func NewRouter(fltrs []filters.RequestFilter, services ...Service) *Router {
	var routes []CachedRoute
	for _, service := range services {
		for composite, route := range service.GetRoutes() {
			parts := strings.SplitN(composite, ":", 2)
			routes = append(routes, CachedRoute{
				Method:  parts[0],
				Path:    parts[1],
				Route:   route,
				Matcher: NewMatcher(parts[1]),
			})
		}
	}
	slices.SortStableFunc(routes, func(a, b CachedRoute) int {
		if len(a.Matcher.ParamNames) != len(b.Matcher.ParamNames) {
			return len(a.Matcher.ParamNames) - len(b.Matcher.ParamNames)
		}
		if a.Path != b.Path {
			return strings.Compare(a.Path, b.Path)
		}
		return strings.Compare(a.Method, b.Method)
	})
	return &Router{
		Routes:  routes,
		Filters: fltrs,
		Logger:  log.Default(),
	}
}

type errorBody struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (r *Router) translateError(event events.APIGatewayV2HTTPRequest, err error) events.APIGatewayV2HTTPResponse {
	statusCode := 500
	body := errorBody{Message: "Server error"}
	var re exceptions.RequestError
	var se *exceptions.ServiceError
	if errors.As(err, &re) {
		statusCode = re.ToServiceError().StatusCode
	} else if errors.As(err, &se) {
		statusCode = se.StatusCode
	}
	if statusCode < 500 {
		body.Message = err.Error()
		var ie *exceptions.InvalidInputError
		if errors.As(err, &ie) {
			body.Fields = ie.Fields
		}
	} else {
		r.Logger.WithFields(log.Fields{
			"method":     event.RequestContext.HTTP.Method,
			"path":       event.RawPath,
			"request_id": event.RequestContext.RequestID,
		}).WithError(err).Error("Request failed")
	}
	payload, _ := json.Marshal(body)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(payload),
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"Content-Length": strconv.Itoa(len(payload)),
		},
	}
}

func (r *Router) _dispatch(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			resp, err := route.Route(*filterContext.Request, WithParams(filterContext.Context, params))
			if err != nil {
				return filters.ApplyHeaders(filterContext, r.translateError(event, err))
			}
			return filters.ApplyHeaders(filterContext, resp)
		}
	}
	return filters.ApplyHeaders(filterContext, r.translateError(event, exceptions.NotFound("route", event.RawPath)))
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	start := time.Now()
	resp := r._dispatch(event, ctx)
	r.Logger.LogRequest(
		event.RequestContext.HTTP.Method,
		event.RawPath,
		event.RequestContext.RequestID,
		resp.StatusCode,
		time.Since(start).Milliseconds(),
	)
	return resp
}
