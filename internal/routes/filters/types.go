package filters

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/auth"
)

type FilterContext struct {
	Request  *events.APIGatewayV2HTTPRequest
	Response *events.APIGatewayV2HTTPResponse
	Context  context.Context
}

type RequestFilter interface {
	Filter(ctx *FilterContext) (*FilterContext, bool)
}

// ApplyHeaders copies headers collected by the filters onto a route response
// without clobbering anything the route set itself.
func ApplyHeaders(ctx *FilterContext, resp events.APIGatewayV2HTTPResponse) events.APIGatewayV2HTTPResponse {
	if len(ctx.Response.Headers) == 0 {
		return resp
	}
	if resp.Headers == nil {
		resp.Headers = make(map[string]string, len(ctx.Response.Headers))
	}
	for name, value := range ctx.Response.Headers {
		if _, ok := resp.Headers[name]; !ok {
			resp.Headers[name] = value
		}
	}
	return resp
}

type CorsFilter struct {
	Methods []string
	Origins []string
	Headers []string
}

func (cf *CorsFilter) Filter(ctx *FilterContext) (*FilterContext, bool) {
	headers := ctx.Response.Headers
	if headers == nil {
		headers = make(map[string]string, 4)
	}
	headers["access-control-allow-origin"] = strings.Join(cf.Origins, ", ")
	if ctx.Request.RequestContext.HTTP.Method == "OPTIONS" {
		headers["content-length"] = "0"
		headers["access-control-allow-headers"] = strings.Join(cf.Headers, ", ")
		headers["access-control-allow-methods"] = strings.Join(cf.Methods, ", ")
		return &FilterContext{
			Request: ctx.Request,
			Context: ctx.Context,
			Response: &events.APIGatewayV2HTTPResponse{
				Headers:    headers,
				StatusCode: ctx.Response.StatusCode,
			},
		}, true
	}
	ctx.Response.Headers = headers
	return ctx, false
}

type authErrorKey struct{}

// AuthError reports why a presented credential was rejected, if one was.
func AuthError(ctx context.Context) error {
	if err, ok := ctx.Value(authErrorKey{}).(error); ok {
		return err
	}
	return nil
}

// AuthenticationFilter resolves the caller identity from either a bearer
// token or the context left behind by the Lambda authorizer. Routes decide
// for themselves whether an identity is required.
type AuthenticationFilter struct {
	Tokens     auth.TokenIssuer
	ClaimField string
}

func BearerToken(headers map[string]string) (string, bool) {
	for name, value := range headers {
		if !strings.EqualFold(name, "authorization") {
			continue
		}
		parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return strings.TrimSpace(parts[1]), true
		}
	}
	return "", false
}

func (af *AuthenticationFilter) _authorizerIdentity(request *events.APIGatewayV2HTTPRequest) (auth.Identity, bool) {
	authorizer := request.RequestContext.Authorizer
	if authorizer == nil || authorizer.Lambda == nil {
		return auth.Identity{}, false
	}
	if userId, ok := authorizer.Lambda[af.ClaimField].(string); ok && userId != "" {
		return auth.Identity{UserId: userId}, true
	}
	return auth.Identity{}, false
}

func (af *AuthenticationFilter) Filter(ctx *FilterContext) (*FilterContext, bool) {
	if identity, ok := af._authorizerIdentity(ctx.Request); ok {
		ctx.Context = auth.WithIdentity(ctx.Context, identity)
		return ctx, false
	}
	token, ok := BearerToken(ctx.Request.Headers)
	if !ok || af.Tokens == nil {
		return ctx, false
	}
	identity, err := af.Tokens.Verify(token)
	if err != nil {
		ctx.Context = context.WithValue(ctx.Context, authErrorKey{}, err)
		return ctx, false
	}
	ctx.Context = auth.WithIdentity(ctx.Context, identity)
	return ctx, false
}

func DefaultFilterContext(event events.APIGatewayV2HTTPRequest, ctx context.Context) *FilterContext {
	return &FilterContext{
		Request: &event,
		Response: &events.APIGatewayV2HTTPResponse{
			StatusCode: 200,
		},
		Context: ctx,
	}
}

func DefaultCorsFilter(origin string) *CorsFilter {
	methods := [5]string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}
	headers := [3]string{"Content-Type", "Content-Length", "Authorization"}
	if origin == "" {
		origin = "*"
	}
	return &CorsFilter{
		Methods: methods[:],
		Headers: headers[:],
		Origins: []string{origin},
	}
}

func DefaultAuthenticationFilter(tokens auth.TokenIssuer) *AuthenticationFilter {
	return &AuthenticationFilter{
		Tokens:     tokens,
		ClaimField: "userId",
	}
}
