package filters_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/auth"
	"mealmaster.app/planner/internal/routes/filters"
)

func request(method string, headers map[string]string) events.APIGatewayV2HTTPRequest {
	event := events.APIGatewayV2HTTPRequest{
		RawPath: "/recipes",
		Headers: headers,
	}
	event.RequestContext.HTTP.Method = method
	return event
}

func TestCorsFilter(t *testing.T) {
	cors := filters.DefaultCorsFilter("")
	t.Run("Passthrough", func(t *testing.T) {
		ctx, broken := cors.Filter(filters.DefaultFilterContext(request("GET", nil), context.TODO()))
		if broken {
			t.Fatal("Expected GET to continue to the route")
		}
		resp := filters.ApplyHeaders(ctx, events.APIGatewayV2HTTPResponse{
			StatusCode: 200,
			Headers:    map[string]string{"Content-Type": "application/json"},
		})
		if resp.Headers["access-control-allow-origin"] != "*" || resp.Headers["Content-Type"] != "application/json" {
			t.Fatalf("Unexpected headers %v", resp.Headers)
		}
	})

	t.Run("Preflight", func(t *testing.T) {
		ctx, broken := cors.Filter(filters.DefaultFilterContext(request("OPTIONS", nil), context.TODO()))
		if !broken {
			t.Fatal("Expected OPTIONS to short circuit")
		}
		if ctx.Response.StatusCode != 200 || ctx.Response.Headers["access-control-allow-methods"] != "GET, PUT, POST, DELETE, OPTIONS" {
			t.Fatalf("Unexpected preflight %v", ctx.Response)
		}
	})

	t.Run("Origin", func(t *testing.T) {
		ctx, _ := filters.DefaultCorsFilter("https://mealmaster.app").Filter(filters.DefaultFilterContext(request("GET", nil), context.TODO()))
		if origin := ctx.Response.Headers["access-control-allow-origin"]; origin != "https://mealmaster.app" {
			t.Fatalf("Expected configured origin, got %s", origin)
		}
	})
}

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		headers map[string]string
		token   string
		ok      bool
	}{
		"missing":  {headers: map[string]string{}},
		"lower":    {headers: map[string]string{"authorization": "Bearer abc"}, token: "abc", ok: true},
		"mixed":    {headers: map[string]string{"Authorization": "bearer  abc "}, token: "abc", ok: true},
		"basic":    {headers: map[string]string{"authorization": "Basic abc"}},
		"no token": {headers: map[string]string{"authorization": "Bearer"}},
	}
	for name, c := range cases {
		token, ok := filters.BearerToken(c.headers)
		if ok != c.ok || token != c.token {
			t.Errorf("%s: expected (%q, %t), got (%q, %t)", name, c.token, c.ok, token, ok)
		}
	}
}

func TestAuthenticationFilter(t *testing.T) {
	issuer := auth.NewJWTIssuer("filter-secret")
	authFilter := filters.DefaultAuthenticationFilter(issuer)

	t.Run("Anonymous", func(t *testing.T) {
		ctx, broken := authFilter.Filter(filters.DefaultFilterContext(request("GET", nil), context.TODO()))
		if broken {
			t.Fatal("Expected anonymous requests to continue")
		}
		if _, ok := auth.FromContext(ctx.Context); ok {
			t.Fatal("Expected no identity")
		}
		if err := filters.AuthError(ctx.Context); err != nil {
			t.Fatalf("Expected no auth error, got %v", err)
		}
	})

	t.Run("Bearer", func(t *testing.T) {
		token, err := issuer.Issue("user-1", time.Hour)
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}
		ctx, _ := authFilter.Filter(filters.DefaultFilterContext(request("GET", map[string]string{
			"authorization": "Bearer " + token,
		}), context.TODO()))
		identity, ok := auth.FromContext(ctx.Context)
		if !ok || identity.UserId != "user-1" {
			t.Fatalf("Expected user-1, got %v", identity)
		}
	})

	t.Run("InvalidBearer", func(t *testing.T) {
		ctx, broken := authFilter.Filter(filters.DefaultFilterContext(request("GET", map[string]string{
			"authorization": "Bearer garbage",
		}), context.TODO()))
		if broken {
			t.Fatal("Expected the route to decide on invalid tokens")
		}
		if _, ok := auth.FromContext(ctx.Context); ok {
			t.Fatal("Expected no identity for an invalid token")
		}
		if err := filters.AuthError(ctx.Context); err == nil {
			t.Fatal("Expected the verification failure to be kept")
		}
	})

	t.Run("Authorizer", func(t *testing.T) {
		event := request("GET", map[string]string{"authorization": "Bearer garbage"})
		event.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
			Lambda: map[string]interface{}{"userId": "user-2"},
		}
		ctx, _ := authFilter.Filter(filters.DefaultFilterContext(event, context.TODO()))
		identity, ok := auth.FromContext(ctx.Context)
		if !ok || identity.UserId != "user-2" {
			t.Fatalf("Expected the authorizer identity, got %v", identity)
		}
	})
}
