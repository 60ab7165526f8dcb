package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"mealmaster.app/planner/internal/auth"
	"mealmaster.app/planner/internal/config"
	"mealmaster.app/planner/internal/log"
	"mealmaster.app/planner/internal/routes/filters"
)

type Authorizer struct {
	Tokens auth.TokenIssuer
	Logger *log.Logger
}

// HandleRequest never errors: a rejected token is an unauthorized response,
// not a failed invocation.
func (a *Authorizer) HandleRequest(ctx context.Context, event events.APIGatewayV2CustomAuthorizerV2Request) (events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	response := events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: false,
	}
	token, ok := filters.BearerToken(event.Headers)
	if !ok {
		return response, nil
	}
	identity, err := a.Tokens.Verify(token)
	if err != nil {
		a.Logger.LogAuth("", "authorize", false)
		return response, nil
	}
	return events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: true,
		Context: map[string]interface{}{
			"userId": identity.UserId,
		},
	}, nil
}

func main() {
	cfg, err := config.LoadFor((*config.Config).ValidateSecurity)
	if err != nil {
		log.WithError(err).Fatal("Failed to load authorizer config")
	}
	if err := log.Init(cfg.Logging); err != nil {
		log.WithError(err).Fatal("Failed to configure logging")
	}
	authorizer := &Authorizer{
		Tokens: auth.NewJWTIssuer(cfg.Security.JWTSecret),
		Logger: log.Default(),
	}
	lambda.Start(authorizer.HandleRequest)
}
