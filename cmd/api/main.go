package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"mealmaster.app/planner/internal/app"
	"mealmaster.app/planner/internal/config"
	"mealmaster.app/planner/internal/log"
	"mealmaster.app/planner/internal/notifications"
	"mealmaster.app/planner/internal/routes"
	sesServices "mealmaster.app/planner/internal/ses/services"
	snsServices "mealmaster.app/planner/internal/sns/services"
)

type App struct {
	Router *routes.Router
}

func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := log.Init(cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	var notifier notifications.ResetNotifier
	switch cfg.Reset.Delivery {
	case config.DELIVERY_SNS:
		notifier = &snsServices.NotificationSNSService{
			Sns:         sns.NewFromConfig(awsCfg),
			TopicArn:    cfg.Reset.TopicArn,
			RelaySecret: cfg.Reset.RelaySecret,
		}
	default:
		notifier = &sesServices.ResetMailerSESService{
			Ses:    ses.NewFromConfig(awsCfg),
			Source: cfg.Reset.SESEmail,
		}
	}
	services := app.NewServices(cfg, dynamodb.NewFromConfig(awsCfg), notifier)
	return &App{
		Router: app.NewRouter(services),
	}, nil
}

func (a *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return a.Router.Invoke(request, ctx), nil
}

func main() {
	api, err := NewApp(context.Background())
	if err != nil {
		log.WithError(err).Fatal("Failed to start the API")
	}
	lambda.Start(api.HandleRequest)
}
