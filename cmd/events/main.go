package main

import (
	"context"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"mealmaster.app/planner/internal/config"
	"mealmaster.app/planner/internal/dynamodb/audits"
	"mealmaster.app/planner/internal/dynamodb/token"
	"mealmaster.app/planner/internal/dynamodb/users"
	"mealmaster.app/planner/internal/events"
	"mealmaster.app/planner/internal/log"
)

type StreamHandler struct {
	Handlers []events.EventFilter
}

// HandleRequest applies every matching handler to every record. A failed
// record is logged and the rest of the batch still runs.
func (sh *StreamHandler) HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	for _, record := range event.Records {
		for _, handler := range sh.Handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				log.WithFields(log.Fields{
					"event_id":   record.EventID,
					"event_name": record.EventName,
				}).WithError(err).Error("Failed to handle stream record")
				break
			}
		}
	}
	return nil
}

func main() {
	cfg, err := config.LoadFor((*config.Config).ValidateStorage)
	if err != nil {
		log.WithError(err).Fatal("Failed to load stream config")
	}
	if err := log.Init(cfg.Logging); err != nil {
		log.WithError(err).Fatal("Failed to configure logging")
	}
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.WithError(err).Fatal("Failed to load AWS config")
	}
	client := dynamodb.NewFromConfig(awsCfg)
	marshaler := token.NewGCM(cfg.Security.JWTSecret)
	tableName := cfg.Storage.TableName
	handler := &StreamHandler{
		Handlers: []events.EventFilter{
			events.DefaultUserHandler(users.NewUserService(tableName, client, marshaler)),
			events.DefaultAuditHandler(audits.NewAuditService(tableName, client, marshaler)),
		},
	}
	lambda.Start(handler.HandleRequest)
}
