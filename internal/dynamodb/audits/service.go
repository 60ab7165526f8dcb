package audits

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/dynamodb/services"
	"mealmaster.app/planner/internal/dynamodb/token"
)

func NewAuditItem(aid data.AuditInputDTO, t time.Time, pk, sk string) data.AuditDTO {
	return data.AuditDTO{
		PK:           pk,
		SK:           sk,
		ResourceId:   *aid.ResourceId,
		ResourceType: *aid.ResourceType,
		Action:       *aid.Action,
		Message:      *aid.Message,
		ExpiresIn:    aid.ExpiresIn,
		CreateTime:   t,
		UpdateTime:   t,
	}
}

func NewAuditService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.AuditRepository {
	return &services.RepositoryDynamoDBService[data.AuditDTO, data.AuditInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Audit",
		Shim: func(pk, sk string) data.AuditDTO {
			return data.AuditDTO{PK: pk, SK: sk}
		},
		OnCreate: NewAuditItem,
	}
}
