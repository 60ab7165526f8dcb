package resettokens

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/dynamodb/services"
	"mealmaster.app/planner/internal/dynamodb/token"
)

// Reset tokens are keyed by the digest of the value mailed to the user and
// carry a TTL attribute so the table reaps the ones nobody consumed.
type ResetTokenDynamoDBService struct {
	*services.RepositoryDynamoDBService[data.ResetTokenDTO, data.ResetTokenInputDTO]
}

func NewResetTokenService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.ResetTokenRepository {
	return &ResetTokenDynamoDBService{&services.RepositoryDynamoDBService[data.ResetTokenDTO, data.ResetTokenInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "ResetToken",
		Shim: func(pk, sk string) data.ResetTokenDTO {
			return data.ResetTokenDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.ResetTokenInputDTO, now time.Time, pk, sk string) data.ResetTokenDTO {
			return data.ResetTokenDTO{
				PK:         pk,
				SK:         sk,
				UserId:     *input.UserId,
				ExpiresIn:  *input.ExpiresIn,
				CreateTime: now,
				UpdateTime: now,
			}
		},
	}}
}

// Consume is a single conditional delete, so concurrent resets with the same
// token cannot both succeed.
func (rs *ResetTokenDynamoDBService) Consume(ctx context.Context, digest string) (data.ResetTokenDTO, error) {
	return rs.Take(ctx, data.GLOBAL_ACCOUNT, digest)
}
