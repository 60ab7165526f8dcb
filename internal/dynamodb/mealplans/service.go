package mealplans

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/dynamodb/services"
	"mealmaster.app/planner/internal/dynamodb/token"
)

// IndexHash is the secondary index partition holding every entry of one user,
// sorted by date.
func IndexHash(userId string) string {
	return fmt.Sprintf("%s:MealPlan", userId)
}

func NewMealPlanItem(input data.MealPlanInputDTO, now time.Time, pk, sk string) data.MealPlanDTO {
	return data.MealPlanDTO{
		PK:         pk,
		SK:         sk,
		FirstIndex: IndexHash(*input.UserId),
		FirstSort:  *input.Date,
		UserId:     *input.UserId,
		Date:       *input.Date,
		MealType:   *input.MealType,
		RecipeId:   *input.RecipeId,
		Servings:   *input.Servings,
		CreateTime: now,
		UpdateTime: now,
	}
}

type MealPlanDynamoDBService struct {
	*services.RepositoryDynamoDBService[data.MealPlanDTO, data.MealPlanInputDTO]
	IndexName string
}

func NewMealPlanService(tableName string, indexName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.MealPlanRepository {
	return &MealPlanDynamoDBService{
		IndexName: indexName,
		RepositoryDynamoDBService: &services.RepositoryDynamoDBService[data.MealPlanDTO, data.MealPlanInputDTO]{
			DynamoDB:       client,
			TableName:      tableName,
			TokenMarshaler: marshaler,
			Name:           "MealPlan",
			Shim: func(pk, sk string) data.MealPlanDTO {
				return data.MealPlanDTO{PK: pk, SK: sk}
			},
			OnCreate: NewMealPlanItem,
			OnUpdate: func(input data.MealPlanInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
				if input.Date != nil {
					update = update.Set(expression.Name("date"), expression.Value(input.Date))
					update = update.Set(expression.Name(services.INDEX_RANGE_KEY), expression.Value(input.Date))
				}
				if input.MealType != nil {
					update = update.Set(expression.Name("mealType"), expression.Value(input.MealType))
				}
				if input.RecipeId != nil {
					update = update.Set(expression.Name("recipeId"), expression.Value(input.RecipeId))
				}
				if input.Servings != nil {
					update = update.Set(expression.Name("servings"), expression.Value(input.Servings))
				}
				return update
			},
		},
	}
}

func (ms *MealPlanDynamoDBService) ListByUser(ctx context.Context, userId string, params data.QueryParams) (data.QueryResults[data.MealPlanDTO], error) {
	return ms.ListByIndex(ctx, IndexHash(userId), ms.IndexName, params)
}
