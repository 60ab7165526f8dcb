package recipes

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/dynamodb/services"
	"mealmaster.app/planner/internal/dynamodb/token"
)

func _orEmpty[T interface{}](value *T) T {
	var empty T
	if value == nil {
		return empty
	}
	return *value
}

func NewRecipeItem(input data.RecipeInputDTO, now time.Time, pk, sk string) data.RecipeDTO {
	return data.RecipeDTO{
		PK:           pk,
		SK:           sk,
		Name:         _orEmpty(input.Name),
		Image:        _orEmpty(input.Image),
		PrepTime:     _orEmpty(input.PrepTime),
		CookTime:     _orEmpty(input.CookTime),
		Servings:     _orEmpty(input.Servings),
		Difficulty:   _orEmpty(input.Difficulty),
		Cuisine:      _orEmpty(input.Cuisine),
		DietaryTags:  _orEmpty(input.DietaryTags),
		Ingredients:  _orEmpty(input.Ingredients),
		Instructions: _orEmpty(input.Instructions),
		Nutrition:    input.Nutrition,
		CreatedBy:    input.CreatedBy,
		CreateTime:   now,
		UpdateTime:   now,
	}
}

func NewRecipeService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler) data.RecipeRepository {
	return &services.RepositoryDynamoDBService[data.RecipeDTO, data.RecipeInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Recipe",
		Shim: func(pk, sk string) data.RecipeDTO {
			return data.RecipeDTO{PK: pk, SK: sk}
		},
		OnCreate: NewRecipeItem,
		OnUpdate: func(input data.RecipeInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
			if input.Name != nil {
				update = update.Set(expression.Name("name"), expression.Value(input.Name))
			}
			if input.Image != nil {
				update = update.Set(expression.Name("image"), expression.Value(input.Image))
			}
			if input.PrepTime != nil {
				update = update.Set(expression.Name("prepTime"), expression.Value(input.PrepTime))
			}
			if input.CookTime != nil {
				update = update.Set(expression.Name("cookTime"), expression.Value(input.CookTime))
			}
			if input.Servings != nil {
				update = update.Set(expression.Name("servings"), expression.Value(input.Servings))
			}
			if input.Difficulty != nil {
				update = update.Set(expression.Name("difficulty"), expression.Value(input.Difficulty))
			}
			if input.Cuisine != nil {
				update = update.Set(expression.Name("cuisine"), expression.Value(input.Cuisine))
			}
			if input.DietaryTags != nil {
				update = update.Set(expression.Name("dietaryTags"), expression.Value(input.DietaryTags))
			}
			if input.Ingredients != nil {
				update = update.Set(expression.Name("ingredients"), expression.Value(input.Ingredients))
			}
			if input.Instructions != nil {
				update = update.Set(expression.Name("instructions"), expression.Value(input.Instructions))
			}
			if input.Nutrition != nil {
				update = update.Set(expression.Name("nutrition"), expression.Value(input.Nutrition))
			}
			return update
		},
	}
}
