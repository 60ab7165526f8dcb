package data

import (
	"context"
	"time"
)

type MealPlanDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	FirstIndex string    `dynamodbav:"GS1-PK"`
	FirstSort  string    `dynamodbav:"GS1-SK"`
	UserId     string    `dynamodbav:"userId"`
	Date       string    `dynamodbav:"date"`
	MealType   string    `dynamodbav:"mealType"`
	RecipeId   string    `dynamodbav:"recipeId"`
	Servings   float64   `dynamodbav:"servings"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

func (m MealPlanDTO) OwnerId() string {
	return m.UserId
}

type MealPlanInputDTO struct {
	UserId   *string  `dynamodbav:"userId"`
	Date     *string  `dynamodbav:"date"`
	MealType *string  `dynamodbav:"mealType"`
	RecipeId *string  `dynamodbav:"recipeId"`
	Servings *float64 `dynamodbav:"servings"`
}

type MealPlanRepository interface {
	Repository[MealPlanDTO, MealPlanInputDTO]
	// ListByUser pages through one user's entries ordered by date.
	ListByUser(ctx context.Context, userId string, params QueryParams) (QueryResults[MealPlanDTO], error)
}
