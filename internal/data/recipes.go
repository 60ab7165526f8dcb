package data

import (
	"time"
)

type NutritionDTO struct {
	Calories float64 `dynamodbav:"calories"`
	Protein  float64 `dynamodbav:"protein"`
	Carbs    float64 `dynamodbav:"carbs"`
	Fat      float64 `dynamodbav:"fat"`
	Fiber    float64 `dynamodbav:"fiber"`
	Sugar    float64 `dynamodbav:"sugar"`
}

type RecipeDTO struct {
	PK           string        `dynamodbav:"PK"`
	SK           string        `dynamodbav:"SK"`
	Name         string        `dynamodbav:"name"`
	Image        string        `dynamodbav:"image"`
	PrepTime     int           `dynamodbav:"prepTime"`
	CookTime     int           `dynamodbav:"cookTime"`
	Servings     int           `dynamodbav:"servings"`
	Difficulty   string        `dynamodbav:"difficulty"`
	Cuisine      string        `dynamodbav:"cuisine"`
	DietaryTags  []string      `dynamodbav:"dietaryTags"`
	Ingredients  []string      `dynamodbav:"ingredients"`
	Instructions []string      `dynamodbav:"instructions"`
	Nutrition    *NutritionDTO `dynamodbav:"nutrition,omitempty"`
	CreatedBy    *string       `dynamodbav:"createdBy,omitempty"`
	CreateTime   time.Time     `dynamodbav:"createTime"`
	UpdateTime   time.Time     `dynamodbav:"updateTime"`
}

func (r RecipeDTO) OwnerId() string {
	if r.CreatedBy == nil {
		return ""
	}
	return *r.CreatedBy
}

type RecipeInputDTO struct {
	Name         *string       `dynamodbav:"name"`
	Image        *string       `dynamodbav:"image"`
	PrepTime     *int          `dynamodbav:"prepTime"`
	CookTime     *int          `dynamodbav:"cookTime"`
	Servings     *int          `dynamodbav:"servings"`
	Difficulty   *string       `dynamodbav:"difficulty"`
	Cuisine      *string       `dynamodbav:"cuisine"`
	DietaryTags  *[]string     `dynamodbav:"dietaryTags"`
	Ingredients  *[]string     `dynamodbav:"ingredients"`
	Instructions *[]string     `dynamodbav:"instructions"`
	Nutrition    *NutritionDTO `dynamodbav:"nutrition"`
	CreatedBy    *string       `dynamodbav:"createdBy"`
}

type RecipeRepository interface {
	Repository[RecipeDTO, RecipeInputDTO]
}
