package catalog

import (
	"time"

	"mealmaster.app/planner/internal/data"
)

const (
	EASY   = "Easy"
	MEDIUM = "Medium"
	HARD   = "Hard"
)

type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

type Creator struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type Recipe struct {
	Id           string     `json:"id"`
	Name         string     `json:"name"`
	Image        string     `json:"image"`
	PrepTime     int        `json:"prepTime"`
	CookTime     int        `json:"cookTime"`
	Servings     int        `json:"servings"`
	Difficulty   string     `json:"difficulty"`
	Cuisine      string     `json:"cuisine"`
	DietaryTags  []string   `json:"dietaryTags"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	Nutrition    *Nutrition `json:"nutrition"`
	CreatedBy    *Creator   `json:"createdBy"`
	CreateTime   time.Time  `json:"createTime"`
	UpdateTime   time.Time  `json:"updateTime"`
}

type NutritionInput struct {
	Calories *float64 `json:"calories" validate:"required,gte=0"`
	Protein  *float64 `json:"protein" validate:"required,gte=0"`
	Carbs    *float64 `json:"carbs" validate:"required,gte=0"`
	Fat      *float64 `json:"fat" validate:"required,gte=0"`
	Fiber    *float64 `json:"fiber" validate:"omitempty,gte=0"`
	Sugar    *float64 `json:"sugar" validate:"omitempty,gte=0"`
}

type RecipeInput struct {
	Name         *string         `json:"name" validate:"required,notblank"`
	Image        *string         `json:"image" validate:"required,notblank"`
	PrepTime     *int            `json:"prepTime" validate:"required,gte=0"`
	CookTime     *int            `json:"cookTime" validate:"required,gte=0"`
	Servings     *int            `json:"servings" validate:"required,gte=1"`
	Difficulty   *string         `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Cuisine      *string         `json:"cuisine" validate:"required,notblank"`
	DietaryTags  *[]string       `json:"dietaryTags" validate:"omitempty,dive,required"`
	Ingredients  *[]string       `json:"ingredients" validate:"required,min=1,dive,notblank"`
	Instructions *[]string       `json:"instructions" validate:"required,min=1,dive,notblank"`
	Nutrition    *NutritionInput `json:"nutrition" validate:"required"`
}

// Filters are AND'ed together, while DietaryTags match when any tag is present.
type Filters struct {
	Difficulty  string
	Cuisine     string
	DietaryTags []string
	MaxCookTime *int
}

func (f Filters) IsEmpty() bool {
	return f.Difficulty == "" && f.Cuisine == "" && len(f.DietaryTags) == 0 && f.MaxCookTime == nil
}

func _orEmptyList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func NewRecipe(recipe data.RecipeDTO) Recipe {
	rtn := Recipe{
		Id:           recipe.SK,
		Name:         recipe.Name,
		Image:        recipe.Image,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Servings:     recipe.Servings,
		Difficulty:   recipe.Difficulty,
		Cuisine:      recipe.Cuisine,
		DietaryTags:  _orEmptyList(recipe.DietaryTags),
		Ingredients:  _orEmptyList(recipe.Ingredients),
		Instructions: _orEmptyList(recipe.Instructions),
		CreateTime:   recipe.CreateTime,
		UpdateTime:   recipe.UpdateTime,
	}
	if recipe.Nutrition != nil {
		rtn.Nutrition = &Nutrition{
			Calories: recipe.Nutrition.Calories,
			Protein:  recipe.Nutrition.Protein,
			Carbs:    recipe.Nutrition.Carbs,
			Fat:      recipe.Nutrition.Fat,
			Fiber:    recipe.Nutrition.Fiber,
			Sugar:    recipe.Nutrition.Sugar,
		}
	}
	if recipe.CreatedBy != nil {
		rtn.CreatedBy = &Creator{Id: *recipe.CreatedBy}
	}
	return rtn
}

func _ptr[T interface{}](value T) *T {
	return &value
}

// NewRecipeInput turns a stored recipe into a fully populated input, the
// base that partial updates are merged onto.
func NewRecipeInput(recipe data.RecipeDTO) RecipeInput {
	input := RecipeInput{
		Name:         _ptr(recipe.Name),
		Image:        _ptr(recipe.Image),
		PrepTime:     _ptr(recipe.PrepTime),
		CookTime:     _ptr(recipe.CookTime),
		Servings:     _ptr(recipe.Servings),
		Difficulty:   _ptr(recipe.Difficulty),
		Cuisine:      _ptr(recipe.Cuisine),
		DietaryTags:  _ptr(_orEmptyList(recipe.DietaryTags)),
		Ingredients:  _ptr(_orEmptyList(recipe.Ingredients)),
		Instructions: _ptr(_orEmptyList(recipe.Instructions)),
	}
	if recipe.Nutrition != nil {
		input.Nutrition = &NutritionInput{
			Calories: _ptr(recipe.Nutrition.Calories),
			Protein:  _ptr(recipe.Nutrition.Protein),
			Carbs:    _ptr(recipe.Nutrition.Carbs),
			Fat:      _ptr(recipe.Nutrition.Fat),
			Fiber:    _ptr(recipe.Nutrition.Fiber),
			Sugar:    _ptr(recipe.Nutrition.Sugar),
		}
	}
	return input
}

func _overlay[T interface{}](base *T, patch *T) *T {
	if patch != nil {
		return patch
	}
	return base
}

// Merge lays every field set on the patch over the receiver.
func (ri RecipeInput) Merge(patch RecipeInput) RecipeInput {
	merged := RecipeInput{
		Name:         _overlay(ri.Name, patch.Name),
		Image:        _overlay(ri.Image, patch.Image),
		PrepTime:     _overlay(ri.PrepTime, patch.PrepTime),
		CookTime:     _overlay(ri.CookTime, patch.CookTime),
		Servings:     _overlay(ri.Servings, patch.Servings),
		Difficulty:   _overlay(ri.Difficulty, patch.Difficulty),
		Cuisine:      _overlay(ri.Cuisine, patch.Cuisine),
		DietaryTags:  _overlay(ri.DietaryTags, patch.DietaryTags),
		Ingredients:  _overlay(ri.Ingredients, patch.Ingredients),
		Instructions: _overlay(ri.Instructions, patch.Instructions),
		Nutrition:    ri.Nutrition,
	}
	if patch.Nutrition != nil {
		base := NutritionInput{}
		if ri.Nutrition != nil {
			base = *ri.Nutrition
		}
		merged.Nutrition = &NutritionInput{
			Calories: _overlay(base.Calories, patch.Nutrition.Calories),
			Protein:  _overlay(base.Protein, patch.Nutrition.Protein),
			Carbs:    _overlay(base.Carbs, patch.Nutrition.Carbs),
			Fat:      _overlay(base.Fat, patch.Nutrition.Fat),
			Fiber:    _overlay(base.Fiber, patch.Nutrition.Fiber),
			Sugar:    _overlay(base.Sugar, patch.Nutrition.Sugar),
		}
	}
	return merged
}

func _orZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func (ri RecipeInput) ToData(creator *string) data.RecipeInputDTO {
	input := data.RecipeInputDTO{
		Name:         ri.Name,
		Image:        ri.Image,
		PrepTime:     ri.PrepTime,
		CookTime:     ri.CookTime,
		Servings:     ri.Servings,
		Difficulty:   ri.Difficulty,
		Cuisine:      ri.Cuisine,
		DietaryTags:  ri.DietaryTags,
		Ingredients:  ri.Ingredients,
		Instructions: ri.Instructions,
		CreatedBy:    creator,
	}
	if ri.Nutrition != nil {
		input.Nutrition = &data.NutritionDTO{
			Calories: _orZero(ri.Nutrition.Calories),
			Protein:  _orZero(ri.Nutrition.Protein),
			Carbs:    _orZero(ri.Nutrition.Carbs),
			Fat:      _orZero(ri.Nutrition.Fat),
			Fiber:    _orZero(ri.Nutrition.Fiber),
			Sugar:    _orZero(ri.Nutrition.Sugar),
		}
	}
	return input
}
