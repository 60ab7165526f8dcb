package mealplan

import (
	"time"

	"mealmaster.app/planner/internal/catalog"
	"mealmaster.app/planner/internal/data"
)

const DATE_LAYOUT = "2006-01-02"

const (
	BREAKFAST = "breakfast"
	LUNCH     = "lunch"
	DINNER    = "dinner"
	SNACK     = "snack"
)

var MealTypes = []string{BREAKFAST, LUNCH, DINNER, SNACK}

type Entry struct {
	Id         string          `json:"id"`
	User       string          `json:"user"`
	Date       string          `json:"date"`
	MealType   string          `json:"mealType"`
	RecipeId   string          `json:"recipeId"`
	Recipe     *catalog.Recipe `json:"recipe"`
	Servings   float64         `json:"servings"`
	CreateTime time.Time       `json:"createTime"`
	UpdateTime time.Time       `json:"updateTime"`
}

type EntryInput struct {
	Date     *string  `json:"date" validate:"required,datetime=2006-01-02"`
	MealType *string  `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	RecipeId *string  `json:"recipeId" validate:"required,notblank"`
	Servings *float64 `json:"servings" validate:"required,gt=0"`
}

// Merge fills whatever the patch leaves out from the stored entry.
func (ei EntryInput) Merge(entry data.MealPlanDTO) EntryInput {
	merged := EntryInput{
		Date:     &entry.Date,
		MealType: &entry.MealType,
		RecipeId: &entry.RecipeId,
		Servings: &entry.Servings,
	}
	if ei.Date != nil {
		merged.Date = ei.Date
	}
	if ei.MealType != nil {
		merged.MealType = ei.MealType
	}
	if ei.RecipeId != nil {
		merged.RecipeId = ei.RecipeId
	}
	if ei.Servings != nil {
		merged.Servings = ei.Servings
	}
	return merged
}

// DateRange bounds a listing. Either side may be left empty.
type DateRange struct {
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

func NewEntry(entry data.MealPlanDTO) Entry {
	return Entry{
		Id:         entry.SK,
		User:       entry.UserId,
		Date:       entry.Date,
		MealType:   entry.MealType,
		RecipeId:   entry.RecipeId,
		Servings:   entry.Servings,
		CreateTime: entry.CreateTime,
		UpdateTime: entry.UpdateTime,
	}
}
