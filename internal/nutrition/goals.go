package nutrition

import (
	"math"
)

const (
	CALORIES_PER_GRAM_PROTEIN = 4
	CALORIES_PER_GRAM_CARBS   = 4
	CALORIES_PER_GRAM_FAT     = 9
)

// MacroPercents are shares of the calorie goal. They are not required to
// add up to 100.
type MacroPercents struct {
	Protein float64 `json:"protein" validate:"gte=0"`
	Carbs   float64 `json:"carbs" validate:"gte=0"`
	Fat     float64 `json:"fat" validate:"gte=0"`
}

type GoalProfile struct {
	DailyCalorieGoal float64       `json:"dailyCalorieGoal"`
	MacroGoals       MacroPercents `json:"macroGoals"`
}

func DefaultGoalProfile() GoalProfile {
	return GoalProfile{
		DailyCalorieGoal: 2000,
		MacroGoals: MacroPercents{
			Protein: 25,
			Carbs:   50,
			Fat:     25,
		},
	}
}

type MacroGrams struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

func _grams(calorieGoal float64, percent float64, caloriesPerGram float64) int {
	return int(math.Round(calorieGoal * percent / 100 / caloriesPerGram))
}

func MacroGoalGrams(calorieGoal float64, macros MacroPercents) MacroGrams {
	return MacroGrams{
		Protein: _grams(calorieGoal, macros.Protein, CALORIES_PER_GRAM_PROTEIN),
		Carbs:   _grams(calorieGoal, macros.Carbs, CALORIES_PER_GRAM_CARBS),
		Fat:     _grams(calorieGoal, macros.Fat, CALORIES_PER_GRAM_FAT),
	}
}

// ProgressPercent is clamped to 100. A goal that is not positive has no
// meaningful progress and reads as 0.
func ProgressPercent(value float64, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(value/goal*100, 100)
}
