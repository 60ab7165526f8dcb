package nutrition

import (
	"math"

	"mealmaster.app/planner/internal/mealplan"
)

const DAYS_IN_WEEK = 7

// Calories at or above this share of the daily goal count as an achieved day.
const ACHIEVEMENT_THRESHOLD = 0.9

type DayNutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (dn DayNutrition) Add(other DayNutrition) DayNutrition {
	return DayNutrition{
		Calories: dn.Calories + other.Calories,
		Protein:  dn.Protein + other.Protein,
		Carbs:    dn.Carbs + other.Carbs,
		Fat:      dn.Fat + other.Fat,
	}
}

func (dn DayNutrition) Scale(ratio float64) DayNutrition {
	return DayNutrition{
		Calories: dn.Calories * ratio,
		Protein:  dn.Protein * ratio,
		Carbs:    dn.Carbs * ratio,
		Fat:      dn.Fat * ratio,
	}
}

type WeekNutrition map[string]DayNutrition

// _contribution is the scaled nutrition of one entry, or false when the entry
// can not be counted: no recipe, no nutrition, or no usable servings.
func _contribution(entry mealplan.Entry) (DayNutrition, bool) {
	recipe := entry.Recipe
	if recipe == nil || recipe.Nutrition == nil {
		return DayNutrition{}, false
	}
	if entry.Servings <= 0 || recipe.Servings <= 0 {
		return DayNutrition{}, false
	}
	ratio := entry.Servings / float64(recipe.Servings)
	return DayNutrition{
		Calories: recipe.Nutrition.Calories,
		Protein:  recipe.Nutrition.Protein,
		Carbs:    recipe.Nutrition.Carbs,
		Fat:      recipe.Nutrition.Fat,
	}.Scale(ratio), true
}

func ComputeDayNutrition(entries []mealplan.Entry, weekday string) DayNutrition {
	total := DayNutrition{}
	for _, entry := range entries {
		if day, ok := WeekdayOf(entry.Date); !ok || day != weekday {
			continue
		}
		if contribution, ok := _contribution(entry); ok {
			total = total.Add(contribution)
		}
	}
	return total
}

// ComputeMealTypeNutrition splits a day's totals by meal slot.
func ComputeMealTypeNutrition(entries []mealplan.Entry, weekday string) map[string]DayNutrition {
	slots := make(map[string]DayNutrition, len(mealplan.MealTypes))
	for _, mealType := range mealplan.MealTypes {
		slots[mealType] = DayNutrition{}
	}
	for _, entry := range entries {
		if day, ok := WeekdayOf(entry.Date); !ok || day != weekday {
			continue
		}
		if contribution, ok := _contribution(entry); ok {
			slots[entry.MealType] = slots[entry.MealType].Add(contribution)
		}
	}
	return slots
}

// ComputeWeekNutrition buckets every entry by the weekday of its own date,
// always yielding all seven days.
func ComputeWeekNutrition(entries []mealplan.Entry) WeekNutrition {
	week := make(WeekNutrition, DAYS_IN_WEEK)
	for _, day := range WeekOrder {
		week[day] = DayNutrition{}
	}
	for _, entry := range entries {
		day, ok := WeekdayOf(entry.Date)
		if !ok {
			continue
		}
		if contribution, ok := _contribution(entry); ok {
			week[day] = week[day].Add(contribution)
		}
	}
	return week
}

func TotalWeekly(week WeekNutrition) DayNutrition {
	total := DayNutrition{}
	for _, day := range week {
		total = total.Add(day)
	}
	return total
}

// AverageDaily is a seven day average, however many days have data.
func AverageDaily(week WeekNutrition) DayNutrition {
	return TotalWeekly(week).Scale(1.0 / DAYS_IN_WEEK)
}

// GoalProgressPercent is not clamped, an overshooting week reads above 100.
func GoalProgressPercent(totalWeeklyCalories float64, dailyCalorieGoal float64) int {
	if dailyCalorieGoal <= 0 {
		return 0
	}
	return int(math.Round(totalWeeklyCalories / (dailyCalorieGoal * DAYS_IN_WEEK) * 100))
}

// StreakDays counts the run of days with calories at the end of the ordered
// week. The most recent day being empty means no streak.
func StreakDays(week WeekNutrition, orderedOldestToNewest []string) int {
	streak := 0
	for i := len(orderedOldestToNewest) - 1; i >= 0; i-- {
		if week[orderedOldestToNewest[i]].Calories == 0 {
			break
		}
		streak++
	}
	return streak
}

func GoalAchievementPercent(week WeekNutrition, dailyCalorieGoal float64) int {
	if dailyCalorieGoal <= 0 {
		return 0
	}
	achieved := 0
	for _, day := range week {
		if day.Calories >= dailyCalorieGoal*ACHIEVEMENT_THRESHOLD {
			achieved++
		}
	}
	return int(math.Round(float64(achieved) / DAYS_IN_WEEK * 100))
}
