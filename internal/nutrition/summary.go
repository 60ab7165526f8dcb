package nutrition

import (
	"mealmaster.app/planner/internal/mealplan"
)

type Goals struct {
	Calories float64 `json:"calories"`
	MacroGrams
}

type WeekDay struct {
	Day       string       `json:"day"`
	Nutrition DayNutrition `json:"nutrition"`
}

type Progress struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type SelectedDay struct {
	Day        string                  `json:"day"`
	Nutrition  DayNutrition            `json:"nutrition"`
	ByMealType map[string]DayNutrition `json:"byMealType"`
	Progress   Progress                `json:"progress"`
}

type Summary struct {
	Week            []WeekDay    `json:"week"`
	Total           DayNutrition `json:"total"`
	Average         DayNutrition `json:"average"`
	GoalProgress    int          `json:"goalProgress"`
	Streak          int          `json:"streak"`
	GoalAchievement int          `json:"goalAchievement"`
	Goals           Goals        `json:"goals"`
	SelectedDay     SelectedDay  `json:"selectedDay"`
}

// Summarize builds the weekly dashboard for a goal profile, with the day
// breakdown for selectedDay.
func Summarize(entries []mealplan.Entry, profile GoalProfile, selectedDay string) Summary {
	week := ComputeWeekNutrition(entries)
	ordered := make([]WeekDay, len(WeekOrder))
	for i, day := range WeekOrder {
		ordered[i] = WeekDay{Day: day, Nutrition: week[day]}
	}
	total := TotalWeekly(week)
	grams := MacroGoalGrams(profile.DailyCalorieGoal, profile.MacroGoals)
	dayNutrition := week[selectedDay]
	return Summary{
		Week:            ordered,
		Total:           total,
		Average:         AverageDaily(week),
		GoalProgress:    GoalProgressPercent(total.Calories, profile.DailyCalorieGoal),
		Streak:          StreakDays(week, WeekOrder),
		GoalAchievement: GoalAchievementPercent(week, profile.DailyCalorieGoal),
		Goals: Goals{
			Calories:   profile.DailyCalorieGoal,
			MacroGrams: grams,
		},
		SelectedDay: SelectedDay{
			Day:        selectedDay,
			Nutrition:  dayNutrition,
			ByMealType: ComputeMealTypeNutrition(entries, selectedDay),
			Progress: Progress{
				Calories: ProgressPercent(dayNutrition.Calories, profile.DailyCalorieGoal),
				Protein:  ProgressPercent(dayNutrition.Protein, float64(grams.Protein)),
				Carbs:    ProgressPercent(dayNutrition.Carbs, float64(grams.Carbs)),
				Fat:      ProgressPercent(dayNutrition.Fat, float64(grams.Fat)),
			},
		},
	}
}
