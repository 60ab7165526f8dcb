package nutrition

import (
	"time"

	"mealmaster.app/planner/internal/mealplan"
)

// WeekOrder is the display order of a week, oldest day first.
var WeekOrder = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// WeekdayOf names the weekday of a calendar date. The date is read as a plain
// calendar day, no time zone shifting applies.
func WeekdayOf(date string) (string, bool) {
	parsed, err := time.Parse(mealplan.DATE_LAYOUT, date)
	if err != nil {
		return "", false
	}
	return parsed.Weekday().String(), true
}

func IsWeekday(name string) bool {
	for _, day := range WeekOrder {
		if day == name {
			return true
		}
	}
	return false
}

// WeekBounds returns the Monday and Sunday of the week holding day.
func WeekBounds(day time.Time) (string, string) {
	offset := (int(day.Weekday()) + DAYS_IN_WEEK - 1) % DAYS_IN_WEEK
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, DAYS_IN_WEEK-1)
	return monday.Format(mealplan.DATE_LAYOUT), sunday.Format(mealplan.DATE_LAYOUT)
}
