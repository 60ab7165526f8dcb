package validation

import (
	"errors"
	"testing"

	"mealmaster.app/planner/internal/exceptions"
)

type portion struct {
	Grams *float64 `json:"grams" validate:"required,gte=0"`
}

type dish struct {
	Name     string    `json:"name" validate:"required,notblank"`
	Day      string    `json:"day" validate:"omitempty,datetime=2006-01-02"`
	Steps    *[]string `json:"steps" validate:"required,min=1,dive,notblank"`
	Portion  *portion  `json:"portion" validate:"required"`
	Internal string    `json:"-"`
}

func TestFields(t *testing.T) {
	grams := -1.0
	steps := []string{"chop", " ", ""}
	fields, err := Fields(dish{
		Name:    "  ",
		Day:     "03/04/2024",
		Steps:   &steps,
		Portion: &portion{Grams: &grams},
	})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	expected := []string{"name", "day", "steps", "portion.grams"}
	if len(fields) != len(expected) {
		t.Fatalf("Expected fields %v, but got %v", expected, fields)
	}
	for i, field := range expected {
		if fields[i] != field {
			t.Fatalf("Expected fields %v, but got %v", expected, fields)
		}
	}
}

func TestStruct(t *testing.T) {
	steps := []string{"chop"}
	zero := 0.0
	if err := Struct("dish", dish{Name: "Soup", Day: "2024-03-04", Steps: &steps, Portion: &portion{Grams: &zero}}); err != nil {
		t.Fatalf("Expected a valid dish, but got %v", err)
	}
	err := Struct("dish", dish{Name: "Soup"})
	var invalid *exceptions.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected invalid input, but got %v", err)
	}
	if len(invalid.Fields) != 2 || invalid.Fields[0] != "steps" || invalid.Fields[1] != "portion" {
		t.Fatalf("Expected steps and portion, but got %v", invalid.Fields)
	}
}
