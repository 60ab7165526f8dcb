package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"golang.org/x/exp/slices"
	"mealmaster.app/planner/internal/exceptions"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Default is the shared validator. Errors name fields by their json names and
// "notblank" rejects whitespace-only strings.
func Default() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(_jsonName)
		if err := instance.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	})
	return instance
}

func _jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		return field.Name
	}
	return name
}

// _path turns "RecipeInput.ingredients[2]" into "ingredients".
func _path(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	if i := strings.IndexByte(namespace, '['); i >= 0 {
		namespace = namespace[:i]
	}
	return namespace
}

// Fields lists each offending field once, in declaration order.
func Fields(input interface{}) ([]string, error) {
	err := Default().Struct(input)
	if err == nil {
		return nil, nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return nil, err
	}
	fields := make([]string, 0, len(invalid))
	for _, fieldError := range invalid {
		if field := _path(fieldError.Namespace()); !slices.Contains(fields, field) {
			fields = append(fields, field)
		}
	}
	return fields, nil
}

// Struct reports every offending field of input as one InvalidInputError.
func Struct(resource string, input interface{}) error {
	fields, err := Fields(input)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return exceptions.InvalidFields(resource, fields...)
	}
	return nil
}
