package catalog

import "mealmaster.app/planner/internal/validation"

// Validate collects every missing or out of domain field, rather than
// stopping at the first one.
func (ri RecipeInput) Validate() error {
	return validation.Struct("recipe", ri)
}
