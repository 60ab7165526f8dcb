package catalog

import (
	"strings"

	"golang.org/x/exp/slices"
)

func (r Recipe) _matchesQuery(query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Cuisine), query) {
		return true
	}
	for _, tag := range r.DietaryTags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (r Recipe) _matchesFilters(filters Filters) bool {
	if filters.Difficulty != "" && r.Difficulty != filters.Difficulty {
		return false
	}
	if filters.Cuisine != "" && r.Cuisine != filters.Cuisine {
		return false
	}
	if len(filters.DietaryTags) > 0 {
		found := false
		for _, tag := range filters.DietaryTags {
			if slices.Contains(r.DietaryTags, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filters.MaxCookTime != nil && r.CookTime > *filters.MaxCookTime {
		return false
	}
	return true
}

// Search narrows recipes by a case-insensitive query over name, cuisine and
// tags, then by filters. No query and no filters returns recipes untouched.
func Search(recipes []Recipe, query string, filters Filters) []Recipe {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" && filters.IsEmpty() {
		return recipes
	}
	matched := make([]Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if query != "" && !recipe._matchesQuery(query) {
			continue
		}
		if !recipe._matchesFilters(filters) {
			continue
		}
		matched = append(matched, recipe)
	}
	return matched
}
