package recipes

import (
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/catalog"
	"mealmaster.app/planner/internal/exceptions"
)

func _splitTags(value string) []string {
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SearchQuery pulls the free text query and the explicit filters off of
// the request query string.
func SearchQuery(event events.APIGatewayV2HTTPRequest) (string, catalog.Filters, error) {
	params := event.QueryStringParameters
	filters := catalog.Filters{
		Difficulty:  strings.TrimSpace(params["difficulty"]),
		Cuisine:     strings.TrimSpace(params["cuisine"]),
		DietaryTags: _splitTags(params["dietaryTags"]),
	}
	if value := strings.TrimSpace(params["maxCookTime"]); value != "" {
		maxCookTime, err := strconv.Atoi(value)
		if err != nil || maxCookTime < 0 {
			return "", filters, exceptions.InvalidFields("search", "maxCookTime")
		}
		filters.MaxCookTime = &maxCookTime
	}
	return strings.TrimSpace(params["q"]), filters, nil
}
