package nutrition

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/accounts"
	"mealmaster.app/planner/internal/exceptions"
	"mealmaster.app/planner/internal/mealplan"
	"mealmaster.app/planner/internal/nutrition"
	"mealmaster.app/planner/internal/routes"
	"mealmaster.app/planner/internal/routes/util"
	"mealmaster.app/planner/internal/validation"
)

type EntryLister interface {
	ListEntries(ctx context.Context, userId string, startDate string, endDate string) ([]mealplan.Entry, error)
}

type ProfileReader interface {
	Me(ctx context.Context, userId string) (accounts.Profile, error)
}

// SummaryQuery takes a full date range or none, in which case the current
// week is summarized.
type SummaryQuery struct {
	StartDate string `json:"startDate" validate:"required_with=EndDate"`
	EndDate   string `json:"endDate" validate:"required_with=StartDate"`
}

type NutritionService struct {
	entries  EntryLister
	profiles ProfileReader
	now      func() time.Time
}

func NewRoute(entries EntryLister, profiles ProfileReader) routes.Service {
	return NewRouteWithClock(entries, profiles, time.Now)
}

func NewRouteWithClock(entries EntryLister, profiles ProfileReader, now func() time.Time) routes.Service {
	return &NutritionService{
		entries:  entries,
		profiles: profiles,
		now:      now,
	}
}

func (ns *NutritionService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/nutrition": util.AuthorizedRoute(ns.Summary),
	}
}

// _selectedDay accepts any casing of a weekday name and falls back to today.
func (ns *NutritionService) _selectedDay(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ns.now().Weekday().String(), nil
	}
	for _, day := range nutrition.WeekOrder {
		if strings.EqualFold(day, value) {
			return day, nil
		}
	}
	return "", exceptions.InvalidFields("nutrition query", "day")
}

func (ns *NutritionService) Summary(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params := event.QueryStringParameters
	day, err := ns._selectedDay(params["day"])
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	query := SummaryQuery{StartDate: params["startDate"], EndDate: params["endDate"]}
	if err := validation.Struct("nutrition query", query); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	startDate, endDate := query.StartDate, query.EndDate
	if startDate == "" {
		startDate, endDate = nutrition.WeekBounds(ns.now())
	}
	userId := util.UserId(ctx)
	profile, err := ns.profiles.Me(ctx, userId)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	entries, err := ns.entries.ListEntries(ctx, userId, startDate, endDate)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	summary := nutrition.Summarize(entries, profile.GoalProfile(), day)
	return util.SerializeResponseOK(util.AsIs[nutrition.Summary], summary, nil)
}
