package mealplan

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/mealplan"
	"mealmaster.app/planner/internal/routes"
	"mealmaster.app/planner/internal/routes/util"
)

const REMOVED_MESSAGE = "Meal removed from plan successfully"

type MealPlanService struct {
	plans *mealplan.Service
}

func NewRoute(plans *mealplan.Service) routes.Service {
	return &MealPlanService{
		plans: plans,
	}
}

func (ms *MealPlanService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/meal-plan":        util.AuthorizedRoute(ms.ListEntries),
		"POST:/meal-plan":       util.AuthorizedRoute(ms.CreateEntry),
		"PUT:/meal-plan/:id":    util.AuthorizedRoute(ms.UpdateEntry),
		"DELETE:/meal-plan/:id": util.AuthorizedRoute(ms.DeleteEntry),
	}
}

func (ms *MealPlanService) ListEntries(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params := event.QueryStringParameters
	entries, err := ms.plans.ListEntries(ctx, util.UserId(ctx), params["startDate"], params["endDate"])
	return util.SerializeResponseOK(util.AsIs[[]mealplan.Entry], entries, err)
}

func (ms *MealPlanService) CreateEntry(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[mealplan.EntryInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := ms.plans.CreateEntry(ctx, util.UserId(ctx), input)
	return util.SerializeResponseCreated(util.AsIs[mealplan.Entry], created, err)
}

func (ms *MealPlanService) UpdateEntry(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[mealplan.EntryInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	updated, err := ms.plans.UpdateEntry(ctx, util.UserId(ctx), util.RequestParam(ctx, "id"), input)
	return util.SerializeResponseOK(util.AsIs[mealplan.Entry], updated, err)
}

func (ms *MealPlanService) DeleteEntry(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := ms.plans.DeleteEntry(ctx, util.UserId(ctx), util.RequestParam(ctx, "id"))
	return util.SerializeMessage(REMOVED_MESSAGE, err)
}
