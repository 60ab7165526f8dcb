package health

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/routes"
	"mealmaster.app/planner/internal/routes/util"
)

const RUNNING_MESSAGE = "MealMaster API is running!"

type HealthService struct{}

func NewRoute() routes.Service {
	return &HealthService{}
}

func (hs *HealthService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/health": hs.Health,
	}
}

func (hs *HealthService) Health(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeMessage(RUNNING_MESSAGE, nil)
}
