package recipes

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/catalog"
	"mealmaster.app/planner/internal/routes"
	"mealmaster.app/planner/internal/routes/util"
)

const DELETED_MESSAGE = "Recipe deleted successfully"

type RecipeService struct {
	catalog *catalog.Service
}

func NewRoute(catalog *catalog.Service) routes.Service {
	return &RecipeService{
		catalog: catalog,
	}
}

func (rs *RecipeService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/recipes":        rs.ListRecipes,
		"GET:/recipes/:id":    rs.GetRecipe,
		"POST:/recipes":       util.AuthorizedRoute(rs.CreateRecipe),
		"PUT:/recipes/:id":    util.AuthorizedRoute(rs.UpdateRecipe),
		"DELETE:/recipes/:id": util.AuthorizedRoute(rs.DeleteRecipe),
	}
}

func (rs *RecipeService) ListRecipes(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	query, filters, err := SearchQuery(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := rs.catalog.SearchRecipes(ctx, query, filters)
	return util.SerializeResponseOK(util.AsIs[[]catalog.Recipe], items, err)
}

func (rs *RecipeService) GetRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := rs.catalog.GetRecipe(ctx, util.RequestParam(ctx, "id"))
	return util.SerializeResponseOK(util.AsIs[catalog.Recipe], item, err)
}

func (rs *RecipeService) CreateRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[catalog.RecipeInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := rs.catalog.CreateRecipe(ctx, input, util.UserId(ctx))
	return util.SerializeResponseCreated(util.AsIs[catalog.Recipe], created, err)
}

func (rs *RecipeService) UpdateRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[catalog.RecipeInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := rs.catalog.UpdateRecipe(ctx, util.RequestParam(ctx, "id"), input, util.UserId(ctx))
	return util.SerializeResponseOK(util.AsIs[catalog.Recipe], item, err)
}

func (rs *RecipeService) DeleteRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := rs.catalog.DeleteRecipe(ctx, util.RequestParam(ctx, "id"), util.UserId(ctx))
	return util.SerializeMessage(DELETED_MESSAGE, err)
}
