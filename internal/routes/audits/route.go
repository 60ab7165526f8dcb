package audits

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/routes"
	"mealmaster.app/planner/internal/routes/util"
)

type AuditService struct {
	data data.AuditRepository
}

func NewRoute(data data.AuditRepository) routes.Service {
	return &AuditService{
		data: data,
	}
}

func (as *AuditService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/audits":             util.AuthorizedRoute(as.ListAudits),
		"DELETE:/audits/:auditId": util.AuthorizedRoute(as.DeleteAudit),
	}
}

// ListAudits pages through the caller's own change history.
func (as *AuditService) ListAudits(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.QueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := as.data.List(ctx, util.UserId(ctx), params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewAudit), items, err)
}

func (as *AuditService) DeleteAudit(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := as.data.Delete(ctx, util.UserId(ctx), util.RequestParam(ctx, "auditId"))
	return util.SerializeResponseNoContent(err)
}
