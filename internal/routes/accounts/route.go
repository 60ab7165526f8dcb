package accounts

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"mealmaster.app/planner/internal/accounts"
	"mealmaster.app/planner/internal/log"
	"mealmaster.app/planner/internal/routes"
	"mealmaster.app/planner/internal/routes/util"
)

type AccountService struct {
	accounts *accounts.Service
	logger   *log.Logger
}

func NewRoute(accounts *accounts.Service) routes.Service {
	return &AccountService{
		accounts: accounts,
		logger:   log.Default(),
	}
}

func (as *AccountService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"POST:/auth/register":              as.Register,
		"POST:/auth/login":                 as.Login,
		"GET:/auth/me":                     util.AuthorizedRoute(as.Me),
		"PUT:/auth/profile":                util.AuthorizedRoute(as.UpdateProfile),
		"POST:/auth/forgot-password":       as.ForgotPassword,
		"POST:/auth/reset-password/:token": as.ResetPassword,
	}
}

func (as *AccountService) Register(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[accounts.RegisterInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	session, err := as.accounts.Register(ctx, input)
	as.logger.LogAuth(session.User.Id, "register", err == nil)
	return util.SerializeResponseCreated(util.AsIs[accounts.Session], session, err)
}

func (as *AccountService) Login(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[accounts.LoginInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	session, err := as.accounts.Login(ctx, input)
	as.logger.LogAuth(session.User.Id, "login", err == nil)
	return util.SerializeResponseOK(util.AsIs[accounts.Session], session, err)
}

func (as *AccountService) Me(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	profile, err := as.accounts.Me(ctx, util.UserId(ctx))
	return util.SerializeResponseOK(NewUserResponse, profile, err)
}

func (as *AccountService) UpdateProfile(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[accounts.ProfileInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	profile, err := as.accounts.UpdateProfile(ctx, util.UserId(ctx), input)
	return util.SerializeResponseOK(NewUserResponse, profile, err)
}

func (as *AccountService) ForgotPassword(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[accounts.ForgotPasswordInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	err = as.accounts.ForgotPassword(ctx, input)
	return util.SerializeMessage(RESET_SENT_MESSAGE, err)
}

func (as *AccountService) ResetPassword(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.DecodeBody[accounts.ResetPasswordInput](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	err = as.accounts.ResetPassword(ctx, util.RequestParam(ctx, "token"), input)
	as.logger.LogAuth("", "reset-password", err == nil)
	return util.SerializeMessage(RESET_DONE_MESSAGE, err)
}
