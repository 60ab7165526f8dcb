package app

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"mealmaster.app/planner/internal/accounts"
	"mealmaster.app/planner/internal/auth"
	"mealmaster.app/planner/internal/catalog"
	"mealmaster.app/planner/internal/config"
	"mealmaster.app/planner/internal/data"
	auditData "mealmaster.app/planner/internal/dynamodb/audits"
	mealPlanData "mealmaster.app/planner/internal/dynamodb/mealplans"
	recipeData "mealmaster.app/planner/internal/dynamodb/recipes"
	resetData "mealmaster.app/planner/internal/dynamodb/resettokens"
	"mealmaster.app/planner/internal/dynamodb/token"
	userData "mealmaster.app/planner/internal/dynamodb/users"
	"mealmaster.app/planner/internal/mealplan"
	"mealmaster.app/planner/internal/notifications"
	"mealmaster.app/planner/internal/routes"
	accountRoutes "mealmaster.app/planner/internal/routes/accounts"
	auditRoutes "mealmaster.app/planner/internal/routes/audits"
	"mealmaster.app/planner/internal/routes/filters"
	"mealmaster.app/planner/internal/routes/health"
	mealPlanRoutes "mealmaster.app/planner/internal/routes/mealplan"
	nutritionRoutes "mealmaster.app/planner/internal/routes/nutrition"
	recipeRoutes "mealmaster.app/planner/internal/routes/recipes"
)

// Services holds everything the HTTP routes need, already wired to storage.
type Services struct {
	Catalog    *catalog.Service
	Plans      *mealplan.Service
	Accounts   *accounts.Service
	Audits     data.AuditRepository
	Tokens     auth.TokenIssuer
	CorsOrigin string
	Now        func() time.Time
}

func NewServices(cfg *config.Config, client *dynamodb.Client, notifier notifications.ResetNotifier) *Services {
	tableName := cfg.Storage.TableName
	marshaler := token.NewGCM(cfg.Security.JWTSecret)
	users := userData.NewUserService(tableName, client, marshaler)
	recipes := catalog.NewService(recipeData.NewRecipeService(tableName, client, marshaler), users)
	tokens := auth.NewJWTIssuer(cfg.Security.JWTSecret)
	return &Services{
		Catalog: recipes,
		Plans:   mealplan.NewService(mealPlanData.NewMealPlanService(tableName, cfg.Storage.IndexName, client, marshaler), recipes),
		Accounts: &accounts.Service{
			Users:       users,
			ResetTokens: resetData.NewResetTokenService(tableName, client, marshaler),
			Tokens:      tokens,
			Hasher:      auth.NewBcryptHasher(),
			Notifier:    notifier,
			TokenTTL:    cfg.Security.TokenTTL(),
			ResetTTL:    cfg.Security.ResetTTL(),
			ResetURL:    cfg.Reset.URL,
			Now:         time.Now,
		},
		Audits:     auditData.NewAuditService(tableName, client, marshaler),
		Tokens:     tokens,
		CorsOrigin: cfg.Security.CorsOrigin,
		Now:        time.Now,
	}
}

func NewRouter(services *Services) *routes.Router {
	return routes.NewRouter(
		[]filters.RequestFilter{
			filters.DefaultCorsFilter(services.CorsOrigin),
			filters.DefaultAuthenticationFilter(services.Tokens),
		},
		health.NewRoute(),
		accountRoutes.NewRoute(services.Accounts),
		recipeRoutes.NewRoute(services.Catalog),
		mealPlanRoutes.NewRoute(services.Plans),
		nutritionRoutes.NewRouteWithClock(services.Plans, services.Accounts, services.Now),
		auditRoutes.NewRoute(services.Audits),
	)
}
