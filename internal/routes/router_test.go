package routes_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"mealmaster.app/planner/internal/accounts"
	"mealmaster.app/planner/internal/app"
	"mealmaster.app/planner/internal/catalog"
	"mealmaster.app/planner/internal/config"
	"mealmaster.app/planner/internal/data"
	"mealmaster.app/planner/internal/mealplan"
	"mealmaster.app/planner/internal/notifications"
	"mealmaster.app/planner/internal/nutrition"
	"mealmaster.app/planner/internal/routes"
	"mealmaster.app/planner/internal/routes/audits"
	"mealmaster.app/planner/internal/test"
)

type LocalNotifications struct {
	mutex sync.Mutex
	Sent  []notifications.ResetInput
}

func (ln *LocalNotifications) NotifyReset(ctx context.Context, input notifications.ResetInput) error {
	ln.mutex.Lock()
	defer ln.mutex.Unlock()
	ln.Sent = append(ln.Sent, input)
	return nil
}

func (ln *LocalNotifications) LastToken(t *testing.T) string {
	ln.mutex.Lock()
	defer ln.mutex.Unlock()
	if len(ln.Sent) == 0 {
		t.Fatal("Expected a reset notification to be sent")
	}
	link, err := url.Parse(ln.Sent[len(ln.Sent)-1].Link)
	if err != nil {
		t.Fatalf("Failed to parse reset link: %v", err)
	}
	return link.Query().Get("token")
}

// 2024-03-06 is a Wednesday.
var TODAY = time.Date(2024, 3, 6, 9, 30, 0, 0, time.UTC)

func NewLocalServer(t *testing.T) *LocalServer {
	client, tableName := test.NewLocalTable(test.LOCAL_DDB_PORT+1, t)
	notifier := &LocalNotifications{}
	cfg := &config.Config{
		Storage: config.StorageConfig{
			TableName: tableName,
			IndexName: test.INDEX_NAME,
		},
		Security: config.SecurityConfig{
			JWTSecret:          "router-test-secret",
			JWTExpirationHours: 1,
			ResetTokenMinutes:  15,
			CorsOrigin:         "*",
		},
		Reset: config.ResetConfig{
			URL: "http://localhost:5173/reset-password",
		},
	}
	services := app.NewServices(cfg, client, notifier)
	services.Now = func() time.Time { return TODAY }
	return &LocalServer{
		Router:        app.NewRouter(services),
		Services:      services,
		Notifications: notifier,
	}
}

type LocalServer struct {
	Router        *routes.Router
	Services      *app.Services
	Notifications *LocalNotifications
	Token         string
}

func (ls *LocalServer) UpdateIdentity(token string) {
	ls.Token = token
}

func (ls *LocalServer) Request(t *testing.T, method string, path string, body []byte, out any, params map[string]string) events.APIGatewayV2HTTPResponse {
	request := events.APIGatewayV2HTTPRequest{
		RawPath:               path,
		QueryStringParameters: params,
		Headers:               map[string]string{"content-type": "application/json"},
		Body:                  string(body),
	}
	request.RequestContext.RequestID = uuid.NewString()
	request.RequestContext.HTTP.Method = method
	request.RequestContext.HTTP.Path = path
	if ls.Token != "" {
		request.Headers["authorization"] = "Bearer " + ls.Token
	}
	response := ls.Router.Invoke(request, context.TODO())
	if out != nil && response.Body != "" {
		if err := json.Unmarshal([]byte(response.Body), out); err != nil {
			t.Fatalf("Failed to deserialize payload for %s %s: %s", method, path, response.Body)
		}
	}
	return response
}

func (ls *LocalServer) Options(t *testing.T, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "OPTIONS", path, nil, nil, nil)
}

func (ls *LocalServer) Get(t *testing.T, out any, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "GET", path, nil, out, nil)
}

func (ls *LocalServer) GetQuery(t *testing.T, out any, path string, params map[string]string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "GET", path, nil, out, params)
}

func (ls *LocalServer) Post(t *testing.T, out any, path string, body any) events.APIGatewayV2HTTPResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to serialize input: %s", err)
	}
	return ls.Request(t, "POST", path, payload, out, nil)
}

func (ls *LocalServer) Delete(t *testing.T, out any, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "DELETE", path, nil, out, nil)
}

func (ls *LocalServer) Put(t *testing.T, out any, path string, body any) events.APIGatewayV2HTTPResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to serialize input: %s", err)
	}
	return ls.Request(t, "PUT", path, payload, out, nil)
}

type Message struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}

type UserResponse struct {
	User accounts.Profile `json:"user"`
}

func (ls *LocalServer) Register(t *testing.T, name, email string) accounts.Session {
	var session accounts.Session
	ls.UpdateIdentity("")
	resp := ls.Post(t, &session, "/auth/register", accounts.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "secret1",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("Expected 201 on register, got %d: %s", resp.StatusCode, resp.Body)
	}
	return session
}

func RecipeInput(name string) catalog.RecipeInput {
	return catalog.RecipeInput{
		Name:         aws.String(name),
		Image:        aws.String("https://images.example.com/curry.png"),
		PrepTime:     aws.Int(10),
		CookTime:     aws.Int(25),
		Servings:     aws.Int(4),
		Difficulty:   aws.String(catalog.EASY),
		Cuisine:      aws.String("Indian"),
		DietaryTags:  &[]string{"Vegan"},
		Ingredients:  &[]string{"1 can chickpeas", "curry paste"},
		Instructions: &[]string{"Simmer everything"},
		Nutrition: &catalog.NutritionInput{
			Calories: aws.Float64(420),
			Protein:  aws.Float64(16),
			Carbs:    aws.Float64(60),
			Fat:      aws.Float64(12),
		},
	}
}

func TestRouter(t *testing.T) {
	server := NewLocalServer(t)
	suffix := uuid.NewString()[:8]
	owner := server.Register(t, "Ada", fmt.Sprintf("Ada-%s@Example.com", suffix))
	other := server.Register(t, "Grace", fmt.Sprintf("grace-%s@example.com", suffix))

	t.Run("Health", func(t *testing.T) {
		var message Message
		resp := server.Get(t, &message, "/health")
		if resp.StatusCode != 200 || message.Message != "MealMaster API is running!" {
			t.Fatalf("Unexpected health response %d: %s", resp.StatusCode, resp.Body)
		}
		if resp.Headers["access-control-allow-origin"] != "*" {
			t.Fatalf("Expected CORS headers on every response, got %v", resp.Headers)
		}
	})

	t.Run("Preflight", func(t *testing.T) {
		resp := server.Options(t, "/recipes")
		if resp.StatusCode != 200 || resp.Headers["access-control-allow-methods"] == "" {
			t.Fatalf("Unexpected preflight response %d: %v", resp.StatusCode, resp.Headers)
		}
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		if resp := server.Get(t, nil, "/nothing/here"); resp.StatusCode != 404 {
			t.Fatalf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("AccountWorkflow", func(t *testing.T) {
		server.UpdateIdentity("")
		resp := server.Post(t, nil, "/auth/register", accounts.RegisterInput{
			Name:     "Ada Again",
			Email:    fmt.Sprintf("ada-%s@example.com", suffix),
			Password: "secret1",
		})
		if resp.StatusCode != 409 {
			t.Fatalf("Expected 409 for a duplicate email, got %d: %s", resp.StatusCode, resp.Body)
		}

		var failed Message
		resp = server.Post(t, &failed, "/auth/login", accounts.LoginInput{
			Email:    fmt.Sprintf("ada-%s@example.com", suffix),
			Password: "wrong-password",
		})
		if resp.StatusCode != 400 || failed.Message != "Invalid credentials" {
			t.Fatalf("Expected invalid credentials, got %d: %s", resp.StatusCode, resp.Body)
		}

		var session accounts.Session
		resp = server.Post(t, &session, "/auth/login", accounts.LoginInput{
			Email:    fmt.Sprintf("ADA-%s@example.com", suffix),
			Password: "secret1",
		})
		if resp.StatusCode != 200 || session.User.Id != owner.User.Id {
			t.Fatalf("Expected to log in as %s, got %d: %s", owner.User.Id, resp.StatusCode, resp.Body)
		}

		if resp := server.Get(t, nil, "/auth/me"); resp.StatusCode != 401 {
			t.Fatalf("Expected 401 without a token, got %d", resp.StatusCode)
		}
		server.UpdateIdentity("not-a-token")
		if resp := server.Get(t, nil, "/auth/me"); resp.StatusCode != 401 {
			t.Fatalf("Expected 401 with a bad token, got %d", resp.StatusCode)
		}

		server.UpdateIdentity(session.Token)
		var me UserResponse
		resp = server.Get(t, &me, "/auth/me")
		if resp.StatusCode != 200 || me.User.Name != "Ada" || me.User.DailyCalorieGoal != 2000 {
			t.Fatalf("Unexpected profile %d: %s", resp.StatusCode, resp.Body)
		}

		var updated UserResponse
		resp = server.Put(t, &updated, "/auth/profile", accounts.ProfileInput{
			DietaryPreferences: &[]string{"Vegetarian"},
			DailyCalorieGoal:   aws.Float64(1800),
		})
		if resp.StatusCode != 200 || !updated.User.ProfileComplete || updated.User.DailyCalorieGoal != 1800 {
			t.Fatalf("Unexpected profile update %d: %s", resp.StatusCode, resp.Body)
		}
	})

	t.Run("PasswordResetWorkflow", func(t *testing.T) {
		server.UpdateIdentity("")
		email := fmt.Sprintf("grace-%s@example.com", suffix)
		if resp := server.Post(t, nil, "/auth/forgot-password", accounts.ForgotPasswordInput{Email: "nobody-" + email}); resp.StatusCode != 404 {
			t.Fatalf("Expected 404 for an unknown email, got %d", resp.StatusCode)
		}
		var sent Message
		resp := server.Post(t, &sent, "/auth/forgot-password", accounts.ForgotPasswordInput{Email: email})
		if resp.StatusCode != 200 || sent.Message != "Password reset link sent to your email." {
			t.Fatalf("Unexpected forgot password response %d: %s", resp.StatusCode, resp.Body)
		}
		token := server.Notifications.LastToken(t)
		var reset Message
		resp = server.Post(t, &reset, "/auth/reset-password/"+token, accounts.ResetPasswordInput{Password: "newsecret"})
		if resp.StatusCode != 200 || reset.Message != "Password reset successful" {
			t.Fatalf("Unexpected reset response %d: %s", resp.StatusCode, resp.Body)
		}
		var reused Message
		resp = server.Post(t, &reused, "/auth/reset-password/"+token, accounts.ResetPasswordInput{Password: "another"})
		if resp.StatusCode != 400 || reused.Message != "Invalid or expired token" {
			t.Fatalf("Expected a used token to be rejected, got %d: %s", resp.StatusCode, resp.Body)
		}
		if resp := server.Post(t, nil, "/auth/login", accounts.LoginInput{Email: email, Password: "newsecret"}); resp.StatusCode != 200 {
			t.Fatalf("Expected the new password to work, got %d: %s", resp.StatusCode, resp.Body)
		}

		server.Post(t, nil, "/auth/forgot-password", accounts.ForgotPasswordInput{Email: email})
		token = server.Notifications.LastToken(t)
		results := make(chan error, 3)
		var wg sync.WaitGroup
		for i := 0; i < cap(results); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- server.Services.Accounts.ResetPassword(context.Background(), token, accounts.ResetPasswordInput{Password: "racesecret"})
			}()
		}
		wg.Wait()
		close(results)
		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			}
		}
		if succeeded != 1 {
			t.Fatalf("Expected exactly one concurrent reset to succeed, got %d", succeeded)
		}
	})

	var recipe catalog.Recipe
	t.Run("RecipeWorkflow", func(t *testing.T) {
		server.UpdateIdentity("")
		if resp := server.Post(t, nil, "/recipes", RecipeInput("Chickpea Curry")); resp.StatusCode != 401 {
			t.Fatalf("Expected 401 creating anonymously, got %d", resp.StatusCode)
		}

		server.UpdateIdentity(owner.Token)
		var invalid Message
		resp := server.Post(t, &invalid, "/recipes", catalog.RecipeInput{Name: aws.String("Half a recipe")})
		if resp.StatusCode != 400 || len(invalid.Fields) == 0 {
			t.Fatalf("Expected a validation error with fields, got %d: %s", resp.StatusCode, resp.Body)
		}

		created := server.Post(t, &recipe, "/recipes", RecipeInput("Chickpea Curry"))
		if created.StatusCode != 201 {
			t.Fatalf("Response on create %d: %s", created.StatusCode, created.Body)
		}
		if recipe.CreatedBy == nil || recipe.CreatedBy.Id != owner.User.Id || recipe.CreatedBy.Name != "Ada" {
			t.Fatalf("Expected the creator to be resolved: %s", created.Body)
		}

		server.UpdateIdentity("")
		var fetched catalog.Recipe
		get := server.Get(t, &fetched, "/recipes/"+recipe.Id)
		if get.StatusCode != 200 || fetched.Name != "Chickpea Curry" {
			t.Fatalf("Response failed with status %d: %s", get.StatusCode, get.Body)
		}

		var results []catalog.Recipe
		list := server.GetQuery(t, &results, "/recipes", map[string]string{
			"q":           "chickpea",
			"dietaryTags": "Vegan,Keto",
			"maxCookTime": "30",
		})
		if list.StatusCode != 200 || len(results) != 1 || results[0].Id != recipe.Id {
			t.Fatalf("Search does not contain %s: %s", recipe.Id, list.Body)
		}
		var none []catalog.Recipe
		server.GetQuery(t, &none, "/recipes", map[string]string{"difficulty": catalog.HARD})
		if len(none) != 0 {
			t.Fatalf("Expected no hard recipes, got %v", none)
		}
		if resp := server.GetQuery(t, nil, "/recipes", map[string]string{"maxCookTime": "soon"}); resp.StatusCode != 400 {
			t.Fatalf("Expected 400 for a bad maxCookTime, got %d", resp.StatusCode)
		}

		server.UpdateIdentity(other.Token)
		if resp := server.Put(t, nil, "/recipes/"+recipe.Id, catalog.RecipeInput{Name: aws.String("Stolen")}); resp.StatusCode != 403 {
			t.Fatalf("Expected 403 for a non-owner update, got %d: %s", resp.StatusCode, resp.Body)
		}
		if resp := server.Delete(t, nil, "/recipes/"+recipe.Id); resp.StatusCode != 403 {
			t.Fatalf("Expected 403 for a non-owner delete, got %d: %s", resp.StatusCode, resp.Body)
		}

		server.UpdateIdentity(owner.Token)
		var updated catalog.Recipe
		resp = server.Put(t, &updated, "/recipes/"+recipe.Id, catalog.RecipeInput{
			Nutrition: &catalog.NutritionInput{Calories: aws.Float64(400)},
		})
		if resp.StatusCode != 200 || updated.Nutrition == nil || updated.Nutrition.Calories != 400 || updated.Nutrition.Protein != 16 {
			t.Fatalf("Expected a partial nutrition update, got %d: %s", resp.StatusCode, resp.Body)
		}
		recipe = updated
	})

	t.Run("ResolveManyRecipes", func(t *testing.T) {
		ids := []string{recipe.Id}
		for i := 0; i < 150; i++ {
			ids = append(ids, fmt.Sprintf("stale-%d", i))
		}
		ids = append(ids, recipe.Id)
		resolved, err := server.Services.Catalog.ResolveRecipes(context.Background(), ids)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if len(resolved) != 1 || resolved[recipe.Id].Name != recipe.Name {
			t.Fatalf("Expected only %s to resolve, but got %v", recipe.Id, resolved)
		}
	})

	t.Run("MealPlanWorkflow", func(t *testing.T) {
		server.UpdateIdentity(owner.Token)
		resp := server.Post(t, nil, "/meal-plan", mealplan.EntryInput{
			Date:     aws.String("2024-03-04"),
			MealType: aws.String("brunch"),
			RecipeId: aws.String(recipe.Id),
		})
		if resp.StatusCode != 400 {
			t.Fatalf("Expected 400 for a bad meal type, got %d: %s", resp.StatusCode, resp.Body)
		}

		var lunch mealplan.Entry
		resp = server.Post(t, &lunch, "/meal-plan", mealplan.EntryInput{
			Date:     aws.String("2024-03-04"),
			MealType: aws.String(mealplan.LUNCH),
			RecipeId: aws.String(recipe.Id),
			Servings: aws.Float64(2),
		})
		if resp.StatusCode != 201 || lunch.Recipe == nil || lunch.Recipe.Id != recipe.Id {
			t.Fatalf("Response on create %d: %s", resp.StatusCode, resp.Body)
		}
		var breakfast mealplan.Entry
		resp = server.Post(t, &breakfast, "/meal-plan", mealplan.EntryInput{
			Date:     aws.String("2024-03-04"),
			MealType: aws.String(mealplan.BREAKFAST),
			RecipeId: aws.String(recipe.Id),
		})
		if resp.StatusCode != 201 || breakfast.Servings != 1 {
			t.Fatalf("Expected default servings of 1, got %d: %s", resp.StatusCode, resp.Body)
		}
		var later mealplan.Entry
		server.Post(t, &later, "/meal-plan", mealplan.EntryInput{
			Date:     aws.String("2024-03-20"),
			MealType: aws.String(mealplan.DINNER),
			RecipeId: aws.String(recipe.Id),
		})

		var entries []mealplan.Entry
		resp = server.GetQuery(t, &entries, "/meal-plan", map[string]string{
			"startDate": "2024-03-04",
			"endDate":   "2024-03-10",
		})
		if resp.StatusCode != 200 || len(entries) != 2 {
			t.Fatalf("Expected two entries in the week, got %d: %s", resp.StatusCode, resp.Body)
		}
		if entries[0].Id != breakfast.Id || entries[1].Id != lunch.Id {
			t.Fatalf("Expected breakfast before lunch: %s", resp.Body)
		}
		var all []mealplan.Entry
		server.Get(t, &all, "/meal-plan")
		if len(all) != 3 {
			t.Fatalf("Expected every entry without a range, got %d", len(all))
		}

		server.UpdateIdentity(other.Token)
		var hidden []mealplan.Entry
		server.Get(t, &hidden, "/meal-plan")
		if len(hidden) != 0 {
			t.Fatalf("Expected no entries for another user, got %d", len(hidden))
		}
		if resp := server.Put(t, nil, "/meal-plan/"+lunch.Id, mealplan.EntryInput{Servings: aws.Float64(3)}); resp.StatusCode != 403 {
			t.Fatalf("Expected 403 for a non-owner update, got %d", resp.StatusCode)
		}

		server.UpdateIdentity(owner.Token)
		var moved mealplan.Entry
		resp = server.Put(t, &moved, "/meal-plan/"+later.Id, mealplan.EntryInput{
			Date:     aws.String("2024-03-06"),
			Servings: aws.Float64(0.5),
		})
		if resp.StatusCode != 200 || moved.Date != "2024-03-06" || moved.Servings != 0.5 {
			t.Fatalf("Unexpected update %d: %s", resp.StatusCode, resp.Body)
		}

		var summary nutrition.Summary
		resp = server.Get(t, &summary, "/nutrition")
		if resp.StatusCode != 200 {
			t.Fatalf("Unexpected nutrition response %d: %s", resp.StatusCode, resp.Body)
		}
		if summary.SelectedDay.Day != "Wednesday" || summary.SelectedDay.Nutrition.Calories != 50 {
			t.Fatalf("Expected Wednesday with 50 calories, got %v", summary.SelectedDay)
		}
		if summary.Week[0].Day != "Monday" || summary.Week[0].Nutrition.Calories != 300 {
			t.Fatalf("Expected 300 calories on Monday, got %v", summary.Week[0])
		}
		if summary.Goals.Calories != 1800 {
			t.Fatalf("Expected the profile goal to be used, got %v", summary.Goals)
		}
		var monday nutrition.Summary
		server.GetQuery(t, &monday, "/nutrition", map[string]string{"day": "monday"})
		if monday.SelectedDay.Day != "Monday" || monday.SelectedDay.ByMealType[mealplan.LUNCH].Calories != 200 {
			t.Fatalf("Expected the Monday lunch breakdown, got %v", monday.SelectedDay)
		}
		if resp := server.GetQuery(t, nil, "/nutrition", map[string]string{"day": "Someday"}); resp.StatusCode != 400 {
			t.Fatalf("Expected 400 for an unknown day, got %d", resp.StatusCode)
		}
		var halfRange Message
		resp = server.GetQuery(t, &halfRange, "/nutrition", map[string]string{"startDate": "2024-03-04"})
		if resp.StatusCode != 400 || len(halfRange.Fields) != 1 || halfRange.Fields[0] != "endDate" {
			t.Fatalf("Expected 400 naming endDate for a half range, got %d: %s", resp.StatusCode, resp.Body)
		}
		var ranged nutrition.Summary
		resp = server.GetQuery(t, &ranged, "/nutrition", map[string]string{"startDate": "2024-03-05", "endDate": "2024-03-06"})
		if resp.StatusCode != 200 || ranged.Week[0].Nutrition.Calories != 0 {
			t.Fatalf("Expected Monday outside the range, got %d: %s", resp.StatusCode, resp.Body)
		}

		for _, entry := range []mealplan.Entry{lunch, breakfast, later} {
			var removed Message
			resp := server.Delete(t, &removed, "/meal-plan/"+entry.Id)
			if resp.StatusCode != 200 || removed.Message != "Meal removed from plan successfully" {
				t.Fatalf("Unexpected delete %d: %s", resp.StatusCode, resp.Body)
			}
		}
	})

	t.Run("DeleteRecipe", func(t *testing.T) {
		server.UpdateIdentity(owner.Token)
		var deleted Message
		resp := server.Delete(t, &deleted, "/recipes/"+recipe.Id)
		if resp.StatusCode != 200 || deleted.Message != "Recipe deleted successfully" {
			t.Fatalf("Response on delete %d: %s", resp.StatusCode, resp.Body)
		}
		if resp := server.Get(t, nil, "/recipes/"+recipe.Id); resp.StatusCode != 404 {
			t.Fatalf("Expected 404 after delete, got %d", resp.StatusCode)
		}
	})

	t.Run("AuditWorkflow", func(t *testing.T) {
		created, err := server.Services.Audits.Create(context.TODO(), owner.User.Id, data.AuditInputDTO{
			ResourceId:   aws.String(recipe.Id),
			ResourceType: aws.String("Recipe"),
			Action:       aws.String("CREATED"),
			Message:      aws.String(fmt.Sprintf("Recipe %s (Chickpea Curry) was created", recipe.Id)),
		})
		if err != nil {
			t.Fatalf("Failed to create audit entry: %v", err)
		}
		server.UpdateIdentity(owner.Token)
		var results data.QueryResults[audits.Audit]
		resp := server.Get(t, &results, "/audits")
		if resp.StatusCode != 200 || len(results.Items) != 1 || results.Items[0].Id != created.SK {
			t.Fatalf("Expected the audit entry to be listed, got %d: %s", resp.StatusCode, resp.Body)
		}
		server.UpdateIdentity(other.Token)
		var others data.QueryResults[audits.Audit]
		server.Get(t, &others, "/audits")
		if len(others.Items) != 0 {
			t.Fatalf("Expected no audit entries for another user, got %v", others.Items)
		}
		server.UpdateIdentity(owner.Token)
		if resp := server.Delete(t, nil, "/audits/"+created.SK); resp.StatusCode != 204 {
			t.Fatalf("Expected 204 on delete, got %d", resp.StatusCode)
		}
	})

	t.Run("ErrorsAreJSON", func(t *testing.T) {
		server.UpdateIdentity(owner.Token)
		resp := server.Request(t, "POST", "/recipes", []byte("{not json"), nil, nil)
		if resp.StatusCode != 400 || !strings.HasPrefix(resp.Body, "{\"message\":") {
			t.Fatalf("Expected a JSON error body, got %d: %s", resp.StatusCode, resp.Body)
		}
	})
}
