package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hitoshi/platemate/internal/middleware"
	"github.com/hitoshi/platemate/internal/model"
)

// --- モック定義 ---

type mockAccountService struct {
	registerFn func(ctx context.Context, name, email, password string) error
	loginFn    func(ctx context.Context, email, password string) (*model.User, error)
}

func (m *mockAccountService) Register(ctx context.Context, name, email, password string) error {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, email, password)
	}
	return nil
}

func (m *mockAccountService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, model.NewInvalidCredentialsError()
}

type mockFavoriteService struct {
	saveFn func(ctx context.Context, userID, recipeID, title string) (*model.SavedRecipe, error)
	listFn func(ctx context.Context, userID string) ([]*model.SavedRecipe, error)
}

func (m *mockFavoriteService) Save(ctx context.Context, userID, recipeID, title string) (*model.SavedRecipe, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, recipeID, title)
	}
	return &model.SavedRecipe{ID: "saved-1", UserID: userID, RecipeID: recipeID, Title: title}, nil
}

func (m *mockFavoriteService) List(ctx context.Context, userID string) ([]*model.SavedRecipe, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []*model.SavedRecipe{}, nil
}

type mockRecipeSearcher struct {
	searchByMoodFn        func(ctx context.Context, mood string) ([]model.RecipeSummary, error)
	searchByIngredientsFn func(ctx context.Context, ingredients string) ([]model.RecipeSummary, error)
}

func (m *mockRecipeSearcher) SearchByMood(ctx context.Context, mood string) ([]model.RecipeSummary, error) {
	if m.searchByMoodFn != nil {
		return m.searchByMoodFn(ctx, mood)
	}
	return []model.RecipeSummary{}, nil
}

func (m *mockRecipeSearcher) SearchByIngredients(ctx context.Context, ingredients string) ([]model.RecipeSummary, error) {
	if m.searchByIngredientsFn != nil {
		return m.searchByIngredientsFn(ctx, ingredients)
	}
	return []model.RecipeSummary{}, nil
}

type mockRestaurantSearcher struct {
	searchCityFn func(ctx context.Context, city string) ([]model.RestaurantSummary, error)
}

func (m *mockRestaurantSearcher) SearchCity(ctx context.Context, city string) ([]model.RestaurantSummary, error) {
	if m.searchCityFn != nil {
		return m.searchCityFn(ctx, city)
	}
	return []model.RestaurantSummary{}, nil
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	return m.err
}

// --- テスト用ルーター構築ヘルパー ---

// testStaticFS はテスト用の静的クライアント。
var testStaticFS = fstest.MapFS{
	"main.html": &fstest.MapFile{Data: []byte("<html><body>PlateMate</body></html>")},
	"script.js": &fstest.MapFile{Data: []byte("console.log('platemate');")},
}

// newTestDeps はモックで構成したRouterDepsを返す。
func newTestDeps(t *testing.T) *RouterDeps {
	t.Helper()

	rl := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	t.Cleanup(rl.Stop)

	return &RouterDeps{
		CORSAllowedOrigin:  "http://localhost:5500",
		RateLimiter:        rl,
		AccountService:     &mockAccountService{},
		FavoriteService:    &mockFavoriteService{},
		RecipeSearcher:     &mockRecipeSearcher{},
		RestaurantSearcher: &mockRestaurantSearcher{},
		HealthChecker:      &mockHealthChecker{},
		StaticFS:           testStaticFS,
	}
}

// newJSONRequest はJSONボディを持つリクエストを生成する。
func newJSONRequest(method, path, body string) *http.Request {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.10:40000"
	req.Header.Set("Content-Type", "application/json")
	return req
}
