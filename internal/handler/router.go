package handler

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/platemate/internal/metrics"
	"github.com/hitoshi/platemate/internal/middleware"
)

// mainPage はルートパスで返す静的クライアントのHTMLファイル名。
const mainPage = "main.html"

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Metrics           metrics.MetricsCollector
	MetricsGatherer   prometheus.Gatherer

	// アカウント
	AccountService AccountServiceInterface

	// 保存済みレシピ
	FavoriteService FavoriteServiceInterface

	// 外部API
	RecipeSearcher     RecipeSearcher
	RestaurantSearcher RestaurantSearcher

	// ヘルスチェック
	HealthChecker HealthChecker

	// 静的クライアント（nilの場合は配信しない）
	StaticFS fs.FS
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → Logging → Metrics → SecurityHeaders → CORS → RateLimit
//
// レート制限は登録・ログインとそれ以外のAPIで別枠とし、静的ファイル・ヘルスチェック・メトリクスには適用しない。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	authLimit, generalLimit := passThrough, passThrough
	if deps.RateLimiter != nil {
		authLimit = deps.RateLimiter.AuthMiddleware()
		generalLimit = deps.RateLimiter.GeneralMiddleware()
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(collector))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	accountHandler := NewAccountHandler(deps.AccountService)
	favoriteHandler := NewFavoriteHandler(deps.FavoriteService)
	recipeHandler := NewRecipeHandler(deps.RecipeSearcher)
	restaurantHandler := NewRestaurantHandler(deps.RestaurantSearcher)

	// --- 運用エンドポイント ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- 登録・ログイン ---
	// ミドルウェアスタック: RateLimit(Auth)
	r.Group(func(r chi.Router) {
		r.Use(authLimit)

		r.Post("/register", accountHandler.Register)
		r.Post("/login", accountHandler.Login)
	})

	// --- API ---
	// ミドルウェアスタック: RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(generalLimit)

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/mood/{mood}", recipeHandler.SearchByMood)
			r.Get("/ingredients", recipeHandler.SearchByIngredients)
		})

		r.Get("/restaurants/city/{city}", restaurantHandler.SearchCity)

		r.Post("/save-recipe", favoriteHandler.SaveRecipe)
		r.Get("/get-saved-recipes/{userId}", favoriteHandler.ListSavedRecipes)
	})

	// --- 静的クライアント ---
	if deps.StaticFS != nil {
		static := deps.StaticFS
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFileFS(w, r, static, mainPage)
		})
		r.Get("/*", http.FileServerFS(static).ServeHTTP)
	}

	return r
}

// passThrough はRateLimiter未設定時に使用する何もしないミドルウェア。
func passThrough(next http.Handler) http.Handler {
	return next
}
