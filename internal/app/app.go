package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/platemate/internal/account"
	"github.com/hitoshi/platemate/internal/config"
	"github.com/hitoshi/platemate/internal/database"
	"github.com/hitoshi/platemate/internal/favorite"
	"github.com/hitoshi/platemate/internal/geocoder"
	"github.com/hitoshi/platemate/internal/handler"
	"github.com/hitoshi/platemate/internal/logger"
	"github.com/hitoshi/platemate/internal/metrics"
	"github.com/hitoshi/platemate/internal/middleware"
	"github.com/hitoshi/platemate/internal/recipeapi"
	"github.com/hitoshi/platemate/internal/repository"
	"github.com/hitoshi/platemate/internal/security"
	"github.com/hitoshi/platemate/internal/web"
)

// shutdownTimeout はグレースフルシャットダウンの待機時間。
const shutdownTimeout = 30 * time.Second

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたログレベルを反映する
	logger.SetLevel(cfg.LogLevel)

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "5000"
		}
		return runHealthcheck(fmt.Sprintf("http://localhost:%s/health", port))
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("driver", string(cfg.DatabaseDriver)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case CommandMigrate:
		return runMigrate(ctx, cfg)
	default:
		return runServe(ctx, cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// ストレージに接続し、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// ctxがキャンセルされる（SIGINTまたはSIGTERMを受信する）とグレースフルシャットダウンを行う。
func runServe(ctx context.Context, cfg *config.Config) error {
	// 1. 外部APIのベースURLを検証
	guard := security.NewOutboundGuard()
	for name, baseURL := range map[string]string{
		"RECIPE_API_BASE_URL": cfg.RecipeAPIBaseURL,
		"GEOCODER_BASE_URL":   cfg.GeocoderBaseURL,
	} {
		if err := guard.ValidateBaseURL(baseURL); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if cfg.RecipeAPIKey == "" {
		slog.Warn("RECIPE_API_KEY is not set; recipe searches will fail")
	}

	// 2. ストレージ接続
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			slog.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// 3. メトリクス
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// 4. 外部APIクライアント
	httpClient := guard.NewSafeClient(cfg.UpstreamTimeout)
	recipeClient := recipeapi.NewClient(httpClient, slog.Default(), collector, recipeapi.Options{
		BaseURL:         cfg.RecipeAPIBaseURL,
		APIKey:          cfg.RecipeAPIKey,
		MaxResponseSize: cfg.UpstreamMaxSize,
	})
	geocoderClient := geocoder.NewClient(httpClient, slog.Default(), collector, geocoder.Options{
		BaseURL:         cfg.GeocoderBaseURL,
		UserAgent:       cfg.GeocoderUserAgent,
		MaxResponseSize: cfg.UpstreamMaxSize,
	})

	// 5. レート制限
	rateLimiter := middleware.NewRateLimiter(
		middleware.RateLimiterConfigPerMinute(cfg.RateLimitGeneral, cfg.RateLimitAuth),
	)
	defer rateLimiter.Stop()

	// 6. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		Logger:             slog.Default(),
		CORSAllowedOrigin:  cfg.CORSAllowedOrigin,
		RateLimiter:        rateLimiter,
		Metrics:            collector,
		MetricsGatherer:    registry,
		AccountService:     account.NewService(store.users, collector),
		FavoriteService:    favorite.NewService(store.recipes, collector),
		RecipeSearcher:     recipeClient,
		RestaurantSearcher: geocoderClient,
		HealthChecker:      store.pinger,
		StaticFS:           web.FS(),
	})

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.UpstreamTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}

	return serve(ctx, server, ln)
}

// serve はリスナーでHTTPサーバーを起動し、ctxがキャンセルされるとグレースフルシャットダウンする。
func serve(ctx context.Context, server *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server starting", slog.String("addr", ln.Addr().String()))
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server listen error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はストレージのスキーマを適用する。
// PostgreSQLでは未適用のマイグレーションを順番に適用し、MongoDBでは必要なインデックスを作成する。
func runMigrate(ctx context.Context, cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		store, err := database.OpenMongo(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		defer store.Close(context.Background())

		if err := repository.EnsureMongoIndexes(ctx, store.Database); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	default:
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(healthURL string) error {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(healthURL)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLのパスワードをマスクする。
func maskDatabaseURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "***"
	}
	return u.Redacted()
}
