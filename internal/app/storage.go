package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/platemate/internal/config"
	"github.com/hitoshi/platemate/internal/database"
	"github.com/hitoshi/platemate/internal/repository"
)

// storage はDATABASE_URLのスキームに応じて選択されたストレージ実装をまとめる。
type storage struct {
	users   repository.UserRepository
	recipes repository.SavedRecipeRepository
	pinger  repository.Pinger
	close   func(ctx context.Context) error
}

// openStorage はストレージに接続し、スキーマを適用したうえでリポジトリを構築する。
// PostgreSQLはマイグレーション、MongoDBはインデックス作成でemailの一意制約を保証する。
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		return openMongoStorage(ctx, cfg)
	default:
		return openPostgresStorage(ctx, cfg)
	}
}

func openPostgresStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("database connection established", slog.String("driver", string(config.DriverPostgres)))

	return &storage{
		users:   repository.NewPostgresUserRepo(db),
		recipes: repository.NewPostgresSavedRecipeRepo(db),
		pinger:  db,
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

func openMongoStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	store, err := database.OpenMongo(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	if err := repository.EnsureMongoIndexes(ctx, store.Database); err != nil {
		store.Close(context.Background())
		return nil, err
	}

	slog.Info("database connection established",
		slog.String("driver", string(config.DriverMongo)),
		slog.String("database", cfg.MongoDatabase),
	)

	return &storage{
		users:   repository.NewMongoUserRepo(store.Database),
		recipes: repository.NewMongoSavedRecipeRepo(store.Database),
		pinger:  store,
		close:   store.Close,
	}, nil
}
