package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/platemate/internal/model"
)

// PostgresSavedRecipeRepo はPostgreSQLを使用した保存済みレシピリポジトリ。
type PostgresSavedRecipeRepo struct {
	db *sql.DB
}

// NewPostgresSavedRecipeRepo はPostgresSavedRecipeRepoを生成する。
func NewPostgresSavedRecipeRepo(db *sql.DB) *PostgresSavedRecipeRepo {
	return &PostgresSavedRecipeRepo{db: db}
}

// Create は保存済みレシピを作成する。
// saved_recipes.user_idには外部キー制約を設けていないため、任意の文字列を受け付ける。
func (r *PostgresSavedRecipeRepo) Create(ctx context.Context, recipe *model.SavedRecipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_recipes (id, user_id, recipe_id, title, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		recipe.ID, recipe.UserID, recipe.RecipeID, recipe.Title, recipe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert saved recipe: %w", err)
	}

	return nil
}

// ListByUserID はユーザーの保存済みレシピを作成日時の昇順で返す。
func (r *PostgresSavedRecipeRepo) ListByUserID(ctx context.Context, userID string) ([]*model.SavedRecipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, recipe_id, title, created_at
		 FROM saved_recipes
		 WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*model.SavedRecipe, 0)
	for rows.Next() {
		rec := &model.SavedRecipe{}
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.RecipeID, &rec.Title, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved recipes: %w", err)
	}

	return recipes, nil
}

// compile-time interface check
var _ SavedRecipeRepository = (*PostgresSavedRecipeRepo)(nil)
