// Package favorite は保存済みレシピのドメインロジックを提供する。
package favorite

import (
	"context"
	"log/slog"

	"github.com/hitoshi/platemate/internal/metrics"
	"github.com/hitoshi/platemate/internal/model"
	"github.com/hitoshi/platemate/internal/repository"
)

// Service は保存済みレシピのサービス層。
// 入力値の検証、ユーザーの存在確認、重複排除はいずれも行わない。
type Service struct {
	recipeRepo repository.SavedRecipeRepository
	metrics    metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(recipeRepo repository.SavedRecipeRepository, collector metrics.MetricsCollector) *Service {
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	return &Service{recipeRepo: recipeRepo, metrics: collector}
}

// Save はレシピをユーザーのプロフィールに保存する。
func (s *Service) Save(ctx context.Context, userID, recipeID, title string) (*model.SavedRecipe, error) {
	recipe := &model.SavedRecipe{
		UserID:   userID,
		RecipeID: recipeID,
		Title:    title,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		slog.Error("レシピの保存に失敗しました",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewSaveRecipeFailedError()
	}

	s.metrics.RecordRecipeSaved()
	return recipe, nil
}

// List はユーザーの保存済みレシピを保存順に返す。該当がない場合は空スライスを返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.SavedRecipe, error) {
	recipes, err := s.recipeRepo.ListByUserID(ctx, userID)
	if err != nil {
		slog.Error("保存済みレシピの取得に失敗しました",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewListSavedRecipesFailedError()
	}
	if recipes == nil {
		recipes = make([]*model.SavedRecipe, 0)
	}
	return recipes, nil
}
