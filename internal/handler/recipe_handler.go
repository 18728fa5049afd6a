package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/platemate/internal/model"
)

// RecipeSearcher はレシピ検索ハンドラーが必要とするゲートウェイインターフェース。
type RecipeSearcher interface {
	SearchByMood(ctx context.Context, mood string) ([]model.RecipeSummary, error)
	SearchByIngredients(ctx context.Context, ingredients string) ([]model.RecipeSummary, error)
}

// RecipeHandler はレシピ検索のHTTPハンドラー。
type RecipeHandler struct {
	searcher RecipeSearcher
}

// NewRecipeHandler はRecipeHandlerを生成する。
func NewRecipeHandler(searcher RecipeSearcher) *RecipeHandler {
	return &RecipeHandler{searcher: searcher}
}

// recipeResponse はレシピ検索結果の1件。
type recipeResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// SearchByMood は気分キーワードでレシピを検索する。
// GET /recipes/mood/{mood}
func (h *RecipeHandler) SearchByMood(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.searcher.SearchByMood(r.Context(), urlParam(r, "mood"))
	h.writeRecipes(w, recipes, err)
}

// SearchByIngredients はカンマ区切りの食材リストでレシピを検索する。
// GET /recipes/ingredients?ingredients=a,b,c
func (h *RecipeHandler) SearchByIngredients(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.searcher.SearchByIngredients(r.Context(), r.URL.Query().Get("ingredients"))
	h.writeRecipes(w, recipes, err)
}

// writeRecipes は検索結果を書き込む。
// 上流の失敗は原因によらず500に集約する。原因種別はゲートウェイ側でログとメトリクスに記録済み。
func (h *RecipeHandler) writeRecipes(w http.ResponseWriter, recipes []model.RecipeSummary, err error) {
	if err != nil {
		writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewRecipeFetchFailedError())
		return
	}

	resp := make([]recipeResponse, len(recipes))
	for i, rec := range recipes {
		resp[i] = recipeResponse{ID: rec.ID, Title: rec.Title, Image: rec.Image}
	}
	writeJSON(w, http.StatusOK, resp)
}
