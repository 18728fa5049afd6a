package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/platemate/internal/model"
)

// MsgRecipeSaved はレシピ保存成功時のメッセージ。
const MsgRecipeSaved = "Recipe saved successfully!"

// FavoriteServiceInterface は保存済みレシピハンドラーが必要とするサービスインターフェース。
type FavoriteServiceInterface interface {
	Save(ctx context.Context, userID, recipeID, title string) (*model.SavedRecipe, error)
	List(ctx context.Context, userID string) ([]*model.SavedRecipe, error)
}

// FavoriteHandler はレシピ保存・一覧のHTTPハンドラー。
type FavoriteHandler struct {
	service FavoriteServiceInterface
}

// NewFavoriteHandler はFavoriteHandlerを生成する。
func NewFavoriteHandler(service FavoriteServiceInterface) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// saveRecipeRequest はレシピ保存リクエストのボディ。
// 各フィールドの存在確認や型の確認は行わない。
type saveRecipeRequest struct {
	UserID   textValue `json:"userId"`
	RecipeID textValue `json:"recipeId"`
	Title    textValue `json:"title"`
}

// textValue は任意のJSON値を文字列として受け取る。
// 文字列はそのまま、nullは空文字列、数値や真偽値などはJSON表記のテキストになる。
// レシピ検索が返す数値のidをそのまま保存できるようにするため。
type textValue string

// UnmarshalJSON はjson.Unmarshalerを実装する。
func (v *textValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = textValue(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	*v = textValue(data)
	return nil
}

// savedRecipeResponse は保存済みレシピの1件。
type savedRecipeResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	RecipeID string `json:"recipeId"`
	Title    string `json:"title"`
}

// SaveRecipe はレシピをユーザーのプロフィールに保存する。
// POST /save-recipe
func (h *FavoriteHandler) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	var req saveRecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.service.Save(r.Context(), string(req.UserID), string(req.RecipeID), string(req.Title)); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: MsgRecipeSaved})
}

// ListSavedRecipes はユーザーの保存済みレシピ一覧を返す。該当がなければ空配列を返す。
// GET /get-saved-recipes/{userId}
func (h *FavoriteHandler) ListSavedRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.List(r.Context(), urlParam(r, "userId"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := make([]savedRecipeResponse, len(recipes))
	for i, rec := range recipes {
		resp[i] = savedRecipeResponse{
			ID:       rec.ID,
			UserID:   rec.UserID,
			RecipeID: rec.RecipeID,
			Title:    rec.Title,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
