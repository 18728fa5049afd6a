package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/platemate/internal/model"
	"github.com/hitoshi/platemate/internal/upstream"
)

func TestRecipeHandler_SearchByMood_PassesPathParam(t *testing.T) {
	var gotMood string
	deps := newTestDeps(t)
	deps.RecipeSearcher = &mockRecipeSearcher{
		searchByMoodFn: func(ctx context.Context, mood string) ([]model.RecipeSummary, error) {
			gotMood = mood
			return []model.RecipeSummary{
				{ID: 716429, Title: "Pasta with Garlic", Image: "https://img.example.com/1.jpg"},
				{ID: 715538, Title: "Bruschetta"},
			}, nil
		},
	}
	router := NewRouter(deps)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/mood/comfort%20food", nil))

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if gotMood != "comfort food" {
		t.Errorf("mood = %q, want %q", gotMood, "comfort food")
	}

	var body []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("len = %d, want 2", len(body))
	}
	if body[0]["id"] != float64(716429) || body[0]["title"] != "Pasta with Garlic" || body[0]["image"] != "https://img.example.com/1.jpg" {
		t.Errorf("body[0] = %v", body[0])
	}
	if _, ok := body[1]["image"]; ok {
		t.Errorf("image should be omitted when empty: %v", body[1])
	}
}

func TestRecipeHandler_SearchByIngredients_PassesQuery(t *testing.T) {
	var got string
	deps := newTestDeps(t)
	deps.RecipeSearcher = &mockRecipeSearcher{
		searchByIngredientsFn: func(ctx context.Context, ingredients string) ([]model.RecipeSummary, error) {
			got = ingredients
			return []model.RecipeSummary{{ID: 1, Title: "Omelette"}}, nil
		},
	}
	router := NewRouter(deps)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/ingredients?ingredients=egg,cheese", nil))

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if got != "egg,cheese" {
		t.Errorf("ingredients = %q, want %q", got, "egg,cheese")
	}
}

func TestRecipeHandler_EmptyResult_ReturnsEmptyArray(t *testing.T) {
	deps := newTestDeps(t)
	deps.RecipeSearcher = &mockRecipeSearcher{
		searchByMoodFn: func(ctx context.Context, mood string) ([]model.RecipeSummary, error) {
			return nil, nil
		},
	}
	router := NewRouter(deps)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/mood/happy", nil))

	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestRecipeHandler_UpstreamFailure_Returns500(t *testing.T) {
	kinds := []upstream.Kind{
		upstream.KindNetwork,
		upstream.KindTimeout,
		upstream.KindRateLimited,
		upstream.KindUnauthorized,
		upstream.KindBadStatus,
		upstream.KindMalformed,
	}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			deps := newTestDeps(t)
			deps.RecipeSearcher = &mockRecipeSearcher{
				searchByMoodFn: func(ctx context.Context, mood string) ([]model.RecipeSummary, error) {
					return nil, &upstream.Error{Provider: "recipeapi", Kind: kind}
				},
				searchByIngredientsFn: func(ctx context.Context, ingredients string) ([]model.RecipeSummary, error) {
					return nil, &upstream.Error{Provider: "recipeapi", Kind: kind}
				},
			}
			router := NewRouter(deps)

			for _, path := range []string{"/recipes/mood/happy", "/recipes/ingredients?ingredients=egg"} {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

				if w.Result().StatusCode != http.StatusInternalServerError {
					t.Errorf("%s: status = %d, want %d", path, w.Result().StatusCode, http.StatusInternalServerError)
				}
				var body apiErrorBody
				json.NewDecoder(w.Result().Body).Decode(&body)
				if body.Message != "Failed to fetch recipes" {
					t.Errorf("%s: message = %q, want %q", path, body.Message, "Failed to fetch recipes")
				}
			}
		})
	}
}
