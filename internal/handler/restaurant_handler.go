package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/platemate/internal/model"
)

// maxRestaurants はレスポンスに含めるレストランの最大件数。
const maxRestaurants = 5

// RestaurantSearcher はレストラン検索ハンドラーが必要とするゲートウェイインターフェース。
type RestaurantSearcher interface {
	SearchCity(ctx context.Context, city string) ([]model.RestaurantSummary, error)
}

// RestaurantHandler はレストラン検索のHTTPハンドラー。
type RestaurantHandler struct {
	searcher RestaurantSearcher
}

// NewRestaurantHandler はRestaurantHandlerを生成する。
func NewRestaurantHandler(searcher RestaurantSearcher) *RestaurantHandler {
	return &RestaurantHandler{searcher: searcher}
}

// restaurantResponse はレストラン検索結果の1件。
type restaurantResponse struct {
	DisplayName string `json:"display_name"`
	Address     string `json:"address"`
}

// SearchCity は都市名で周辺のレストランを最大5件返す。
// GET /restaurants/city/{city}
func (h *RestaurantHandler) SearchCity(w http.ResponseWriter, r *http.Request) {
	places, err := h.searcher.SearchCity(r.Context(), urlParam(r, "city"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewRestaurantFetchFailedError())
		return
	}

	if len(places) > maxRestaurants {
		places = places[:maxRestaurants]
	}

	resp := make([]restaurantResponse, len(places))
	for i, p := range places {
		resp[i] = restaurantResponse{DisplayName: p.DisplayName, Address: p.Address}
	}
	writeJSON(w, http.StatusOK, resp)
}
