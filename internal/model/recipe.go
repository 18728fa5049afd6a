package model

import "time"

// SavedRecipe はユーザーが保存したレシピの紐付けを表す。
// UserIDは存在確認を行わない参照であり、同一レシピの重複保存も許容する。
type SavedRecipe struct {
	ID        string
	UserID    string
	RecipeID  string // 外部レシピAPIが払い出す不透明なID
	Title     string
	CreatedAt time.Time
}

// RecipeSummary は外部レシピAPIの検索結果を正規化した一時的な値。
// 永続化もキャッシュもしない。
type RecipeSummary struct {
	ID    int64
	Title string
	Image string // 空の場合がある
}

// RestaurantSummary はジオコーダの検索結果を正規化した一時的な値。
// プロバイダが構造化住所を返さないため、DisplayNameとAddressには同じ値が入る。
// DisplayNameは一意であることを保証しない。
type RestaurantSummary struct {
	DisplayName string
	Address     string
}
