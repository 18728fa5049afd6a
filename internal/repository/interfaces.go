// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/platemate/internal/model"
)

// ErrDuplicateEmail はメールアドレスの一意制約違反を表す。
// 登録前の存在チェックは最適化に過ぎず、重複の最終判定はストレージの一意制約で行う。
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository はユーザーデータの永続化インターフェース。
// 更新・削除の操作は持たない。
type UserRepository interface {
	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスが既に登録されている場合はErrDuplicateEmailを返す。
	// user.IDが空の場合は実装側で採番して設定する。
	Create(ctx context.Context, user *model.User) error
}

// SavedRecipeRepository は保存済みレシピの永続化インターフェース。
type SavedRecipeRepository interface {
	// Create は保存済みレシピを作成する。
	// UserIDの存在確認や重複排除は行わない。
	Create(ctx context.Context, recipe *model.SavedRecipe) error

	// ListByUserID はユーザーの保存済みレシピを作成日時の昇順で返す。
	// 該当がない場合はエラーではなく空スライスを返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.SavedRecipe, error)
}

// Pinger はストレージの疎通確認インターフェース。
// ヘルスチェックで使用する。
type Pinger interface {
	PingContext(ctx context.Context) error
}
