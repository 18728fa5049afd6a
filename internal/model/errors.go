// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, upstream, storage, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeRecipeFetchFailed  = "RECIPE_FETCH_FAILED"
	ErrCodeRestaurantFetch    = "RESTAURANT_FETCH_FAILED"
	ErrCodeSaveRecipeFailed   = "SAVE_RECIPE_FAILED"
	ErrCodeListSavedFailed    = "LIST_SAVED_RECIPES_FAILED"
	ErrCodeRegistrationFailed = "REGISTRATION_FAILED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewValidationError は入力項目の欠落エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
		Action:   "すべての項目を入力してください。",
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "Invalid request body.",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}

// NewDuplicateEmailError は登録済みメールアドレスによる重複登録エラーを生成する。
func NewDuplicateEmailError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateEmail,
		Message:  "User already exists!",
		Category: "validation",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// メールアドレスの不在とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid credentials",
		Category: "auth",
		Action:   "メールアドレスとパスワードを確認してください。",
	}
}

// NewRegistrationFailedError はアカウント保存時のストレージ障害エラーを生成する。
func NewRegistrationFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeRegistrationFailed,
		Message:  "Failed to register user",
		Category: "storage",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewRecipeFetchFailedError はレシピAPI呼び出し失敗エラーを生成する。
// 原因（タイムアウト、レート制限、不正なレスポンス等）は区別せずに返す。
func NewRecipeFetchFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeRecipeFetchFailed,
		Message:  "Failed to fetch recipes",
		Category: "upstream",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewRestaurantFetchFailedError はジオコーダ呼び出し失敗エラーを生成する。
func NewRestaurantFetchFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeRestaurantFetch,
		Message:  "Failed to fetch restaurants",
		Category: "upstream",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewSaveRecipeFailedError はレシピ保存失敗エラーを生成する。
func NewSaveRecipeFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeSaveRecipeFailed,
		Message:  "Failed to save recipe",
		Category: "storage",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewListSavedRecipesFailedError は保存済みレシピ取得失敗エラーを生成する。
func NewListSavedRecipesFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeListSavedFailed,
		Message:  "Failed to fetch saved recipes",
		Category: "storage",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
