package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/platemate/internal/model"
)

// MsgUserRegistered は登録成功時のメッセージ。
const MsgUserRegistered = "User registered successfully!"

// AccountServiceInterface はアカウントハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	// Register はアカウントを作成する。
	Register(ctx context.Context, name, email, password string) error
	// Login はメールアドレスとパスワードが一致するアカウントを返す。
	Login(ctx context.Context, email, password string) (*model.User, error)
}

// AccountHandler は登録・ログインのHTTPハンドラー。
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler はAccountHandlerを生成する。
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// registerRequest はアカウント登録リクエストのボディ。
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse はクライアントに返すアカウント情報。パスワードハッシュは含めない。
type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// loginResponse はログイン成功時のレスポンス。
type loginResponse struct {
	User userResponse `json:"user"`
}

// Register はアカウントを登録する。
// POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: MsgUserRegistered})
}

// Login はメールアドレスとパスワードを照合し、アカウント情報を返す。
// POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		User: userResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}
