package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultServerURL はAPIサーバーの既定URL。
	DefaultServerURL = "http://localhost:5000"
	// DefaultTimeout はAPI呼び出しの既定タイムアウト。
	DefaultTimeout = 10 * time.Second

	maxResponseSize int64 = 2 * 1024 * 1024
)

// User はログイン応答に含まれるユーザー情報。
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Recipe はレシピ検索結果1件。
type Recipe struct {
	ID    int64  `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Restaurant はレストラン検索結果1件。
type Restaurant struct {
	DisplayName string `json:"display_name" yaml:"display_name"`
	Address     string `json:"address" yaml:"address"`
}

// SavedRecipe は保存済みレシピ。
type SavedRecipe struct {
	ID       string `json:"id" yaml:"id"`
	UserID   string `json:"userId" yaml:"userId"`
	RecipeID string `json:"recipeId" yaml:"recipeId"`
	Title    string `json:"title" yaml:"title"`
}

// ResponseError はAPIが2xx以外で応答したことを表す。
// Code以下はサーバーの統一エラーフォーマットから取り出した値で、本文が解析できない場合は空になる。
type ResponseError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
	Category   string `json:"category"`
	Action     string `json:"action"`
}

// Error はerrorインターフェースを実装する。
func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
	if e.Code == "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	User User `json:"user"`
}

// APIClient はPlateMate APIの型付きHTTPクライアント。
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient はAPIClientを生成する。httpClientがnilの場合はDefaultTimeoutのクライアントを使用する。
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Register はユーザーを登録し、サーバーのメッセージを返す。
func (c *APIClient) Register(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/register", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login は認証を行い、ユーザー情報を返す。
func (c *APIClient) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// RecipesByMood は気分キーワードでレシピを検索する。
func (c *APIClient) RecipesByMood(ctx context.Context, mood string) ([]Recipe, error) {
	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/mood/"+url.PathEscape(mood), nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecipesByIngredients はカンマ区切りの食材リストでレシピを検索する。
func (c *APIClient) RecipesByIngredients(ctx context.Context, ingredients string) ([]Recipe, error) {
	q := url.Values{}
	q.Set("ingredients", ingredients)
	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/ingredients?"+q.Encode(), nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// RestaurantsByCity は都市名でレストランを検索する。
func (c *APIClient) RestaurantsByCity(ctx context.Context, city string) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurants/city/"+url.PathEscape(city), nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// SaveRecipe はレシピをユーザーのお気に入りに保存し、サーバーのメッセージを返す。
func (c *APIClient) SaveRecipe(ctx context.Context, userID, recipeID, title string) (string, error) {
	body := map[string]string{"userId": userID, "recipeId": recipeID, "title": title}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/save-recipe", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SavedRecipes はユーザーの保存済みレシピを返す。
func (c *APIClient) SavedRecipes(ctx context.Context, userID string) ([]SavedRecipe, error) {
	var recipes []SavedRecipe
	if err := c.do(ctx, http.MethodGet, "/get-saved-recipes/"+url.PathEscape(userID), nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Health はサーバーのヘルスチェックエンドポイントを呼び出す。
func (c *APIClient) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/health", nil, &resp)
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &ResponseError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
