// Package recipeapi は外部レシピAPI（Spoonacular互換）のクライアントを提供する。
package recipeapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hitoshi/platemate/internal/metrics"
	"github.com/hitoshi/platemate/internal/model"
	"github.com/hitoshi/platemate/internal/security"
	"github.com/hitoshi/platemate/internal/upstream"
)

const (
	// DefaultBaseURL はSpoonacular APIのベースURL。
	DefaultBaseURL = "https://api.spoonacular.com"
	// providerName はログとメトリクスで使用するプロバイダー名。
	providerName = "recipeapi"

	complexSearchPath     = "/recipes/complexSearch"
	findByIngredientsPath = "/recipes/findByIngredients"
)

// Options はClientの接続設定。
type Options struct {
	BaseURL         string
	APIKey          string
	MaxResponseSize int64
}

// Client は外部レシピAPIのクライアント。
// 結果のキャッシュやリトライは行わない。
type Client struct {
	requester *upstream.Requester
	sanitizer security.TextSanitizerService
	baseURL   string
	apiKey    string
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, collector metrics.MetricsCollector, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		requester: upstream.NewRequester(providerName, httpClient, logger, collector, "", opts.MaxResponseSize),
		sanitizer: security.NewTextSanitizer(),
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    opts.APIKey,
	}
}

// recipeResult はSpoonacularのレシピ検索結果1件。
type recipeResult struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// complexSearchResponse はcomplexSearchエンドポイントのレスポンス。
type complexSearchResponse struct {
	Results      []recipeResult `json:"results"`
	TotalResults int            `json:"totalResults"`
}

// SearchByMood は気分を表すキーワードでレシピを検索する。
// キーワードは自由入力としてそのままqueryパラメータに渡す。
func (c *Client) SearchByMood(ctx context.Context, mood string) ([]model.RecipeSummary, error) {
	q := url.Values{}
	q.Set("query", mood)

	var resp complexSearchResponse
	if err := c.get(ctx, complexSearchPath, q, &resp); err != nil {
		return nil, err
	}

	return c.toSummaries(resp.Results), nil
}

// SearchByIngredients はカンマ区切りの食材リストでレシピを検索する。
// 食材リストは分割や検証をせずにそのまま渡す。
func (c *Client) SearchByIngredients(ctx context.Context, ingredients string) ([]model.RecipeSummary, error) {
	q := url.Values{}
	q.Set("ingredients", ingredients)

	var resp []recipeResult
	if err := c.get(ctx, findByIngredientsPath, q, &resp); err != nil {
		return nil, err
	}

	return c.toSummaries(resp), nil
}

// get はAPIキーを付与してリクエストを送る。APIキーはログに出力しない。
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("apiKey", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, q.Encode())
	return c.requester.GetJSON(ctx, reqURL, path, out)
}

// toSummaries はAPIの結果を正規化する。結果が空でもnilではなく空スライスを返す。
func (c *Client) toSummaries(results []recipeResult) []model.RecipeSummary {
	summaries := make([]model.RecipeSummary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, model.RecipeSummary{
			ID:    r.ID,
			Title: c.sanitizer.SanitizeText(r.Title),
			Image: c.sanitizer.SanitizeURL(r.Image),
		})
	}
	return summaries
}
