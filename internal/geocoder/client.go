// Package geocoder は外部ジオコーダー（Nominatim互換）のクライアントを提供する。
package geocoder

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hitoshi/platemate/internal/metrics"
	"github.com/hitoshi/platemate/internal/model"
	"github.com/hitoshi/platemate/internal/security"
	"github.com/hitoshi/platemate/internal/upstream"
)

const (
	// DefaultBaseURL はNominatimのベースURL。
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultUserAgent はNominatimの利用規約で必須のUser-Agent。
	DefaultUserAgent = "PlateMateApp/1.0"
	// MaxResults は1回の検索で返すレストランの最大件数。
	MaxResults = 5

	providerName = "geocoder"
	searchPath   = "/search"
)

// Options はClientの接続設定。
type Options struct {
	BaseURL         string
	UserAgent       string
	MaxResponseSize int64
}

// Client はジオコーダーのクライアント。
type Client struct {
	requester *upstream.Requester
	sanitizer security.TextSanitizerService
	baseURL   string
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, collector metrics.MetricsCollector, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		requester: upstream.NewRequester(providerName, httpClient, logger, collector, userAgent, opts.MaxResponseSize),
		sanitizer: security.NewTextSanitizer(),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// place はNominatimの検索結果1件。使用するのはdisplay_nameのみ。
type place struct {
	DisplayName string `json:"display_name"`
}

// SearchCity は都市名で「restaurants in <city>」を検索し、最大5件を返す。
// プロバイダーがlimitを無視した場合もMaxResults件に切り詰める。
func (c *Client) SearchCity(ctx context.Context, city string) ([]model.RestaurantSummary, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", "restaurants in "+city)
	q.Set("limit", strconv.Itoa(MaxResults))
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, searchPath, q.Encode())

	var places []place
	if err := c.requester.GetJSON(ctx, reqURL, searchPath, &places); err != nil {
		return nil, err
	}

	if len(places) > MaxResults {
		places = places[:MaxResults]
	}

	restaurants := make([]model.RestaurantSummary, 0, len(places))
	for _, p := range places {
		name := c.sanitizer.SanitizeText(p.DisplayName)
		restaurants = append(restaurants, model.RestaurantSummary{
			DisplayName: name,
			Address:     name,
		})
	}

	return restaurants, nil
}
