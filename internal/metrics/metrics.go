// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 外部API呼び出しの結果ラベル。upstream.Kindの文字列表現もそのまま使用する。
const (
	OutcomeSuccess = "success"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ゲートウェイ、サービス層、ミドルウェアから利用する。
type MetricsCollector interface {
	RecordUpstreamRequest(provider, outcome string, duration time.Duration)
	RecordHTTPStatus(statusCode int)
	RecordAccountRegistered()
	RecordRecipeSaved()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	upstreamRequests   *prometheus.CounterVec
	upstreamLatency    *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	accountsRegistered prometheus.Counter
	recipesSaved       prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "platemate_upstream_requests_total",
			Help: "外部API呼び出しの合計数（プロバイダー・結果別）",
		}, []string{"provider", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "platemate_upstream_latency_seconds",
			Help:    "外部API呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "platemate_http_requests_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		accountsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "platemate_accounts_registered_total",
			Help: "登録されたアカウントの合計数",
		}),
		recipesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "platemate_recipes_saved_total",
			Help: "保存されたレシピの合計数",
		}),
	}

	reg.MustRegister(
		c.upstreamRequests,
		c.upstreamLatency,
		c.httpRequests,
		c.accountsRegistered,
		c.recipesSaved,
	)

	return c
}

// RecordUpstreamRequest は外部API呼び出しの結果とレイテンシを記録する。
func (c *Collector) RecordUpstreamRequest(provider, outcome string, duration time.Duration) {
	c.upstreamRequests.WithLabelValues(provider, outcome).Inc()
	c.upstreamLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordAccountRegistered はアカウント登録を記録する。
func (c *Collector) RecordAccountRegistered() {
	c.accountsRegistered.Inc()
}

// RecordRecipeSaved はレシピ保存を記録する。
func (c *Collector) RecordRecipeSaved() {
	c.recipesSaved.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopCollector は何も記録しないMetricsCollector。テストやメトリクス無効時に使用する。
type NopCollector struct{}

func (NopCollector) RecordUpstreamRequest(string, string, time.Duration) {}
func (NopCollector) RecordHTTPStatus(int)                                {}
func (NopCollector) RecordAccountRegistered()                            {}
func (NopCollector) RecordRecipeSaved()                                  {}

// compile-time interface check
var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = NopCollector{}
)
