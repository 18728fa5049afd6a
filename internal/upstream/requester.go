package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/platemate/internal/metrics"
)

// DefaultMaxResponseSize はレスポンスボディの既定の上限バイト数。
const DefaultMaxResponseSize int64 = 2 * 1024 * 1024

// errResponseTooLarge はレスポンスボディが上限を超えたことを表す。
var errResponseTooLarge = errors.New("response body exceeds size limit")

// Requester は外部APIにGETリクエストを送りJSONをデコードする。
// 失敗は*Errorに分類し、ログとメトリクスに記録する。リトライは行わない。
type Requester struct {
	provider   string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    metrics.MetricsCollector
	userAgent  string
	maxSize    int64
}

// NewRequester はRequesterを生成する。
// maxSizeが0以下の場合はDefaultMaxResponseSizeを使用する。
func NewRequester(provider string, httpClient *http.Client, logger *slog.Logger, collector metrics.MetricsCollector, userAgent string, maxSize int64) *Requester {
	if maxSize <= 0 {
		maxSize = DefaultMaxResponseSize
	}
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	return &Requester{
		provider:   provider,
		httpClient: httpClient,
		logger:     logger,
		metrics:    collector,
		userAgent:  userAgent,
		maxSize:    maxSize,
	}
}

// GetJSON はrawURLにGETリクエストを送り、レスポンスJSONをoutにデコードする。
// logPathはログに出力するパス（APIキー等のクエリを含めないこと）。
func (r *Requester) GetJSON(ctx context.Context, rawURL, logPath string, out any) error {
	start := time.Now()
	err := r.getJSON(ctx, rawURL, out)
	elapsed := time.Since(start)

	if err != nil {
		var ue *Error
		if !errors.As(err, &ue) {
			ue = &Error{Provider: r.provider, Kind: KindNetwork, Err: err}
			err = ue
		}
		r.metrics.RecordUpstreamRequest(r.provider, string(ue.Kind), elapsed)
		r.logger.Error("外部APIの呼び出しに失敗しました",
			slog.String("provider", r.provider),
			slog.String("path", logPath),
			slog.String("kind", string(ue.Kind)),
			slog.Int("http_status", ue.StatusCode),
			slog.Int64("duration_ms", elapsed.Milliseconds()),
			slog.String("error", ue.Err.Error()),
		)
		return err
	}

	r.metrics.RecordUpstreamRequest(r.provider, metrics.OutcomeSuccess, elapsed)
	r.logger.Debug("外部APIの呼び出しが完了しました",
		slog.String("provider", r.provider),
		slog.String("path", logPath),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	)
	return nil
}

func (r *Requester) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(r.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, r.maxSize))
		return classifyStatus(r.provider, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxSize+1))
	if err != nil {
		return classifyTransportError(r.provider, err)
	}
	if int64(len(body)) > r.maxSize {
		return &Error{Provider: r.provider, Kind: KindMalformed, Err: errResponseTooLarge}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Provider: r.provider, Kind: KindMalformed, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}
