// Package upstream は外部API呼び出しの共通処理とエラー分類を提供する。
// レシピAPIとジオコーダーの両クライアントが使用する。
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// Kind は外部API呼び出し失敗の原因分類。
// HTTP応答では区別せず、ログとメトリクスでのみ使用する。
type Kind string

const (
	KindNetwork      Kind = "network"
	KindTimeout      Kind = "timeout"
	KindRateLimited  Kind = "rate_limited"
	KindUnauthorized Kind = "unauthorized"
	KindBadStatus    Kind = "bad_status"
	KindMalformed    Kind = "malformed"
)

// Error は外部API呼び出しの失敗を表す。
type Error struct {
	Provider   string
	Kind       Kind
	StatusCode int // KindがHTTPステータス由来の場合のみ設定される
	Err        error
}

// Error はerrorインターフェースを実装する。
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

// Unwrap は元のエラーを返す。
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf はエラーチェーンに含まれる*Errorの分類を返す。含まれない場合は空文字列を返す。
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ""
}

// classifyTransportError はHTTPクライアントの送信エラーを分類する。
// *url.ErrorはクエリにAPIキーを含むURLを保持するため、URLを除いたエラーに置き換える。
func classifyTransportError(provider string, err error) *Error {
	kind := KindNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return &Error{Provider: provider, Kind: kind, Err: err}
}

// classifyStatus は2xx以外のHTTPステータスを分類する。
// 402はSpoonacularが日次クォータ超過時に返すステータス。
func classifyStatus(provider string, status int) *Error {
	kind := KindBadStatus
	switch status {
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		kind = KindRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindUnauthorized
	}
	return &Error{
		Provider:   provider,
		Kind:       kind,
		StatusCode: status,
		Err:        fmt.Errorf("unexpected status %d", status),
	}
}
