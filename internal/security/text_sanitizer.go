package security

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService は外部APIから取得したテキストを無害化するインターフェース。
// レシピタイトルや画像URLは応答前に必ず通す。
type TextSanitizerService interface {
	// SanitizeText はすべてのHTMLタグを除去したプレーンテキストを返す。
	// 文字参照は復元して返すため、表示側はテキストとして扱うこと。
	SanitizeText(raw string) string

	// SanitizeURL はhttp/httpsの絶対URLのみを通し、それ以外は空文字列を返す。
	SanitizeURL(raw string) string
}

// TextSanitizer はbluemondayのStrictPolicyを使ったTextSanitizerServiceの実装。
// bluemonday.Policyはスレッドセーフなため、複数のゴルーチンから共有できる。
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerを生成する。
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// SanitizeText はすべてのHTMLタグを除去し、前後の空白を取り除く。
// bluemondayがエスケープした文字参照はJSON応答に不要なため元に戻す。
func (s *TextSanitizer) SanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(raw)))
}

// SanitizeURL はhttp/httpsの絶対URLのみを通す。
func (s *TextSanitizer) SanitizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || !isAllowedScheme(u.Scheme) {
		return ""
	}
	return u.String()
}

// compile-time interface check
var _ TextSanitizerService = (*TextSanitizer)(nil)
