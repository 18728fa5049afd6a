// Package web はブラウザ向けの静的クライアントを埋め込みで提供する。
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// MainPage はルートパスで返すHTMLファイル名。
const MainPage = "main.html"

// FS は静的クライアントのファイルシステムを返す。
// ファイルはstaticディレクトリ直下をルートとして参照できる。
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// staticは埋め込み済みのため到達しない
		panic(err)
	}
	return sub
}
