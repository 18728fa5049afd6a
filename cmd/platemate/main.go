// Command platemate はPlateMateのAPIサーバーを起動する。
//
// サブコマンド:
//
//	serve        APIサーバーを起動する（デフォルト）
//	migrate      ストレージのスキーマを適用する
//	healthcheck  起動中のサーバーの/healthを確認する
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/platemate/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
