// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザー（アカウント）を表す。
// 登録時に作成され、更新・削除されることはない。
// メールアドレスはストレージ側の一意制約により重複しない。
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
