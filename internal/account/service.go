// Package account はアカウント登録とログインのドメインロジックを提供する。
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/platemate/internal/metrics"
	"github.com/hitoshi/platemate/internal/model"
	"github.com/hitoshi/platemate/internal/repository"
)

// MsgAllFieldsRequired は登録時に必須項目が欠けている場合のメッセージ。
const MsgAllFieldsRequired = "All fields are required."

// dummyHash はメールアドレスが未登録の場合にも比較処理を行うためのハッシュ。
// 応答時間からアカウントの有無を推測されにくくする。
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("platemate-dummy-password"), bcrypt.DefaultCost)

// Service はアカウント管理のサービス層。
type Service struct {
	userRepo repository.UserRepository
	metrics  metrics.MetricsCollector
	hashCost int
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, collector metrics.MetricsCollector) *Service {
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	return &Service{
		userRepo: userRepo,
		metrics:  collector,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register は新しいアカウントを登録する。
// 既存メールアドレスの確認を必須項目の確認より先に行う。
// 事前確認をすり抜けた同時登録は、ストレージの一意制約により重複エラーとなる。
func (s *Service) Register(ctx context.Context, name, email, password string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Error("登録前のユーザー検索に失敗しました", slog.String("error", err.Error()))
		return model.NewRegistrationFailedError()
	}
	if existing != nil {
		return model.NewDuplicateEmailError()
	}

	if name == "" || email == "" || password == "" {
		return model.NewValidationError(MsgAllFieldsRequired)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return model.NewValidationError("Password is too long.")
		}
		return fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.NewDuplicateEmailError()
		}
		slog.Error("ユーザーの保存に失敗しました", slog.String("error", err.Error()))
		return model.NewRegistrationFailedError()
	}

	s.metrics.RecordAccountRegistered()
	slog.Info("アカウントを登録しました", slog.String("user_id", user.ID))

	return nil
}

// Login はメールアドレスとパスワードでアカウントを照合する。
// メールアドレスの不在とパスワード不一致は区別せずInvalidCredentialsを返す。
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの検索に失敗しました: %w", err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	return user, nil
}
