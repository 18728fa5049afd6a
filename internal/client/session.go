// Package client はPlateMate APIのGoクライアントと画面遷移コントローラーを提供する。
// ブラウザ版のlocalStorageに相当するセッションはSessionStoreで永続化する。
package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Session はログイン中のユーザー情報。有効期限もスキーマバージョンも持たない。
type Session struct {
	UserID    string `yaml:"userId" json:"userId"`
	UserName  string `yaml:"userName" json:"userName"`
	UserEmail string `yaml:"userEmail" json:"userEmail"`
}

// SessionStore はセッションの永続化インターフェース。
type SessionStore interface {
	// Load は保存済みセッションを返す。未ログインの場合はnilを返す。
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// sessionFileName はセッションファイルの既定ファイル名。
const sessionFileName = "session.yaml"

// DefaultSessionPath はユーザー設定ディレクトリ配下のセッションファイルパスを返す。
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "platemate", sessionFileName), nil
}

// FileSessionStore はセッションをYAMLファイルに保存する。
type FileSessionStore struct {
	path string
}

// NewFileSessionStore はFileSessionStoreを生成する。
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// Path はセッションファイルのパスを返す。
func (s *FileSessionStore) Path() string {
	return s.path
}

// Load はファイルからセッションを読み込む。
// ファイルが存在しない場合やuserIdが空の場合は未ログインとしてnilを返す。
func (s *FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}
	if session.UserID == "" {
		return nil, nil
	}
	return &session, nil
}

// Save はセッションをファイルに書き込む。親ディレクトリがなければ作成する。
func (s *FileSessionStore) Save(session *Session) error {
	if session == nil {
		return s.Clear()
	}

	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear はセッションファイルを削除する。存在しない場合は何もしない。
func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemorySessionStore はメモリ上にセッションを保持する。
type MemorySessionStore struct {
	mu      sync.Mutex
	session *Session
}

// NewMemorySessionStore はMemorySessionStoreを生成する。
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

func (s *MemorySessionStore) Save(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session == nil || session.UserID == "" {
		s.session = nil
		return nil
	}
	copied := *session
	s.session = &copied
	return nil
}

func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

var (
	_ SessionStore = (*FileSessionStore)(nil)
	_ SessionStore = (*MemorySessionStore)(nil)
)
