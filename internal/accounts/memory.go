package accounts

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore はプロセス内のマップにアカウントを保持します（開発・テスト用）。
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryStore は MemoryStore を作成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]Account),
	}
}

// Create はアカウントを保存します。
func (s *MemoryStore) Create(ctx context.Context, account *Account) error {
	if account == nil {
		return fmt.Errorf("account is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Username]; exists {
		return ErrUsernameTaken
	}
	s.accounts[account.Username] = *account
	return nil
}

// GetByUsername はユーザー名でアカウントを取得します。
func (s *MemoryStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

// Len は保存済みアカウント数を返します。
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
