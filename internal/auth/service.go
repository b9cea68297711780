package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/learnvocab/internal/accounts"
)

// Service はアカウント登録と資格情報の照合を担います。
type Service struct {
	store  accounts.Store
	hasher PasswordHasher
	now    func() time.Time
}

// NewService は Service を作成します。
func NewService(store accounts.Store, hasher PasswordHasher) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		now:    time.Now,
	}
}

// Register は入力を検証し、アカウントを一度だけ作成します。
// 検証失敗時は *ValidationError を返し、ストアには触れません。
func (s *Service) Register(ctx context.Context, in Registration) (*accounts.Account, error) {
	if err := ValidateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &accounts.Account{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, accounts.ErrUsernameTaken) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// Authenticate はユーザー名とパスワードの組に一致するアカウントを返します。
// 一致しない場合は ErrInvalidCredentials を返します。
func (s *Service) Authenticate(ctx context.Context, username, password string) (*accounts.Account, error) {
	account, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	ok, err := s.hasher.Verify(account.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
