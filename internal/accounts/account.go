// Package accounts はユーザーアカウントの永続化を提供します。
//
// ユーザー名の一意性はストア側の原子的な作成処理（Create）だけで判定します。
// 事前の存在確認と挿入を分けると同時登録で競合するためです。
package accounts

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUsernameTaken は同じユーザー名のアカウントが既に存在する場合に返されます。
	ErrUsernameTaken = errors.New("username already taken")
	// ErrNotFound はアカウントが存在しない場合に返されます。
	ErrNotFound = errors.New("account not found")
)

// Account は登録済みユーザーを表します。
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store はアカウントの保存先が実装します。
type Store interface {
	// Create はアカウントを保存します。ユーザー名が既に存在する場合は ErrUsernameTaken を返し、何も変更しません。
	Create(ctx context.Context, account *Account) error
	// GetByUsername はユーザー名でアカウントを取得します。存在しない場合は ErrNotFound を返します。
	GetByUsername(ctx context.Context, username string) (*Account, error)
}
