package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/yourusername/learnvocab/internal/accounts/migrations"
)

// pgQuerier は PostgresStore が利用する pgx の操作です。*pgxpool.Pool と pgxmock が満たします。
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore はアカウントを PostgreSQL に保存します。
type PostgresStore struct {
	db pgQuerier
}

// NewPostgresStore は PostgresStore を作成します。
func NewPostgresStore(db pgQuerier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create はアカウントを挿入します。一意制約違反は ErrUsernameTaken に変換します。
func (s *PostgresStore) Create(ctx context.Context, account *Account) error {
	if account == nil {
		return fmt.Errorf("account is nil")
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO accounts (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert account %q: %w", account.Username, err)
	}
	return nil
}

// GetByUsername はユーザー名でアカウントを取得します。
func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM accounts
		WHERE username = $1
	`, username)

	var account Account
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %q: %w", username, err)
	}
	return &account, nil
}

// Migrate は埋め込みマイグレーションを適用します。
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
