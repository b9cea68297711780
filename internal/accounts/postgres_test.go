package accounts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestPostgresStoreCreate(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs("id-1", "alice", "alice@example.com", "hash", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "unique violation",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs("id-1", "alice", "alice@example.com", "hash", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: ErrUsernameTaken,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs("id-1", "alice", "alice@example.com", "hash", pgxmock.AnyArg()).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setupMock(mock)

			store := NewPostgresStore(mock)
			err := store.Create(context.Background(), &Account{
				ID:           "id-1",
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				CreatedAt:    time.Now().UTC(),
			})

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.errMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
					t.Fatalf("expected error containing %q, got %v", tt.errMsg, err)
				}
				if errors.Is(err, ErrUsernameTaken) {
					t.Fatal("infrastructure error must not be reported as duplicate")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestPostgresStoreGetByUsername(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		rows := pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow("id-1", "alice", "alice@example.com", "hash", createdAt)
		mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at`).
			WithArgs("alice").
			WillReturnRows(rows)

		got, err := NewPostgresStore(mock).GetByUsername(context.Background(), "alice")
		if err != nil {
			t.Fatalf("GetByUsername returned error: %v", err)
		}
		if got.ID != "id-1" || got.PasswordHash != "hash" || !got.CreatedAt.Equal(createdAt) {
			t.Fatalf("unexpected account: %#v", got)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unfulfilled expectations: %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at`).
			WithArgs("bob").
			WillReturnError(pgx.ErrNoRows)

		_, err := NewPostgresStore(mock).GetByUsername(context.Background(), "bob")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unfulfilled expectations: %v", err)
		}
	})
}
