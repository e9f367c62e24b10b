// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/markshelf/markshelf/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 530530

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates the accounts and bookmarks schema.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	// Down migrations run newest-first, up migrations oldest-first.
	steps := []string{
		"000002_bookmarks.down.sql",
		"000001_accounts.down.sql",
		"000001_accounts.up.sql",
		"000002_bookmarks.up.sql",
	}

	for _, name := range steps {
		sql, err := os.ReadFile(filepath.Join(root, "migrations", name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return nil
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestAccount creates a test account with sensible defaults.
func NewTestAccount(t testing.TB, username string) *model.Account {
	t.Helper()
	return &model.Account{
		ID:           ulid.Make().String(),
		Username:     username,
		PasswordHash: "$argon2id$test$not-a-real-hash",
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestBookmark creates a test bookmark owned by the given account.
func NewTestBookmark(t testing.TB, account *model.Account, uri string) *model.Bookmark {
	t.Helper()
	return &model.Bookmark{
		ID:            ulid.Make().String(),
		OwnerID:       account.ID,
		OwnerUsername: account.Username,
		URI:           uri,
		Description:   "A description",
		CreatedAt:     time.Now().UTC(),
	}
}
