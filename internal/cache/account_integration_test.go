package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/markshelf/markshelf/internal/testutil"
)

// setupCache connects to the test Redis instance.
// Skips when REDIS_URL is unset.
func setupCache(t *testing.T) (*Cache, context.Context) {
	t.Helper()

	redisURL := testutil.RequireEnv(t, "REDIS_URL")
	ctx := context.Background()

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, ctx
}

func TestAccountCache_SetGet(t *testing.T) {
	c, ctx := setupCache(t)

	account := testutil.NewTestAccount(t, "cache-bdussault")
	t.Cleanup(func() {
		_ = c.DeleteAccount(ctx, account.Username)
	})

	if err := c.SetAccount(ctx, account); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.GetAccount(ctx, account.Username)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != account.ID || got.Username != account.Username {
		t.Errorf("got %+v, want id=%s username=%s", got, account.ID, account.Username)
	}
}

func TestAccountCache_Miss(t *testing.T) {
	c, ctx := setupCache(t)

	_, err := c.GetAccount(ctx, "cache-no-such-user")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestAccountCache_NegativeEntry(t *testing.T) {
	c, ctx := setupCache(t)

	username := "cache-george"
	t.Cleanup(func() {
		_ = c.DeleteAccount(ctx, username)
	})

	if err := c.SetNegativeAccount(ctx, username); err != nil {
		t.Fatalf("set negative: %v", err)
	}

	isNegative, err := c.IsNegativelyCached(ctx, username)
	if err != nil {
		t.Fatalf("check negative: %v", err)
	}
	if !isNegative {
		t.Error("expected username to be negatively cached")
	}

	// A positive set clears the negative entry.
	account := testutil.NewTestAccount(t, username)
	if err := c.SetAccount(ctx, account); err != nil {
		t.Fatalf("set: %v", err)
	}

	isNegative, err = c.IsNegativelyCached(ctx, username)
	if err != nil {
		t.Fatalf("check negative: %v", err)
	}
	if isNegative {
		t.Error("expected negative entry to be cleared after positive set")
	}
}
