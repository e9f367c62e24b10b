package model

import (
	"testing"
	"time"
)

func TestAccount_CacheRoundTrip(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	account := &Account{
		ID:           "01HV5ACCT0000000000000000",
		Username:     "bdussault",
		PasswordHash: "secret-hash",
		CreatedAt:    created,
	}

	cached := account.ToCachedAccount()
	restored := cached.ToAccount()

	if restored.ID != account.ID {
		t.Errorf("id = %s, want %s", restored.ID, account.ID)
	}
	if restored.Username != account.Username {
		t.Errorf("username = %s, want %s", restored.Username, account.Username)
	}
	if !restored.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", restored.CreatedAt, created)
	}

	// The password hash never goes through the cache.
	if restored.PasswordHash != "" {
		t.Errorf("expected empty password hash, got %s", restored.PasswordHash)
	}
}

func TestCachedAccount_BadTimestamp(t *testing.T) {
	cached := &CachedAccount{
		ID:        "a",
		Username:  "u",
		CreatedAt: "not-a-timestamp",
	}

	account := cached.ToAccount()
	if !account.CreatedAt.IsZero() {
		t.Errorf("expected zero time for bad timestamp, got %v", account.CreatedAt)
	}
}
