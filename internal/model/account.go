// Package model defines domain entities for the application.
package model

import "time"

// Account represents a tenant that owns bookmarks.
// Usernames are unique and act as the external tenant key.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CachedAccount represents account data stored in Redis.
// Uses string types for Redis hash compatibility.
type CachedAccount struct {
	ID        string `redis:"id"`
	Username  string `redis:"username"`
	CreatedAt string `redis:"created_at"` // Unix timestamp
}

// ToAccount converts CachedAccount to the Account domain model.
// The password hash is never cached.
func (c *CachedAccount) ToAccount() *Account {
	account := &Account{
		ID:       c.ID,
		Username: c.Username,
	}
	if ts, err := parseUnix(c.CreatedAt); err == nil {
		account.CreatedAt = ts
	}
	return account
}

// ToCachedAccount converts an Account to its cache representation.
func (a *Account) ToCachedAccount() *CachedAccount {
	return &CachedAccount{
		ID:        a.ID,
		Username:  a.Username,
		CreatedAt: formatUnix(a.CreatedAt),
	}
}
