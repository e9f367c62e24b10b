package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/markshelf/markshelf/internal/model"
)

// Common errors for account repository operations.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameExists  = errors.New("username already exists")
)

// CreateAccount inserts a new account into the database.
func (r *Repository) CreateAccount(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Username,
		account.PasswordHash,
		account.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByID retrieves an account by its ID.
func (r *Repository) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM accounts
		WHERE id = $1
	`

	var account model.Account
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return &account, nil
}

// GetAccountByUsername retrieves an account by its username.
// Usernames are matched case-sensitively.
func (r *Repository) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM accounts
		WHERE username = $1
	`

	var account model.Account
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}

	return &account, nil
}

// GetOrCreateAccount gets an account by username or creates one if not found.
func (r *Repository) GetOrCreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	existing, err := r.GetAccountByUsername(ctx, account.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	if err := r.CreateAccount(ctx, account); err != nil {
		// Handle race condition - another request may have created it
		if errors.Is(err, ErrUsernameExists) {
			return r.GetAccountByUsername(ctx, account.Username)
		}
		return nil, err
	}

	return account, nil
}
