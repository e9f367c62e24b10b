package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/markshelf/markshelf/internal/model"
)

// ErrBookmarkNotFound is returned when no bookmark matches the lookup.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// CreateBookmark inserts a new bookmark into the database.
func (r *Repository) CreateBookmark(ctx context.Context, bookmark *model.Bookmark) error {
	query := `
		INSERT INTO bookmarks (id, account_id, uri, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		bookmark.ID,
		bookmark.OwnerID,
		bookmark.URI,
		bookmark.Description,
		bookmark.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}

	return nil
}

// GetBookmarkForUser retrieves a bookmark by ID, scoped to its owner's
// username. A bookmark owned by a different account is a not-found.
func (r *Repository) GetBookmarkForUser(ctx context.Context, username, bookmarkID string) (*model.Bookmark, error) {
	query := `
		SELECT b.id, b.account_id, a.username, b.uri, b.description, b.created_at
		FROM bookmarks b
		JOIN accounts a ON a.id = b.account_id
		WHERE b.id = $1 AND a.username = $2
	`

	bookmark, err := scanBookmark(r.pool.QueryRow(ctx, query, bookmarkID, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	return bookmark, nil
}

// ListBookmarksByUsername retrieves all bookmarks owned by a username,
// in insertion order.
func (r *Repository) ListBookmarksByUsername(ctx context.Context, username string) ([]*model.Bookmark, error) {
	query := `
		SELECT b.id, b.account_id, a.username, b.uri, b.description, b.created_at
		FROM bookmarks b
		JOIN accounts a ON a.id = b.account_id
		WHERE a.username = $1
		ORDER BY b.created_at ASC, b.id ASC
	`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []*model.Bookmark
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, bookmark)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}

	return bookmarks, nil
}

// DeleteBookmarks removes the given bookmarks owned by a username.
// IDs belonging to other accounts are ignored. Used by provisioning
// tools; the HTTP surface exposes no delete operation.
func (r *Repository) DeleteBookmarks(ctx context.Context, username string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		DELETE FROM bookmarks b
		USING accounts a
		WHERE a.id = b.account_id AND a.username = $1 AND b.id = ANY($2)
	`

	if _, err := r.pool.Exec(ctx, query, username, ids); err != nil {
		return fmt.Errorf("failed to delete bookmarks: %w", err)
	}

	return nil
}

// scanBookmark scans a single row into a Bookmark model.
func scanBookmark(row pgx.Row) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	err := row.Scan(
		&bookmark.ID,
		&bookmark.OwnerID,
		&bookmark.OwnerUsername,
		&bookmark.URI,
		&bookmark.Description,
		&bookmark.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}
