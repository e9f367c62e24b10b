// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/markshelf/markshelf/internal/cache"
	"github.com/markshelf/markshelf/internal/hypermedia"
	"github.com/markshelf/markshelf/internal/model"
	"github.com/markshelf/markshelf/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// ErrAccountVanished means the validation gate passed but the account
	// was gone by the time the creation path re-read it from storage.
	ErrAccountVanished = errors.New("account vanished before create")
)

// UserNotFoundError carries the username that failed validation.
// It matches ErrUserNotFound under errors.Is.
type UserNotFoundError struct {
	Username string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("could not find user '%s'.", e.Username)
}

func (e *UserNotFoundError) Unwrap() error {
	return ErrUserNotFound
}

// AccountStore resolves usernames to accounts.
type AccountStore interface {
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
}

// BookmarkStore persists and retrieves bookmarks.
type BookmarkStore interface {
	CreateBookmark(ctx context.Context, bookmark *model.Bookmark) error
	GetBookmarkForUser(ctx context.Context, username, bookmarkID string) (*model.Bookmark, error)
	ListBookmarksByUsername(ctx context.Context, username string) ([]*model.Bookmark, error)
}

// AccountCache is an optional read-through cache for account lookups.
type AccountCache interface {
	GetAccount(ctx context.Context, username string) (*model.Account, error)
	SetAccount(ctx context.Context, account *model.Account) error
	SetNegativeAccount(ctx context.Context, username string) error
	IsNegativelyCached(ctx context.Context, username string) (bool, error)
}

// BookmarkService handles bookmark business logic. Every operation
// validates the addressed username before touching bookmark storage.
type BookmarkService struct {
	accounts  AccountStore
	bookmarks BookmarkStore
	cache     AccountCache
	links     *hypermedia.Assembler
}

// NewBookmarkService creates a new BookmarkService.
// accountCache may be nil to disable caching.
func NewBookmarkService(accounts AccountStore, bookmarks BookmarkStore, accountCache AccountCache, links *hypermedia.Assembler) *BookmarkService {
	return &BookmarkService{
		accounts:  accounts,
		bookmarks: bookmarks,
		cache:     accountCache,
		links:     links,
	}
}

// ValidateUser resolves a username to its account, failing with
// ErrUserNotFound when no such account exists. This gate runs at the
// start of every operation.
func (s *BookmarkService) ValidateUser(ctx context.Context, username string) (*model.Account, error) {
	if s.cache != nil {
		if isNegative, _ := s.cache.IsNegativelyCached(ctx, username); isNegative {
			return nil, &UserNotFoundError{Username: username}
		}

		account, err := s.cache.GetAccount(ctx, username)
		if err == nil {
			return account, nil
		}
		// Redis errors other than a miss fall through to storage.
	}

	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			if s.cache != nil {
				_ = s.cache.SetNegativeAccount(ctx, username)
			}
			return nil, &UserNotFoundError{Username: username}
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if s.cache != nil {
		// Best effort - a failed backfill only costs a later DB read.
		_ = s.cache.SetAccount(ctx, account)
	}

	return account, nil
}

// ListBookmarks returns all bookmarks owned by the username's account,
// in storage order. An empty collection is not an error.
func (s *BookmarkService) ListBookmarks(ctx context.Context, username string) ([]*model.Bookmark, error) {
	if _, err := s.ValidateUser(ctx, username); err != nil {
		return nil, err
	}

	bookmarks, err := s.bookmarks.ListBookmarksByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	return bookmarks, nil
}

// GetBookmark returns one bookmark, scoped to the username's account.
// A bookmark id that exists under another account is a not-found.
func (s *BookmarkService) GetBookmark(ctx context.Context, username, bookmarkID string) (*model.Bookmark, error) {
	if _, err := s.ValidateUser(ctx, username); err != nil {
		return nil, err
	}

	bookmark, err := s.bookmarks.GetBookmarkForUser(ctx, username, bookmarkID)
	if err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	return bookmark, nil
}

// CreateBookmark persists a new bookmark owned by the username's account
// and returns it along with its canonical location, the assembler's self
// link for the new resource.
func (s *BookmarkService) CreateBookmark(ctx context.Context, username, uri, description string) (*model.Bookmark, string, error) {
	if _, err := s.ValidateUser(ctx, username); err != nil {
		return nil, "", err
	}

	// The validator may have answered from cache; re-read from storage
	// so the owner reference points at a live row.
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, "", ErrAccountVanished
		}
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}

	bookmark := &model.Bookmark{
		ID:            ulid.Make().String(),
		OwnerID:       account.ID,
		OwnerUsername: account.Username,
		URI:           uri,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.bookmarks.CreateBookmark(ctx, bookmark); err != nil {
		return nil, "", fmt.Errorf("failed to create bookmark: %w", err)
	}

	location := s.links.SelfURL(account.Username, bookmark.ID)

	return bookmark, location, nil
}

// Links returns the assembler used for resource representations.
func (s *BookmarkService) Links() *hypermedia.Assembler {
	return s.links
}

// statically check the cache type satisfies the service interface.
var _ AccountCache = (*cache.Cache)(nil)
