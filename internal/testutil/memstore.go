package testutil

import (
	"context"
	"sync"

	"github.com/markshelf/markshelf/internal/model"
	"github.com/markshelf/markshelf/internal/repository"
)

// MemStore is an in-memory account and bookmark store for tests.
// Bookmarks are kept in insertion order, matching storage-order listing.
type MemStore struct {
	mu        sync.RWMutex
	accounts  map[string]*model.Account
	bookmarks []*model.Bookmark

	// BookmarkCalls counts bookmark store touches, so tests can assert
	// the validation gate short-circuits before storage.
	BookmarkCalls int

	// FailBookmarks, when set, makes every bookmark operation fail.
	FailBookmarks error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		accounts: make(map[string]*model.Account),
	}
}

// AddAccount registers an account by username.
func (s *MemStore) AddAccount(account *model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Username] = account
}

// RemoveAccount deletes an account, leaving its bookmarks orphaned.
func (s *MemStore) RemoveAccount(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, username)
}

// GetAccountByUsername resolves a username to an account.
func (s *MemStore) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[username]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return account, nil
}

// CreateBookmark appends a bookmark in insertion order.
func (s *MemStore) CreateBookmark(ctx context.Context, bookmark *model.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.BookmarkCalls++
	if s.FailBookmarks != nil {
		return s.FailBookmarks
	}

	copied := *bookmark
	s.bookmarks = append(s.bookmarks, &copied)
	return nil
}

// GetBookmarkForUser retrieves a bookmark by ID scoped to its owner.
func (s *MemStore) GetBookmarkForUser(ctx context.Context, username, bookmarkID string) (*model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.BookmarkCalls++
	if s.FailBookmarks != nil {
		return nil, s.FailBookmarks
	}

	for _, b := range s.bookmarks {
		if b.ID == bookmarkID && b.OwnerUsername == username {
			copied := *b
			return &copied, nil
		}
	}
	return nil, repository.ErrBookmarkNotFound
}

// ListBookmarksByUsername lists a user's bookmarks in insertion order.
func (s *MemStore) ListBookmarksByUsername(ctx context.Context, username string) ([]*model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.BookmarkCalls++
	if s.FailBookmarks != nil {
		return nil, s.FailBookmarks
	}

	var result []*model.Bookmark
	for _, b := range s.bookmarks {
		if b.OwnerUsername == username {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}
