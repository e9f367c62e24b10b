package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markshelf/markshelf/internal/repository"
	"github.com/markshelf/markshelf/internal/testutil"
)

// setupRepo connects to the test database, resets the schema, and
// serializes against other DB tests. Skips when DATABASE_URL is unset.
func setupRepo(t *testing.T) (*repository.Repository, context.Context) {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "DATABASE_URL")
	ctx := context.Background()

	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release lock: %v", err)
		}
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return repo, ctx
}

func TestAccountLifecycle(t *testing.T) {
	repo, ctx := setupRepo(t)

	account := testutil.NewTestAccount(t, "bdussault")
	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	byUsername, err := repo.GetAccountByUsername(ctx, "bdussault")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byUsername.ID != account.ID {
		t.Errorf("id = %s, want %s", byUsername.ID, account.ID)
	}

	byID, err := repo.GetAccountByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Username != "bdussault" {
		t.Errorf("username = %s", byID.Username)
	}

	// Usernames are case-sensitive and unique.
	if _, err := repo.GetAccountByUsername(ctx, "BDUSSAULT"); !errors.Is(err, repository.ErrAccountNotFound) {
		t.Errorf("expected case-sensitive miss, got %v", err)
	}

	dup := testutil.NewTestAccount(t, "bdussault")
	if err := repo.CreateAccount(ctx, dup); !errors.Is(err, repository.ErrUsernameExists) {
		t.Errorf("expected repository.ErrUsernameExists, got %v", err)
	}
}

func TestGetAccountByUsername_NotFound(t *testing.T) {
	repo, ctx := setupRepo(t)

	_, err := repo.GetAccountByUsername(ctx, "george")
	if !errors.Is(err, repository.ErrAccountNotFound) {
		t.Errorf("expected repository.ErrAccountNotFound, got %v", err)
	}
}

func TestBookmarkListOrderAndIsolation(t *testing.T) {
	repo, ctx := setupRepo(t)

	owner := testutil.NewTestAccount(t, "bdussault")
	other := testutil.NewTestAccount(t, "dsyer")
	if err := repo.CreateAccount(ctx, owner); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if err := repo.CreateAccount(ctx, other); err != nil {
		t.Fatalf("create account: %v", err)
	}

	base := time.Now().UTC().Add(-time.Minute)
	uris := []string{
		"http://bookmark.com/1/bdussault",
		"http://bookmark.com/2/bdussault",
	}
	for i, uri := range uris {
		bookmark := testutil.NewTestBookmark(t, owner, uri)
		bookmark.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := repo.CreateBookmark(ctx, bookmark); err != nil {
			t.Fatalf("create bookmark: %v", err)
		}
	}
	foreign := testutil.NewTestBookmark(t, other, "http://bookmark.com/1/dsyer")
	if err := repo.CreateBookmark(ctx, foreign); err != nil {
		t.Fatalf("create bookmark: %v", err)
	}

	bookmarks, err := repo.ListBookmarksByUsername(ctx, "bdussault")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}
	for i, uri := range uris {
		if bookmarks[i].URI != uri {
			t.Errorf("bookmark %d uri = %s, want %s", i, bookmarks[i].URI, uri)
		}
		if bookmarks[i].OwnerUsername != "bdussault" {
			t.Errorf("bookmark %d owner = %s", i, bookmarks[i].OwnerUsername)
		}
	}
}

func TestGetBookmarkForUser_Scoping(t *testing.T) {
	repo, ctx := setupRepo(t)

	owner := testutil.NewTestAccount(t, "bdussault")
	other := testutil.NewTestAccount(t, "dsyer")
	if err := repo.CreateAccount(ctx, owner); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if err := repo.CreateAccount(ctx, other); err != nil {
		t.Fatalf("create account: %v", err)
	}

	bookmark := testutil.NewTestBookmark(t, other, "http://bookmark.com/1/dsyer")
	if err := repo.CreateBookmark(ctx, bookmark); err != nil {
		t.Fatalf("create bookmark: %v", err)
	}

	got, err := repo.GetBookmarkForUser(ctx, "dsyer", bookmark.ID)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if got.URI != bookmark.URI {
		t.Errorf("uri = %s", got.URI)
	}

	if _, err := repo.GetBookmarkForUser(ctx, "bdussault", bookmark.ID); !errors.Is(err, repository.ErrBookmarkNotFound) {
		t.Errorf("expected repository.ErrBookmarkNotFound for foreign bookmark, got %v", err)
	}
}

func TestDeleteBookmarks(t *testing.T) {
	repo, ctx := setupRepo(t)

	owner := testutil.NewTestAccount(t, "bdussault")
	if err := repo.CreateAccount(ctx, owner); err != nil {
		t.Fatalf("create account: %v", err)
	}

	first := testutil.NewTestBookmark(t, owner, "http://bookmark.com/1/bdussault")
	second := testutil.NewTestBookmark(t, owner, "http://bookmark.com/2/bdussault")
	if err := repo.CreateBookmark(ctx, first); err != nil {
		t.Fatalf("create bookmark: %v", err)
	}
	if err := repo.CreateBookmark(ctx, second); err != nil {
		t.Fatalf("create bookmark: %v", err)
	}

	if err := repo.DeleteBookmarks(ctx, "bdussault", []string{first.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	remaining, err := repo.ListBookmarksByUsername(ctx, "bdussault")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != second.ID {
		t.Errorf("unexpected remaining bookmarks: %+v", remaining)
	}

	// Deleting with an empty id set is a no-op.
	if err := repo.DeleteBookmarks(ctx, "bdussault", nil); err != nil {
		t.Errorf("empty delete: %v", err)
	}
}
