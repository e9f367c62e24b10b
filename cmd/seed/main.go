// Package main populates demo accounts and bookmarks.
// It goes through the same creation contract as the API, so the data it
// writes is indistinguishable from data created over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/markshelf/markshelf/internal/auth"
	"github.com/markshelf/markshelf/internal/hypermedia"
	"github.com/markshelf/markshelf/internal/model"
	"github.com/markshelf/markshelf/internal/repository"
	"github.com/markshelf/markshelf/internal/service"
)

const defaultUsernames = "jhoeller,dsyer,pwebb,ogierke,rwinch,mfisher,mpollack,jlong"

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		baseURL     = flag.String("base-url", envOr("BASE_URL", "http://localhost:8080"), "Base URL for resource links")
		usernames   = flag.String("usernames", defaultUsernames, "Comma-separated usernames to seed")
		password    = flag.String("password", "password", "Password for seeded accounts")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	svc := service.NewBookmarkService(repo, repo, nil, hypermedia.NewAssembler(*baseURL))

	for _, username := range splitUsernames(*usernames) {
		if err := seedAccount(ctx, repo, svc, username, *password); err != nil {
			fmt.Fprintf(os.Stderr, "seed %s: %v\n", username, err)
			os.Exit(1)
		}
	}

	fmt.Println("seeded accounts:", *usernames)
}

// seedAccount provisions one account and its two demo bookmarks,
// replacing any bookmarks from a previous run.
func seedAccount(ctx context.Context, repo *repository.Repository, svc *service.BookmarkService, username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:           ulid.Make().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := repo.GetOrCreateAccount(ctx, account); err != nil {
		return fmt.Errorf("provision account: %w", err)
	}

	// Drop bookmarks from a previous seed run before reseeding.
	existing, err := repo.ListBookmarksByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("list bookmarks: %w", err)
	}
	if len(existing) > 0 {
		ids := make([]string, len(existing))
		for i, b := range existing {
			ids[i] = b.ID
		}
		if err := repo.DeleteBookmarks(ctx, username, ids); err != nil {
			return fmt.Errorf("clear bookmarks: %w", err)
		}
	}

	for _, n := range []int{1, 2} {
		uri := fmt.Sprintf("http://bookmark.com/%d/%s", n, username)
		if _, _, err := svc.CreateBookmark(ctx, username, uri, "A description"); err != nil {
			return fmt.Errorf("create bookmark: %w", err)
		}
	}

	return nil
}

func splitUsernames(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
