// Package hypermedia builds the outward representation of bookmarks,
// attaching the navigation links clients use instead of hardcoding paths.
package hypermedia

import (
	"strings"

	"github.com/markshelf/markshelf/internal/model"
)

// Link relation names attached to every bookmark resource.
const (
	RelBookmarkURI = "bookmark-uri"
	RelBookmarks   = "bookmarks"
	RelSelf        = "self"
)

// Resource is the response shape for a single bookmark.
// It is derived per-response and never persisted.
type Resource struct {
	ID          string            `json:"id"`
	URI         string            `json:"uri"`
	Description string            `json:"description"`
	Links       map[string]string `json:"links"`
}

// Assembler computes resource links from a base URL.
// Given the same bookmark and owner, the output is always identical.
type Assembler struct {
	baseURL string
}

// NewAssembler creates an Assembler rooted at baseURL.
func NewAssembler(baseURL string) *Assembler {
	return &Assembler{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// CollectionURL returns the bookmarks collection endpoint for a username.
func (a *Assembler) CollectionURL(username string) string {
	return a.baseURL + "/" + username + "/bookmarks"
}

// SelfURL returns the canonical endpoint for one bookmark.
// The Location header on creation uses this same value.
func (a *Assembler) SelfURL(username, bookmarkID string) string {
	return a.CollectionURL(username) + "/" + bookmarkID
}

// Assemble wraps a bookmark in its resource representation with the
// three fixed links: bookmark-uri, bookmarks, and self.
func (a *Assembler) Assemble(bookmark *model.Bookmark) *Resource {
	username := bookmark.OwnerUsername
	return &Resource{
		ID:          bookmark.ID,
		URI:         bookmark.URI,
		Description: bookmark.Description,
		Links: map[string]string{
			RelBookmarkURI: bookmark.URI,
			RelBookmarks:   a.CollectionURL(username),
			RelSelf:        a.SelfURL(username, bookmark.ID),
		},
	}
}

// AssembleAll wraps each bookmark in order.
func (a *Assembler) AssembleAll(bookmarks []*model.Bookmark) []*Resource {
	resources := make([]*Resource, len(bookmarks))
	for i, b := range bookmarks {
		resources[i] = a.Assemble(b)
	}
	return resources
}
