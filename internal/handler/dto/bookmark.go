// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// CreateBookmarkRequest represents the request body for creating a bookmark.
type CreateBookmarkRequest struct {
	URI         string `json:"uri"`
	Description string `json:"description"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
