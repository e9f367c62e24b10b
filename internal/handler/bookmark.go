package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markshelf/markshelf/internal/handler/dto"
	"github.com/markshelf/markshelf/internal/service"
)

// BookmarkHandler handles HTTP requests for bookmark operations.
// Every route is scoped by the username path segment.
type BookmarkHandler struct {
	svc    *service.BookmarkService
	logger *slog.Logger
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(svc *service.BookmarkService, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /{username}/bookmarks.
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	bookmarks, err := h.svc.ListBookmarks(r.Context(), username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Links().AssembleAll(bookmarks))
}

// Get handles GET /{username}/bookmarks/{bookmarkID}.
func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	bookmarkID := chi.URLParam(r, "bookmarkID")

	bookmark, err := h.svc.GetBookmark(r.Context(), username, bookmarkID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Links().Assemble(bookmark))
}

// Create handles POST /{username}/bookmarks.
// On success the body is empty and the Location header carries the self
// link of the created bookmark.
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req dto.CreateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	bookmark, location, err := h.svc.CreateBookmark(r.Context(), username, req.URI, req.Description)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("bookmark_created",
		"bookmark_id", bookmark.ID,
		"username", username,
	)

	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusCreated)
}

// handleServiceError maps service errors to HTTP responses.
func (h *BookmarkHandler) handleServiceError(w http.ResponseWriter, err error) {
	var notFound *service.UserNotFoundError

	switch {
	case errors.As(err, &notFound):
		// The one domain error: structured body, no internal detail.
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: notFound.Error()})
	case errors.Is(err, service.ErrBookmarkNotFound):
		h.writeError(w, http.StatusNotFound, "BOOKMARK_NOT_FOUND", "Bookmark not found")
	case errors.Is(err, service.ErrAccountVanished):
		// Validation passed but the account was gone at create time.
		w.WriteHeader(http.StatusNoContent)
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *BookmarkHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
