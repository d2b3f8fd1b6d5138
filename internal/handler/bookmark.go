package handler

import (
	"log/slog"
	"net/http"

	"mindnotes/internal/domain/services"
	"mindnotes/internal/httputil"
)

// BookmarkHandler handles bookmark and selection HTTP requests
type BookmarkHandler struct {
	bookmarkService services.BookmarkService
	logger          *slog.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(bookmarkService services.BookmarkService, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		logger:          logger,
	}
}

// ListBookmarks returns the user's bookmarks, newest first.
// ?folder_id={id} filters to one folder.
// GET /api/bookmarks
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var folderID *string
	if v := r.URL.Query().Get("folder_id"); v != "" {
		folderID = &v
	}

	bookmarks, err := h.bookmarkService.ListBookmarks(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, bookmarks)
}

// CreateBookmark files a new bookmark
// POST /api/bookmarks
func (h *BookmarkHandler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.FileBookmarkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bookmark, err := h.bookmarkService.FileBookmark(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, bookmark)
}

// UpdateBookmark edits bookmark fields, including refiling
// PATCH /api/bookmarks/{id}
func (h *BookmarkHandler) UpdateBookmark(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "bookmark ID is required")
		return
	}

	var req services.UpdateBookmarkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bookmark, err := h.bookmarkService.UpdateBookmark(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, bookmark)
}

// DeleteBookmark removes a bookmark
// DELETE /api/bookmarks/{id}
func (h *BookmarkHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "bookmark ID is required")
		return
	}

	if err := h.bookmarkService.DeleteBookmark(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSelection returns the current browse-folder selection
// GET /api/selection
func (h *BookmarkHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	view, err := h.bookmarkService.Selection(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// SetSelection changes the browse-folder selection (null folder_id selects
// the "all bookmarks" view)
// PUT /api/selection
func (h *BookmarkHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req struct {
		FolderID *string `json:"folder_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.bookmarkService.SetSelection(r.Context(), userID, req.FolderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}
