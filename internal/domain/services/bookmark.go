package services

import (
	"context"

	"mindnotes/internal/domain/models"
	"mindnotes/internal/httputil"
)

// BookmarkService is the filing coordinator: it assigns bookmarks to folders
// and tracks the user's current folder selection.
type BookmarkService interface {
	// ListBookmarks returns the user's bookmarks, newest first, optionally
	// filtered to one folder.
	ListBookmarks(ctx context.Context, userID string, folderID *string) ([]models.Bookmark, error)

	// FileBookmark persists a new bookmark filed into folderID (nil for
	// unfiled). The folder must exist in the current tree view; the insert
	// itself is best-effort against a racing folder delete.
	FileBookmark(ctx context.Context, userID string, req *FileBookmarkRequest) (*models.Bookmark, error)

	// UpdateBookmark edits bookmark fields, including refiling.
	UpdateBookmark(ctx context.Context, userID, bookmarkID string, req *UpdateBookmarkRequest) (*models.Bookmark, error)

	// DeleteBookmark removes a bookmark.
	DeleteBookmark(ctx context.Context, userID, bookmarkID string) error

	// Selection returns the user's current browse-folder selection with its
	// resolved display name.
	Selection(ctx context.Context, userID string) (*SelectionView, error)

	// SetSelection changes the browse-folder selection (nil for "all") and
	// caches the resolved display name.
	SetSelection(ctx context.Context, userID string, folderID *string) (*SelectionView, error)
}

// FileBookmarkRequest represents a bookmark creation request
type FileBookmarkRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	FaviconURL  *string  `json:"favicon_url,omitempty"`
	IsFavorite  bool     `json:"is_favorite"`
	FolderID    *string  `json:"folder_id,omitempty"` // nil = unfiled
}

// UpdateBookmarkRequest represents a bookmark update request. FolderID is
// tri-state: absent keeps the filing, null unfiles, a value refiles.
type UpdateBookmarkRequest struct {
	URL         *string                 `json:"url,omitempty"`
	Title       *string                 `json:"title,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Tags        []string                `json:"tags,omitempty"`
	FaviconURL  *string                 `json:"favicon_url,omitempty"`
	IsFavorite  *bool                   `json:"is_favorite,omitempty"`
	FolderID    httputil.OptionalString `json:"folder_id"`
}

// SelectionView is the current browse selection with its display name, plus
// the separately-tracked target of the most recent filing action.
type SelectionView struct {
	FolderID       *string `json:"folder_id"`
	FolderName     string  `json:"folder_name"`
	FilingFolderID *string `json:"filing_folder_id"`
}
