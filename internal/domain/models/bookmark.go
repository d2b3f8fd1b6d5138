package models

import (
	"time"
)

// Bookmark is a saved page, filed into at most one folder. FolderID nil means
// unfiled ("All Bookmarks"). A bookmark is never left pointing at a deleted
// folder: the delete cascade clears FolderID before the folder record goes.
type Bookmark struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	URL         string    `json:"url" db:"url"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Tags        []string  `json:"tags" db:"tags"`
	FaviconURL  *string   `json:"favicon_url" db:"favicon_url"`
	IsFavorite  bool      `json:"is_favorite" db:"is_favorite"`
	FolderID    *string   `json:"folder_id" db:"folder_id"` // NULL = unfiled
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
