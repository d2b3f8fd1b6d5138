package repositories

import (
	"context"

	"mindnotes/internal/domain/models"
)

// BookmarkRepository defines the store gateway for one user's bookmarks.
type BookmarkRepository interface {
	// List retrieves bookmarks owned by userID, newest first. When folderID
	// is non-nil only bookmarks filed in that folder are returned.
	List(ctx context.Context, userID string, folderID *string) ([]models.Bookmark, error)

	// GetByID retrieves a bookmark by id, scoped to its owner.
	GetByID(ctx context.Context, id, userID string) (*models.Bookmark, error)

	// Create persists a new bookmark and fills in its store-assigned fields.
	Create(ctx context.Context, bookmark *models.Bookmark) error

	// Update persists field changes for a bookmark.
	Update(ctx context.Context, bookmark *models.Bookmark) error

	// ClearFolderForAll unfiles every bookmark whose folder equals folderID
	// (bulk detach during the delete cascade).
	ClearFolderForAll(ctx context.Context, userID, folderID string) error

	// Delete removes the bookmark record.
	Delete(ctx context.Context, id, userID string) error
}
