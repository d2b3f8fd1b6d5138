package repositories

import (
	"context"

	"mindnotes/internal/domain/models"
)

// FolderRepository defines the store gateway for one user's folders.
type FolderRepository interface {
	// List retrieves all folders owned by userID, ordered by name.
	List(ctx context.Context, userID string) ([]models.Folder, error)

	// GetByID retrieves a folder by id, scoped to its owner.
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// Create persists a new folder and fills in its store-assigned fields.
	Create(ctx context.Context, folder *models.Folder) error

	// Update persists name and parent changes for a folder.
	Update(ctx context.Context, folder *models.Folder) error

	// UpdateParentForChildren rewrites the parent of every folder whose
	// parent equals oldParent to newParent (bulk reattachment during the
	// delete cascade).
	UpdateParentForChildren(ctx context.Context, userID, oldParent string, newParent *string) error

	// Delete removes the folder record.
	Delete(ctx context.Context, id, userID string) error
}
