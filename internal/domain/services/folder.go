package services

import (
	"context"

	"mindnotes/internal/domain/foldertree"
	"mindnotes/internal/domain/models"
	"mindnotes/internal/httputil"
)

// FolderService handles folder-tree business logic
type FolderService interface {
	// ListFolders returns the user's folders as a flat, name-ordered list
	ListFolders(ctx context.Context, userID string) ([]models.Folder, error)

	// FolderOptions returns the depth-first (folder, depth) option rows for
	// the folder picker. When excludeID is non-empty the named folder and
	// its descendants are omitted, i.e. the available-parents view used
	// while editing that folder.
	FolderOptions(ctx context.Context, userID, excludeID string) ([]foldertree.Option, error)

	// GetFolder retrieves a folder by id
	GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, userID string, req *CreateFolderRequest) (*models.Folder, error)

	// UpdateFolder renames and/or reparents a folder
	UpdateFolder(ctx context.Context, userID, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder runs the three-step delete cascade: detach bookmarks,
	// promote child folders to the deleted folder's parent, delete the
	// record. Steps run strictly in order and a later step never runs
	// after a failure.
	DeleteFolder(ctx context.Context, userID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // nil for root
}

// UpdateFolderRequest represents a folder update request (rename or move).
// ParentID is tri-state: absent leaves the parent unchanged, null moves the
// folder to root, a value reparents it.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name,omitempty"`
	ParentID httputil.OptionalString `json:"parent_id"`
}
