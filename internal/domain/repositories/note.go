package repositories

import (
	"context"

	"mindnotes/internal/domain/models"
)

// NoteRepository defines the store gateway for one user's notes.
type NoteRepository interface {
	// List retrieves notes owned by userID, newest first. When archived is
	// non-nil only notes with a matching is_archived flag are returned.
	List(ctx context.Context, userID string, archived *bool) ([]models.Note, error)

	// GetByID retrieves a note by id, scoped to its owner.
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)

	// Create persists a new note and fills in its store-assigned fields.
	Create(ctx context.Context, note *models.Note) error

	// Update persists field changes for a note.
	Update(ctx context.Context, note *models.Note) error

	// Delete removes the note record.
	Delete(ctx context.Context, id, userID string) error
}
