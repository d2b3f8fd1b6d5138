package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindnotes/internal/domain"
	"mindnotes/internal/domain/models"
	"mindnotes/internal/domain/repositories"
)

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List retrieves notes owned by userID, newest first, optionally filtered by
// archive state
func (r *PostgresNoteRepository) List(ctx context.Context, userID string, archived *bool) ([]models.Note, error) {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, user_id, title, content, summary, is_archived, created_at, updated_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.Notes)

	args := []any{userID}
	if archived != nil {
		query += " AND is_archived = $2"
		args = append(args, *archived)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list notes", err)
	}

	notes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Note])
	if err != nil {
		return nil, storeErr("list notes", err)
	}
	return notes, nil
}

// GetByID retrieves a note by id, scoped to its owner
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, user_id, title, content, summary, is_archived, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Notes)

	var n models.Note
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Content,
		&n.Summary,
		&n.IsArchived,
		&n.CreatedAt,
		&n.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("note %s not found", id)}
		}
		return nil, storeErr("get note", err)
	}

	return &n, nil
}

// Create persists a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	now := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, content, summary, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, r.tables.Notes)

	err := r.pool.QueryRow(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Summary,
		note.IsArchived,
		now,
		now,
	).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return storeErr("create note", err)
	}

	return nil
}

// Update persists field changes for a note
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, summary = $3, is_archived = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`, r.tables.Notes)

	note.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		note.Title,
		note.Content,
		note.Summary,
		note.IsArchived,
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)

	if err != nil {
		return storeErr("update note", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("note %s not found", note.ID)}
	}

	return nil
}

// Delete removes the note record
func (r *PostgresNoteRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Notes)

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return storeErr("delete note", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("note %s not found", id)}
	}

	return nil
}
