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

// PostgresBookmarkRepository implements the BookmarkRepository interface
type PostgresBookmarkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(config *RepositoryConfig) repositories.BookmarkRepository {
	return &PostgresBookmarkRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List retrieves bookmarks owned by userID, newest first, optionally
// filtered to one folder
func (r *PostgresBookmarkRepository) List(ctx context.Context, userID string, folderID *string) ([]models.Bookmark, error) {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, user_id, url, title, description, tags, favicon_url,
		       is_favorite, folder_id, created_at, updated_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.Bookmarks)

	args := []any{userID}
	if folderID != nil {
		query += " AND folder_id = $2"
		args = append(args, *folderID)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list bookmarks", err)
	}

	bookmarks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Bookmark])
	if err != nil {
		return nil, storeErr("list bookmarks", err)
	}
	return bookmarks, nil
}

// GetByID retrieves a bookmark by id, scoped to its owner
func (r *PostgresBookmarkRepository) GetByID(ctx context.Context, id, userID string) (*models.Bookmark, error) {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, user_id, url, title, description, tags, favicon_url,
		       is_favorite, folder_id, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Bookmarks)

	var b models.Bookmark
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&b.ID,
		&b.UserID,
		&b.URL,
		&b.Title,
		&b.Description,
		&b.Tags,
		&b.FaviconURL,
		&b.IsFavorite,
		&b.FolderID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("bookmark %s not found", id)}
		}
		return nil, storeErr("get bookmark", err)
	}

	return &b, nil
}

// Create persists a new bookmark
func (r *PostgresBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	if bookmark.ID == "" {
		bookmark.ID = uuid.NewString()
	}
	if bookmark.Tags == nil {
		bookmark.Tags = []string{}
	}
	now := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, url, title, description, tags,
		                favicon_url, is_favorite, folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, r.tables.Bookmarks)

	err := r.pool.QueryRow(ctx, query,
		bookmark.ID,
		bookmark.UserID,
		bookmark.URL,
		bookmark.Title,
		bookmark.Description,
		bookmark.Tags,
		bookmark.FaviconURL,
		bookmark.IsFavorite,
		bookmark.FolderID,
		now,
		now,
	).Scan(&bookmark.CreatedAt, &bookmark.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			// Filing raced with a folder delete. The caller treats the
			// insert as best-effort and refreshes its tree view.
			return &domain.NotFoundError{Message: "folder not found"}
		}
		return storeErr("create bookmark", err)
	}

	return nil
}

// Update persists field changes for a bookmark
func (r *PostgresBookmarkRepository) Update(ctx context.Context, bookmark *models.Bookmark) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET url = $1, title = $2, description = $3, tags = $4,
		    favicon_url = $5, is_favorite = $6, folder_id = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`, r.tables.Bookmarks)

	bookmark.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		bookmark.URL,
		bookmark.Title,
		bookmark.Description,
		bookmark.Tags,
		bookmark.FaviconURL,
		bookmark.IsFavorite,
		bookmark.FolderID,
		bookmark.UpdatedAt,
		bookmark.ID,
		bookmark.UserID,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			return &domain.NotFoundError{Message: "folder not found"}
		}
		return storeErr("update bookmark", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("bookmark %s not found", bookmark.ID)}
	}

	return nil
}

// ClearFolderForAll unfiles every bookmark filed in folderID. Zero affected
// rows is not an error: the folder may be empty.
func (r *PostgresBookmarkRepository) ClearFolderForAll(ctx context.Context, userID, folderID string) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = NULL, updated_at = $1
		WHERE folder_id = $2 AND user_id = $3
	`, r.tables.Bookmarks)

	_, err := r.pool.Exec(ctx, query, time.Now(), folderID, userID)
	if err != nil {
		return storeErr("detach bookmarks", err)
	}

	return nil
}

// Delete removes the bookmark record
func (r *PostgresBookmarkRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Bookmarks)

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return storeErr("delete bookmark", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("bookmark %s not found", id)}
	}

	return nil
}
