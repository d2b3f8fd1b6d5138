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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List retrieves all folders owned by userID, ordered by name
func (r *PostgresFolderRepository) List(ctx context.Context, userID string) ([]models.Folder, error) {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, user_id, parent_id, name, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY name, id
	`, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list folders", err)
	}

	folders, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Folder])
	if err != nil {
		return nil, storeErr("list folders", err)
	}
	return folders, nil
}

// GetByID retrieves a folder by id, scoped to its owner
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, user_id, parent_id, name, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	var folder models.Folder
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
		}
		return nil, storeErr("get folder", err)
	}

	return &folder, nil
}

// Create persists a new folder. The id is assigned application-side so the
// in-memory view can be patched without a refetch.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	now := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, r.tables.Folders)

	err := r.pool.QueryRow(ctx, query,
		folder.ID,
		folder.UserID,
		folder.ParentID,
		folder.Name,
		now,
		now,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return &domain.NotFoundError{Message: "parent folder not found"}
		}
		return storeErr("create folder", err)
	}

	return nil
}

// Update persists name and parent changes for a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, r.tables.Folders)

	folder.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.UpdatedAt,
		folder.ID,
		folder.UserID,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			return &domain.NotFoundError{Message: "parent folder not found"}
		}
		return storeErr("update folder", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folder.ID)}
	}

	return nil
}

// UpdateParentForChildren rewrites the parent of every folder whose parent
// equals oldParent to newParent. Zero affected rows is not an error: the
// deleted folder may simply have no children.
func (r *PostgresFolderRepository) UpdateParentForChildren(ctx context.Context, userID, oldParent string, newParent *string) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, updated_at = $2
		WHERE parent_id = $3 AND user_id = $4
	`, r.tables.Folders)

	_, err := r.pool.Exec(ctx, query, newParent, time.Now(), oldParent, userID)
	if err != nil {
		return storeErr("reattach child folders", err)
	}

	return nil
}

// Delete removes the folder record
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return storeErr("delete folder", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}

	return nil
}
