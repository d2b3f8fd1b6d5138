package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mindnotes/internal/config"
	"mindnotes/internal/domain"
	"mindnotes/internal/domain/foldertree"
	"mindnotes/internal/domain/models"
	"mindnotes/internal/domain/repositories"
	"mindnotes/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	folderRepo   repositories.FolderRepository
	bookmarkRepo repositories.BookmarkRepository
	selection    *SelectionTracker
	logger       *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	bookmarkRepo repositories.BookmarkRepository,
	selection *SelectionTracker,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo:   folderRepo,
		bookmarkRepo: bookmarkRepo,
		selection:    selection,
		logger:       logger,
	}
}

// loadTree refreshes the in-memory tree snapshot from the store. Every
// operation works against a fresh snapshot; the store stays the single
// source of truth.
func (s *folderService) loadTree(ctx context.Context, userID string) (*foldertree.Tree, error) {
	folders, err := s.folderRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return foldertree.New(folders), nil
}

// ListFolders returns the user's folders as a flat, name-ordered list
func (s *folderService) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.List(ctx, userID)
}

// FolderOptions returns the indented picker rows, optionally excluding a
// folder and its subtree (the available-parents view)
func (s *folderService) FolderOptions(ctx context.Context, userID, excludeID string) ([]foldertree.Option, error) {
	tree, err := s.loadTree(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tree.Options(excludeID), nil
}

// GetFolder retrieves a folder by id
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, folderID, userID)
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, userID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := validateCreateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.ParentID != nil {
		tree, err := s.loadTree(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !tree.Contains(*req.ParentID) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent folder %s not found", *req.ParentID)}
		}
	}

	folder := &models.Folder{
		UserID:   userID,
		ParentID: req.ParentID,
		Name:     req.Name,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"user_id", userID,
	)

	return folder, nil
}

// UpdateFolder renames and/or reparents a folder
func (s *folderService) UpdateFolder(ctx context.Context, userID, folderID string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	tree, err := s.loadTree(ctx, userID)
	if err != nil {
		return nil, err
	}

	folder, ok := tree.Get(folderID)
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
	}

	if req.Name != nil {
		folder.Name = strings.TrimSpace(*req.Name)
	}

	// Tri-state: only move the folder if the field was present in the request
	if req.ParentID.Present {
		newParent := req.ParentID.Value
		if newParent != nil && *newParent == "" {
			newParent = nil // empty string means root, like null
		}
		if err := tree.ValidateReparent(folderID, newParent); err != nil {
			return nil, err
		}
		folder.ParentID = newParent
	}

	if err := s.folderRepo.Update(ctx, &folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"user_id", userID,
	)

	return &folder, nil
}

// DeleteFolder runs the three-step cascade. Steps execute strictly in order:
// reversing the child promotion and the record delete would leave child
// folders referencing a deleted parent. A later step never runs after a
// failure; a failure after step 1 surfaces as a PartialCascadeError so the
// caller re-fetches both collections instead of trusting its view.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	tree, err := s.loadTree(ctx, userID)
	if err != nil {
		return err
	}

	folder, ok := tree.Get(folderID)
	if !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
	}

	// Step 1: detach bookmarks filed in this folder.
	if err := s.bookmarkRepo.ClearFolderForAll(ctx, userID, folderID); err != nil {
		return err
	}

	// Step 2: promote children one level, to the deleted folder's own
	// parent, preserving the forest without orphaning subtrees.
	if err := s.folderRepo.UpdateParentForChildren(ctx, userID, folderID, folder.ParentID); err != nil {
		s.logger.Error("folder delete cascade interrupted",
			"id", folderID,
			"completed_steps", 1,
			"error", err,
		)
		return &domain.PartialCascadeError{FolderID: folderID, CompletedSteps: 1, Err: err}
	}

	// Step 3: delete the folder record itself.
	if err := s.folderRepo.Delete(ctx, folderID, userID); err != nil {
		s.logger.Error("folder delete cascade interrupted",
			"id", folderID,
			"completed_steps", 2,
			"error", err,
		)
		return &domain.PartialCascadeError{FolderID: folderID, CompletedSteps: 2, Err: err}
	}

	// A selection pointing at the deleted folder falls back to "all".
	s.selection.ResetFolder(userID, folderID)

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"promoted_to", folder.ParentID,
		"user_id", userID,
	)

	return nil
}

// validateCreateRequest validates a folder creation request
func validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("folder name cannot be empty"),
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
}

// validateUpdateRequest validates a folder update request
func validateUpdateRequest(req *services.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.ParentID.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validation.Validate(trimmed,
			validation.Required.Error("folder name cannot be empty"),
			validation.Length(1, config.MaxFolderNameLength),
		); err != nil {
			return err
		}
	}

	return nil
}
