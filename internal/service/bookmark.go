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
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type bookmarkService struct {
	bookmarkRepo repositories.BookmarkRepository
	folderRepo   repositories.FolderRepository
	selection    *SelectionTracker
	logger       *slog.Logger
}

// NewBookmarkService creates the filing coordinator
func NewBookmarkService(
	bookmarkRepo repositories.BookmarkRepository,
	folderRepo repositories.FolderRepository,
	selection *SelectionTracker,
	logger *slog.Logger,
) services.BookmarkService {
	return &bookmarkService{
		bookmarkRepo: bookmarkRepo,
		folderRepo:   folderRepo,
		selection:    selection,
		logger:       logger,
	}
}

func (s *bookmarkService) loadTree(ctx context.Context, userID string) (*foldertree.Tree, error) {
	folders, err := s.folderRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return foldertree.New(folders), nil
}

// ListBookmarks returns the user's bookmarks, optionally filtered to one folder
func (s *bookmarkService) ListBookmarks(ctx context.Context, userID string, folderID *string) ([]models.Bookmark, error) {
	return s.bookmarkRepo.List(ctx, userID, folderID)
}

// FileBookmark persists a new bookmark filed into the requested folder. The
// folder must exist in the current tree view; the insert itself stays
// best-effort against a folder delete racing it, which the next tree
// refresh corrects.
func (s *bookmarkService) FileBookmark(ctx context.Context, userID string, req *services.FileBookmarkRequest) (*models.Bookmark, error) {
	req.URL = strings.TrimSpace(req.URL)

	if err := validateFileRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	if req.FolderID != nil {
		tree, err := s.loadTree(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !tree.Contains(*req.FolderID) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", *req.FolderID)}
		}
	}

	bookmark := &models.Bookmark{
		UserID:      userID,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		FaviconURL:  req.FaviconURL,
		IsFavorite:  req.IsFavorite,
		FolderID:    req.FolderID,
	}

	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return nil, err
	}

	s.selection.SetFilingTarget(userID, bookmark.FolderID)

	s.logger.Info("bookmark filed",
		"id", bookmark.ID,
		"url", bookmark.URL,
		"folder_id", bookmark.FolderID,
		"user_id", userID,
	)

	return bookmark, nil
}

// UpdateBookmark edits bookmark fields, including refiling
func (s *bookmarkService) UpdateBookmark(ctx context.Context, userID, bookmarkID string, req *services.UpdateBookmarkRequest) (*models.Bookmark, error) {
	bookmark, err := s.bookmarkRepo.GetByID(ctx, bookmarkID, userID)
	if err != nil {
		return nil, err
	}

	if req.URL != nil {
		url := strings.TrimSpace(*req.URL)
		if err := validation.Validate(url, validation.Required.Error("url cannot be empty"), is.URL); err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("url: %v", err)}
		}
		bookmark.URL = url
	}
	if req.Title != nil {
		bookmark.Title = *req.Title
	}
	if req.Description != nil {
		bookmark.Description = *req.Description
	}
	if req.Tags != nil {
		bookmark.Tags = req.Tags
	}
	if req.FaviconURL != nil {
		bookmark.FaviconURL = req.FaviconURL
	}
	if req.IsFavorite != nil {
		bookmark.IsFavorite = *req.IsFavorite
	}

	// Tri-state: only refile when the field was present in the request
	if req.FolderID.Present {
		newFolder := req.FolderID.Value
		if newFolder != nil && *newFolder == "" {
			newFolder = nil
		}
		if newFolder != nil {
			tree, err := s.loadTree(ctx, userID)
			if err != nil {
				return nil, err
			}
			if !tree.Contains(*newFolder) {
				return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", *newFolder)}
			}
		}
		bookmark.FolderID = newFolder
	}

	if err := s.bookmarkRepo.Update(ctx, bookmark); err != nil {
		return nil, err
	}

	s.logger.Info("bookmark updated",
		"id", bookmark.ID,
		"folder_id", bookmark.FolderID,
		"user_id", userID,
	)

	return bookmark, nil
}

// DeleteBookmark removes a bookmark
func (s *bookmarkService) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	if err := s.bookmarkRepo.Delete(ctx, bookmarkID, userID); err != nil {
		return err
	}

	s.logger.Info("bookmark deleted", "id", bookmarkID, "user_id", userID)
	return nil
}

// Selection returns the user's current browse selection. The display name is
// re-resolved against a fresh tree snapshot so an externally deleted folder
// shows the unknown sentinel instead of a stale cached name.
func (s *bookmarkService) Selection(ctx context.Context, userID string) (*services.SelectionView, error) {
	selectedID, _ := s.selection.Selected(userID)

	tree, err := s.loadTree(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &services.SelectionView{
		FolderID:       selectedID,
		FolderName:     tree.ResolveName(selectedID),
		FilingFolderID: s.selection.FilingTarget(userID),
	}, nil
}

// SetSelection changes the browse selection and caches the resolved name
func (s *bookmarkService) SetSelection(ctx context.Context, userID string, folderID *string) (*services.SelectionView, error) {
	if folderID != nil && *folderID == "" {
		folderID = nil
	}

	tree, err := s.loadTree(ctx, userID)
	if err != nil {
		return nil, err
	}
	if folderID != nil && !tree.Contains(*folderID) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", *folderID)}
	}

	name := tree.ResolveName(folderID)
	s.selection.SetSelected(userID, folderID, name)

	return &services.SelectionView{
		FolderID:       folderID,
		FolderName:     name,
		FilingFolderID: s.selection.FilingTarget(userID),
	}, nil
}

// validateFileRequest validates a bookmark creation request
func validateFileRequest(req *services.FileBookmarkRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.URL,
			validation.Required.Error("url cannot be empty"),
			is.URL,
		),
		validation.Field(&req.Title,
			validation.Length(0, config.MaxBookmarkTitleLength),
		),
	)
}
