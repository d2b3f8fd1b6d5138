package service

import (
	"context"
	"log/slog"
	"strings"

	"mindnotes/internal/config"
	"mindnotes/internal/domain"
	"mindnotes/internal/domain/models"
	"mindnotes/internal/domain/repositories"
	"mindnotes/internal/domain/services"
	"mindnotes/internal/service/extract"
	"mindnotes/internal/service/summary"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// noContentSummary mirrors the popup's message when a page yields no text.
const noContentSummary = "Unable to generate a summary: no content was found on the page."

type noteService struct {
	noteRepo   repositories.NoteRepository
	extractor  *extract.PageExtractor
	summarizer services.Summarizer // nil when AI summaries are disabled
	logger     *slog.Logger
}

// NewNoteService creates a new note service. summarizer may be nil, in which
// case every summary uses the naive fallback.
func NewNoteService(
	noteRepo repositories.NoteRepository,
	extractor *extract.PageExtractor,
	summarizer services.Summarizer,
	logger *slog.Logger,
) services.NoteService {
	return &noteService{
		noteRepo:   noteRepo,
		extractor:  extractor,
		summarizer: summarizer,
		logger:     logger,
	}
}

// ListNotes returns the user's notes, optionally filtered by archive state
func (s *noteService) ListNotes(ctx context.Context, userID string, archived *bool) ([]models.Note, error) {
	return s.noteRepo.List(ctx, userID, archived)
}

// CreateNote persists a captured note
func (s *noteService) CreateNote(ctx context.Context, userID string, req *services.CreateNoteRequest) (*models.Note, error) {
	if err := validateNoteRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	note := &models.Note{
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Summary: req.Summary,
	}
	if note.Title == "" {
		note.Title = "Untitled"
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note saved", "id", note.ID, "title", note.Title, "user_id", userID)
	return note, nil
}

// UpdateNote edits note fields or toggles the archive flag
func (s *noteService) UpdateNote(ctx context.Context, userID, noteID string, req *services.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, &domain.ValidationError{Message: "note title cannot be empty"}
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Summary != nil {
		note.Summary = *req.Summary
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// DeleteNote removes a note
func (s *noteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if err := s.noteRepo.Delete(ctx, noteID, userID); err != nil {
		return err
	}
	s.logger.Info("note deleted", "id", noteID, "user_id", userID)
	return nil
}

// Summarize produces a summary for captured page content, degrading from AI
// to the naive first-sentences summary and never failing on provider errors.
func (s *noteService) Summarize(ctx context.Context, req *services.SummarizeRequest) (*services.SummarizeResult, error) {
	text := strings.TrimSpace(req.Text)

	if text == "" && req.HTML != "" {
		extracted, err := s.extractor.PageText(req.HTML)
		if err != nil {
			s.logger.Warn("page text extraction failed", "url", req.URL, "error", err)
		} else {
			text = extracted
		}
	}
	text = extract.Clip(text)

	if text == "" {
		return &services.SummarizeResult{
			Summary: noContentSummary,
			Method:  services.SummaryMethodNone,
		}, nil
	}

	if s.summarizer != nil {
		generated, err := s.summarizer.Summarize(ctx, text)
		if err == nil {
			return &services.SummarizeResult{
				Summary: generated,
				Method:  services.SummaryMethodAI,
			}, nil
		}
		s.logger.Warn("AI summary failed, falling back to naive summary",
			"url", req.URL,
			"error", err,
		)
	}

	return &services.SummarizeResult{
		Summary: summary.Naive(text),
		Method:  services.SummaryMethodFallback,
	}, nil
}

// validateNoteRequest validates a note creation request
func validateNoteRequest(req *services.CreateNoteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Length(0, config.MaxNoteTitleLength),
		),
		validation.Field(&req.Content,
			validation.Required.Error("note content cannot be empty"),
		),
	)
}
