package services

import (
	"context"

	"mindnotes/internal/domain/models"
)

// NoteService handles note capture and maintenance
type NoteService interface {
	// ListNotes returns the user's notes, newest first, optionally filtered
	// by archive state.
	ListNotes(ctx context.Context, userID string, archived *bool) ([]models.Note, error)

	// CreateNote persists a captured note.
	CreateNote(ctx context.Context, userID string, req *CreateNoteRequest) (*models.Note, error)

	// UpdateNote edits note fields or toggles the archive flag.
	UpdateNote(ctx context.Context, userID, noteID string, req *UpdateNoteRequest) (*models.Note, error)

	// DeleteNote removes a note.
	DeleteNote(ctx context.Context, userID, noteID string) error

	// Summarize produces a summary for captured page content. AI output is
	// preferred; on failure or when no provider is configured it degrades
	// to the naive first-sentences summary.
	Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResult, error)
}

// CreateNoteRequest represents a note creation request. The popup stores the
// page URL in Content.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
}

// UpdateNoteRequest represents a note update request
type UpdateNoteRequest struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Summary    *string `json:"summary,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
}

// SummarizeRequest carries captured page content. Text wins when both text
// and HTML are present; HTML is extracted to plain text first.
type SummarizeRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
	HTML  string `json:"html,omitempty"`
}

// Summary production methods reported in SummarizeResult.
const (
	SummaryMethodAI       = "ai"
	SummaryMethodFallback = "fallback"
	SummaryMethodNone     = "none"
)

// SummarizeResult is a generated summary plus the method that produced it.
type SummarizeResult struct {
	Summary string `json:"summary"`
	Method  string `json:"method"`
}

// Summarizer generates a summary for extracted page text. Implementations
// may fail; callers degrade to the naive fallback.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
