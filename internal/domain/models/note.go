package models

import (
	"time"
)

// Note is a captured page with its generated summary. The popup stores the
// source URL in Content. Notes do not participate in the folder tree.
type Note struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	Summary    string    `json:"summary" db:"summary"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
