package models

import (
	"time"
)

// Folder is one node of a user's bookmark-folder forest. ParentID is nil for
// root-level folders; when set it must reference another folder of the same
// user. The parent relation never contains cycles (the folder service rejects
// mutations that would introduce one before persisting).
type Folder struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
