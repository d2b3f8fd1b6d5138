package service

import (
	"sync"
)

// selectionState is one user's folder selection: the folder being browsed
// (with its cached display name) and, tracked separately, the folder the
// user last filed a bookmark into. The two may differ.
type selectionState struct {
	selectedID   *string
	selectedName string
	filingID     *string
}

// SelectionTracker holds per-user selection state in process. The popup is
// single-threaded, but the server is not, so access is mutex-guarded. State
// carries no business invariant and is lost on restart, matching the
// popup's own transient session cache.
type SelectionTracker struct {
	mu     sync.Mutex
	byUser map[string]*selectionState
}

// NewSelectionTracker creates an empty tracker.
func NewSelectionTracker() *SelectionTracker {
	return &SelectionTracker{byUser: make(map[string]*selectionState)}
}

func (t *SelectionTracker) state(userID string) *selectionState {
	s, ok := t.byUser[userID]
	if !ok {
		s = &selectionState{}
		t.byUser[userID] = s
	}
	return s
}

// Selected returns the user's browse selection and its cached name.
func (t *SelectionTracker) Selected(userID string) (*string, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state(userID)
	return s.selectedID, s.selectedName
}

// SetSelected changes the browse selection and caches its display name.
func (t *SelectionTracker) SetSelected(userID string, folderID *string, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state(userID)
	s.selectedID = folderID
	s.selectedName = name
}

// FilingTarget returns the folder the user last filed a bookmark into.
func (t *SelectionTracker) FilingTarget(userID string) *string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state(userID).filingID
}

// SetFilingTarget records the target of a filing action.
func (t *SelectionTracker) SetFilingTarget(userID string, folderID *string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state(userID).filingID = folderID
}

// ResetFolder clears any selection or filing target that references
// folderID. Called after the folder's delete cascade so the user falls back
// to the "all bookmarks" view instead of a dangling reference.
func (t *SelectionTracker) ResetFolder(userID, folderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state(userID)
	if s.selectedID != nil && *s.selectedID == folderID {
		s.selectedID = nil
		s.selectedName = ""
	}
	if s.filingID != nil && *s.filingID == folderID {
		s.filingID = nil
	}
}
