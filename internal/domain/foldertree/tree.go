package foldertree

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"mindnotes/internal/domain"
	"mindnotes/internal/domain/models"
)

// Display names for folder references that do not resolve to a folder record.
const (
	// RootName labels the nil folder ("all bookmarks" view).
	RootName = "All Bookmarks"
	// UnknownName labels an id missing from the snapshot (stale reference
	// after an external deletion).
	UnknownName = "Unknown folder"
)

// Tree is a point-in-time snapshot of one user's folders, indexed by id.
// It is rebuilt from the store on load and after each confirmed mutation;
// all methods are pure reads over the snapshot.
//
// The parent relation is expected to form a forest. Every traversal still
// tracks visited ids so that a corrupt snapshot (a cycle already persisted by
// an older client) terminates instead of looping.
type Tree struct {
	byID map[string]models.Folder
}

// New builds a snapshot from a flat folder list.
func New(folders []models.Folder) *Tree {
	byID := make(map[string]models.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}
	return &Tree{byID: byID}
}

// Len returns the number of folders in the snapshot.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Get returns the folder with the given id.
func (t *Tree) Get(id string) (models.Folder, bool) {
	f, ok := t.byID[id]
	return f, ok
}

// Contains reports whether the snapshot has a folder with the given id.
func (t *Tree) Contains(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// Children returns every folder whose parent equals parentID (nil for root
// folders), ordered by name. Siblings with equal names keep a stable order
// by id.
func (t *Tree) Children(parentID *string) []models.Folder {
	var children []models.Folder
	for _, f := range t.byID {
		if sameParent(f.ParentID, parentID) {
			children = append(children, f)
		}
	}
	slices.SortFunc(children, func(a, b models.Folder) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return children
}

// HasDescendant reports whether candidateID lies in the subtree rooted at
// folderID (the folder itself is not its own descendant). Implemented as a
// membership walk over the subtree, which stays correct even when the
// ancestor chain of a corrupt snapshot would not terminate.
func (t *Tree) HasDescendant(folderID, candidateID string) bool {
	if folderID == candidateID {
		return false
	}
	found := false
	t.walkSubtree(folderID, make(map[string]bool), func(f models.Folder) {
		if f.ID == candidateID {
			found = true
		}
	})
	return found
}

// DescendantIDs returns the ids of every folder in the subtree rooted at
// folderID, excluding folderID itself.
func (t *Tree) DescendantIDs(folderID string) []string {
	var ids []string
	t.walkSubtree(folderID, make(map[string]bool), func(f models.Folder) {
		ids = append(ids, f.ID)
	})
	return ids
}

func (t *Tree) walkSubtree(parentID string, visited map[string]bool, visit func(models.Folder)) {
	if visited[parentID] {
		return
	}
	visited[parentID] = true
	for _, child := range t.Children(&parentID) {
		visit(child)
		t.walkSubtree(child.ID, visited, visit)
	}
}

// Ancestors returns the chain of folders reached by following parent links
// upward from id, nearest first. The walk stops at a root folder, at a
// dangling parent reference, or when it revisits an id.
func (t *Tree) Ancestors(id string) []models.Folder {
	var chain []models.Folder
	visited := map[string]bool{id: true}

	f, ok := t.byID[id]
	if !ok {
		return chain
	}
	for f.ParentID != nil {
		parent, ok := t.byID[*f.ParentID]
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		chain = append(chain, parent)
		f = parent
	}
	return chain
}

// ValidateReparent checks that setting folderID's parent to newParentID
// preserves the forest invariant. It returns a ValidationError for
// self-parenting, a NotFoundError for a missing parent, and a CycleError when
// the new parent lies inside folderID's own subtree.
func (t *Tree) ValidateReparent(folderID string, newParentID *string) error {
	if newParentID == nil {
		return nil
	}
	if *newParentID == folderID {
		return &domain.ValidationError{Message: "a folder cannot be its own parent"}
	}
	if !t.Contains(*newParentID) {
		return &domain.NotFoundError{Message: fmt.Sprintf("parent folder %s not found", *newParentID)}
	}
	if t.HasDescendant(folderID, *newParentID) {
		return &domain.CycleError{Message: "circular folder reference detected"}
	}
	return nil
}

// Option is one row of the flattened folder picker.
type Option struct {
	Folder models.Folder `json:"folder"`
	Depth  int           `json:"depth"`
}

// Walk yields every folder under parentID depth-first in name order, paired
// with its depth relative to parentID. The sequence is finite (bounded by the
// folder count) and can be restarted by ranging again.
func (t *Tree) Walk(parentID *string) iter.Seq2[models.Folder, int] {
	return func(yield func(models.Folder, int) bool) {
		t.walkOptions(parentID, 0, make(map[string]bool), yield)
	}
}

func (t *Tree) walkOptions(parentID *string, depth int, visited map[string]bool, yield func(models.Folder, int) bool) bool {
	for _, child := range t.Children(parentID) {
		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true
		if !yield(child, depth) {
			return false
		}
		if !t.walkOptions(&child.ID, depth+1, visited, yield) {
			return false
		}
	}
	return true
}

// Options collects Walk into a slice for dropdown rendering. When excludeID
// is non-empty the named folder and its whole subtree are skipped, so the
// picker can not offer a parent that the engine would reject.
func (t *Tree) Options(excludeID string) []Option {
	options := make([]Option, 0, len(t.byID))
	skipped := map[string]bool{}
	if excludeID != "" {
		skipped[excludeID] = true
		for _, id := range t.DescendantIDs(excludeID) {
			skipped[id] = true
		}
	}
	for f, depth := range t.Walk(nil) {
		if skipped[f.ID] {
			continue
		}
		options = append(options, Option{Folder: f, Depth: depth})
	}
	return options
}

// ResolveName maps a folder reference to its display name. A nil id resolves
// to the root sentinel, an id missing from the snapshot to the unknown
// sentinel.
func (t *Tree) ResolveName(id *string) string {
	if id == nil || *id == "" {
		return RootName
	}
	if f, ok := t.byID[*id]; ok {
		return f.Name
	}
	return UnknownName
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
