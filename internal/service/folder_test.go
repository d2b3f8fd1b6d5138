package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"mindnotes/internal/domain"
	"mindnotes/internal/domain/services"
	"mindnotes/internal/httputil"
)

// fixture: Work -> Projects -> Archive, with one bookmark filed in Projects.
func newFolderFixture() (*fakeFolderRepo, *fakeBookmarkRepo, *SelectionTracker, services.FolderService, *callLog) {
	log := &callLog{}
	folderRepo := newFakeFolderRepo(log)
	folderRepo.add("work", "Work", nil)
	folderRepo.add("projects", "Projects", strptr("work"))
	folderRepo.add("archive", "Archive", strptr("projects"))

	bookmarkRepo := newFakeBookmarkRepo(log)
	bookmarkRepo.add("bm1", strptr("projects"))

	selection := NewSelectionTracker()
	svc := NewFolderService(folderRepo, bookmarkRepo, selection, testLogger())
	return folderRepo, bookmarkRepo, selection, svc, log
}

func TestCreateFolder(t *testing.T) {
	_, _, _, svc, _ := newFolderFixture()

	folder, err := svc.CreateFolder(context.Background(), "u1", &services.CreateFolderRequest{
		Name:     "  Reading  ",
		ParentID: strptr("work"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folder.Name != "Reading" {
		t.Errorf("name not trimmed: %q", folder.Name)
	}
	if folder.ParentID == nil || *folder.ParentID != "work" {
		t.Errorf("parent not set: %v", folder.ParentID)
	}
	if folder.ID == "" {
		t.Error("folder id not assigned")
	}
}

func TestCreateFolderEmptyParentMeansRoot(t *testing.T) {
	_, _, _, svc, _ := newFolderFixture()

	folder, err := svc.CreateFolder(context.Background(), "u1", &services.CreateFolderRequest{
		Name:     "Inbox",
		ParentID: strptr(""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folder.ParentID != nil {
		t.Errorf("empty parent id should normalize to root, got %v", *folder.ParentID)
	}
}

func TestCreateFolderValidation(t *testing.T) {
	_, _, _, svc, _ := newFolderFixture()

	tests := []struct {
		name    string
		req     *services.CreateFolderRequest
		wantErr error
	}{
		{"empty name", &services.CreateFolderRequest{Name: ""}, domain.ErrValidation},
		{"whitespace name", &services.CreateFolderRequest{Name: "   "}, domain.ErrValidation},
		{"missing parent", &services.CreateFolderRequest{Name: "Ok", ParentID: strptr("ghost")}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateFolder(context.Background(), "u1", tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateFolderRename(t *testing.T) {
	folderRepo, _, _, svc, _ := newFolderFixture()

	folder, err := svc.UpdateFolder(context.Background(), "u1", "projects", &services.UpdateFolderRequest{
		Name: strptr("Active Projects"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folder.Name != "Active Projects" {
		t.Errorf("rename not applied: %q", folder.Name)
	}
	if got := folderRepo.folders["projects"].Name; got != "Active Projects" {
		t.Errorf("rename not persisted: %q", got)
	}
}

func TestUpdateFolderReparent(t *testing.T) {
	folderRepo, _, _, svc, _ := newFolderFixture()

	// Move Archive from under Projects to the root.
	_, err := svc.UpdateFolder(context.Background(), "u1", "archive", &services.UpdateFolderRequest{
		ParentID: httputil.OptionalString{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := folderRepo.folders["archive"].ParentID; got != nil {
		t.Errorf("expected root parent, got %v", *got)
	}
}

func TestUpdateFolderRejectsCycles(t *testing.T) {
	_, _, _, svc, _ := newFolderFixture()

	tests := []struct {
		name      string
		folderID  string
		newParent string
		wantErr   error
	}{
		{"own parent", "work", "work", domain.ErrValidation},
		{"direct child", "work", "projects", domain.ErrCycle},
		{"grandchild", "work", "archive", domain.ErrCycle},
		{"unknown parent", "work", "ghost", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateFolder(context.Background(), "u1", tt.folderID, &services.UpdateFolderRequest{
				ParentID: httputil.OptionalString{Present: true, Value: strptr(tt.newParent)},
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateFolderRequiresAField(t *testing.T) {
	_, _, _, svc, _ := newFolderFixture()

	_, err := svc.UpdateFolder(context.Background(), "u1", "work", &services.UpdateFolderRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty update should fail validation, got %v", err)
	}
}

func TestDeleteFolderCascade(t *testing.T) {
	folderRepo, bookmarkRepo, selection, svc, log := newFolderFixture()
	selection.SetSelected("u1", strptr("projects"), "Projects")
	selection.SetFilingTarget("u1", strptr("projects"))

	if err := svc.DeleteFolder(context.Background(), "u1", "projects"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Steps run strictly in order after the tree load.
	want := []string{
		"folder.List",
		"bookmark.ClearFolderForAll",
		"folder.UpdateParentForChildren",
		"folder.Delete",
	}
	if !slices.Equal(log.calls, want) {
		t.Errorf("cascade call order = %v, want %v", log.calls, want)
	}

	// Bookmarks land in the all-bookmarks view.
	if got := bookmarkRepo.bookmarks["bm1"].FolderID; got != nil {
		t.Errorf("bookmark still filed in %v after cascade", *got)
	}

	// Children are promoted to the deleted folder's own parent.
	if got := folderRepo.folders["archive"].ParentID; got == nil || *got != "work" {
		t.Errorf("child not promoted to grandparent: %v", got)
	}

	if _, ok := folderRepo.folders["projects"]; ok {
		t.Error("folder record still present after cascade")
	}

	// The dangling selection falls back to root.
	selectedID, _ := selection.Selected("u1")
	if selectedID != nil {
		t.Errorf("selection still references deleted folder: %v", *selectedID)
	}
	if got := selection.FilingTarget("u1"); got != nil {
		t.Errorf("filing target still references deleted folder: %v", *got)
	}
}

func TestDeleteFolderNotFound(t *testing.T) {
	_, _, _, svc, _ := newFolderFixture()

	err := svc.DeleteFolder(context.Background(), "u1", "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestDeleteFolderStepOneFailure(t *testing.T) {
	_, bookmarkRepo, _, svc, log := newFolderFixture()
	injected := errors.New("store offline")
	bookmarkRepo.errs["ClearFolderForAll"] = injected

	err := svc.DeleteFolder(context.Background(), "u1", "projects")
	if !errors.Is(err, injected) {
		t.Fatalf("got %v, want injected failure", err)
	}

	// Nothing completed, so this is a plain failure, not a partial cascade.
	var partial *domain.PartialCascadeError
	if errors.As(err, &partial) {
		t.Errorf("step one failure reported as partial cascade: %v", err)
	}
	if slices.Contains(log.calls, "folder.UpdateParentForChildren") || slices.Contains(log.calls, "folder.Delete") {
		t.Errorf("later steps ran after step one failed: %v", log.calls)
	}
}

func TestDeleteFolderStepTwoFailure(t *testing.T) {
	folderRepo, _, _, svc, log := newFolderFixture()
	folderRepo.errs["UpdateParentForChildren"] = errors.New("store offline")

	err := svc.DeleteFolder(context.Background(), "u1", "projects")

	var partial *domain.PartialCascadeError
	if !errors.As(err, &partial) {
		t.Fatalf("got %v, want partial cascade error", err)
	}
	if partial.CompletedSteps != 1 {
		t.Errorf("CompletedSteps = %d, want 1", partial.CompletedSteps)
	}
	if partial.FolderID != "projects" {
		t.Errorf("FolderID = %q, want projects", partial.FolderID)
	}
	if slices.Contains(log.calls, "folder.Delete") {
		t.Errorf("delete ran after step two failed: %v", log.calls)
	}
}

func TestDeleteFolderStepThreeFailure(t *testing.T) {
	folderRepo, _, selection, svc, _ := newFolderFixture()
	folderRepo.errs["Delete"] = errors.New("store offline")
	selection.SetSelected("u1", strptr("projects"), "Projects")

	err := svc.DeleteFolder(context.Background(), "u1", "projects")

	var partial *domain.PartialCascadeError
	if !errors.As(err, &partial) {
		t.Fatalf("got %v, want partial cascade error", err)
	}
	if partial.CompletedSteps != 2 {
		t.Errorf("CompletedSteps = %d, want 2", partial.CompletedSteps)
	}

	// The selection reset only happens once the cascade fully completes.
	if selectedID, _ := selection.Selected("u1"); selectedID == nil || *selectedID != "projects" {
		t.Error("selection reset despite interrupted cascade")
	}
}

func TestFolderOptionsExcludeSubtree(t *testing.T) {
	_, _, _, svc, _ := newFolderFixture()

	options, err := svc.FolderOptions(context.Background(), "u1", "projects")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, o := range options {
		if o.Folder.ID == "projects" || o.Folder.ID == "archive" {
			t.Errorf("excluded subtree leaked into options: %s", o.Folder.ID)
		}
	}
	if len(options) != 1 || options[0].Folder.ID != "work" {
		t.Errorf("expected only the root folder, got %v", options)
	}
}
