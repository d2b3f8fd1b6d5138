package service

import (
	"context"
	"errors"
	"testing"

	"mindnotes/internal/domain"
	"mindnotes/internal/domain/foldertree"
	"mindnotes/internal/domain/services"
	"mindnotes/internal/httputil"
)

func newBookmarkFixture() (*fakeFolderRepo, *fakeBookmarkRepo, *SelectionTracker, services.BookmarkService) {
	log := &callLog{}
	folderRepo := newFakeFolderRepo(log)
	folderRepo.add("work", "Work", nil)
	folderRepo.add("reading", "Reading", nil)

	bookmarkRepo := newFakeBookmarkRepo(log)
	selection := NewSelectionTracker()
	svc := NewBookmarkService(bookmarkRepo, folderRepo, selection, testLogger())
	return folderRepo, bookmarkRepo, selection, svc
}

func TestFileBookmark(t *testing.T) {
	_, bookmarkRepo, selection, svc := newBookmarkFixture()

	bookmark, err := svc.FileBookmark(context.Background(), "u1", &services.FileBookmarkRequest{
		URL:      " https://example.com/article ",
		Title:    "An Article",
		FolderID: strptr("work"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookmark.URL != "https://example.com/article" {
		t.Errorf("url not trimmed: %q", bookmark.URL)
	}
	if _, ok := bookmarkRepo.bookmarks[bookmark.ID]; !ok {
		t.Error("bookmark not persisted")
	}

	// Filing remembers the target folder for the next capture.
	if got := selection.FilingTarget("u1"); got == nil || *got != "work" {
		t.Errorf("filing target = %v, want work", got)
	}
}

func TestFileBookmarkValidation(t *testing.T) {
	_, _, _, svc := newBookmarkFixture()

	tests := []struct {
		name    string
		req     *services.FileBookmarkRequest
		wantErr error
	}{
		{"empty url", &services.FileBookmarkRequest{URL: ""}, domain.ErrValidation},
		{"not a url", &services.FileBookmarkRequest{URL: "not a url"}, domain.ErrValidation},
		{"missing folder", &services.FileBookmarkRequest{URL: "https://example.com", FolderID: strptr("ghost")}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FileBookmark(context.Background(), "u1", tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateBookmarkRefile(t *testing.T) {
	_, bookmarkRepo, _, svc := newBookmarkFixture()
	bookmarkRepo.add("bm1", strptr("work"))

	// Absent folder_id leaves the filing untouched.
	updated, err := svc.UpdateBookmark(context.Background(), "u1", "bm1", &services.UpdateBookmarkRequest{
		Title: strptr("Renamed"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FolderID == nil || *updated.FolderID != "work" {
		t.Errorf("filing changed by unrelated update: %v", updated.FolderID)
	}

	// Explicit null unfiles the bookmark.
	updated, err = svc.UpdateBookmark(context.Background(), "u1", "bm1", &services.UpdateBookmarkRequest{
		FolderID: httputil.OptionalString{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FolderID != nil {
		t.Errorf("null folder_id should unfile, got %v", *updated.FolderID)
	}

	// Refiling into a missing folder is rejected.
	_, err = svc.UpdateBookmark(context.Background(), "u1", "bm1", &services.UpdateBookmarkRequest{
		FolderID: httputil.OptionalString{Present: true, Value: strptr("ghost")},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestSelectionDefaults(t *testing.T) {
	_, _, _, svc := newBookmarkFixture()

	view, err := svc.Selection(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.FolderID != nil {
		t.Errorf("fresh selection should be root, got %v", *view.FolderID)
	}
	if view.FolderName != foldertree.RootName {
		t.Errorf("fresh selection name = %q, want %q", view.FolderName, foldertree.RootName)
	}
}

func TestSetSelection(t *testing.T) {
	_, _, _, svc := newBookmarkFixture()

	view, err := svc.SetSelection(context.Background(), "u1", strptr("reading"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.FolderID == nil || *view.FolderID != "reading" {
		t.Errorf("selection id = %v, want reading", view.FolderID)
	}
	if view.FolderName != "Reading" {
		t.Errorf("selection name = %q, want Reading", view.FolderName)
	}

	if _, err := svc.SetSelection(context.Background(), "u1", strptr("ghost")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestSelectionResolvesStaleName(t *testing.T) {
	folderRepo, _, _, svc := newBookmarkFixture()

	if _, err := svc.SetSelection(context.Background(), "u1", strptr("reading")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The folder disappears out from under the cached selection, as when
	// another client deletes it.
	delete(folderRepo.folders, "reading")

	view, err := svc.Selection(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.FolderName != foldertree.UnknownName {
		t.Errorf("stale selection name = %q, want %q", view.FolderName, foldertree.UnknownName)
	}
}
