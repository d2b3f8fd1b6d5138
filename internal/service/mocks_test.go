package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"mindnotes/internal/domain"
	"mindnotes/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strptr(s string) *string { return &s }

// callLog records repository calls across fakes so tests can assert the
// delete cascade's step ordering.
type callLog struct {
	calls []string
}

func (l *callLog) record(name string) {
	l.calls = append(l.calls, name)
}

type fakeFolderRepo struct {
	log     *callLog
	folders map[string]models.Folder
	errs    map[string]error // method name -> injected failure
	nextID  int
}

func newFakeFolderRepo(log *callLog) *fakeFolderRepo {
	return &fakeFolderRepo{
		log:     log,
		folders: make(map[string]models.Folder),
		errs:    make(map[string]error),
	}
}

func (r *fakeFolderRepo) add(id, name string, parentID *string) {
	r.folders[id] = models.Folder{ID: id, UserID: "u1", Name: name, ParentID: parentID}
}

func (r *fakeFolderRepo) List(ctx context.Context, userID string) ([]models.Folder, error) {
	r.log.record("folder.List")
	if err := r.errs["List"]; err != nil {
		return nil, err
	}
	out := make([]models.Folder, 0, len(r.folders))
	for _, f := range r.folders {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	r.log.record("folder.GetByID")
	if err := r.errs["GetByID"]; err != nil {
		return nil, err
	}
	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}
	return &f, nil
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.log.record("folder.Create")
	if err := r.errs["Create"]; err != nil {
		return err
	}
	r.nextID++
	folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	r.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.log.record("folder.Update")
	if err := r.errs["Update"]; err != nil {
		return err
	}
	if _, ok := r.folders[folder.ID]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folder.ID)}
	}
	r.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) UpdateParentForChildren(ctx context.Context, userID, oldParent string, newParent *string) error {
	r.log.record("folder.UpdateParentForChildren")
	if err := r.errs["UpdateParentForChildren"]; err != nil {
		return err
	}
	for id, f := range r.folders {
		if f.UserID == userID && f.ParentID != nil && *f.ParentID == oldParent {
			f.ParentID = newParent
			r.folders[id] = f
		}
	}
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	r.log.record("folder.Delete")
	if err := r.errs["Delete"]; err != nil {
		return err
	}
	if _, ok := r.folders[id]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}
	delete(r.folders, id)
	return nil
}

type fakeBookmarkRepo struct {
	log       *callLog
	bookmarks map[string]models.Bookmark
	errs      map[string]error
	nextID    int
}

func newFakeBookmarkRepo(log *callLog) *fakeBookmarkRepo {
	return &fakeBookmarkRepo{
		log:       log,
		bookmarks: make(map[string]models.Bookmark),
		errs:      make(map[string]error),
	}
}

func (r *fakeBookmarkRepo) add(id string, folderID *string) {
	r.bookmarks[id] = models.Bookmark{ID: id, UserID: "u1", URL: "https://example.com", FolderID: folderID}
}

func (r *fakeBookmarkRepo) List(ctx context.Context, userID string, folderID *string) ([]models.Bookmark, error) {
	r.log.record("bookmark.List")
	if err := r.errs["List"]; err != nil {
		return nil, err
	}
	out := make([]models.Bookmark, 0, len(r.bookmarks))
	for _, b := range r.bookmarks {
		if b.UserID != userID {
			continue
		}
		if folderID != nil && (b.FolderID == nil || *b.FolderID != *folderID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookmarkRepo) GetByID(ctx context.Context, id, userID string) (*models.Bookmark, error) {
	r.log.record("bookmark.GetByID")
	if err := r.errs["GetByID"]; err != nil {
		return nil, err
	}
	b, ok := r.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("bookmark %s not found", id)}
	}
	return &b, nil
}

func (r *fakeBookmarkRepo) Create(ctx context.Context, bookmark *models.Bookmark) error {
	r.log.record("bookmark.Create")
	if err := r.errs["Create"]; err != nil {
		return err
	}
	r.nextID++
	bookmark.ID = fmt.Sprintf("bookmark-%d", r.nextID)
	r.bookmarks[bookmark.ID] = *bookmark
	return nil
}

func (r *fakeBookmarkRepo) Update(ctx context.Context, bookmark *models.Bookmark) error {
	r.log.record("bookmark.Update")
	if err := r.errs["Update"]; err != nil {
		return err
	}
	if _, ok := r.bookmarks[bookmark.ID]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("bookmark %s not found", bookmark.ID)}
	}
	r.bookmarks[bookmark.ID] = *bookmark
	return nil
}

func (r *fakeBookmarkRepo) ClearFolderForAll(ctx context.Context, userID, folderID string) error {
	r.log.record("bookmark.ClearFolderForAll")
	if err := r.errs["ClearFolderForAll"]; err != nil {
		return err
	}
	for id, b := range r.bookmarks {
		if b.UserID == userID && b.FolderID != nil && *b.FolderID == folderID {
			b.FolderID = nil
			r.bookmarks[id] = b
		}
	}
	return nil
}

func (r *fakeBookmarkRepo) Delete(ctx context.Context, id, userID string) error {
	r.log.record("bookmark.Delete")
	if err := r.errs["Delete"]; err != nil {
		return err
	}
	if _, ok := r.bookmarks[id]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("bookmark %s not found", id)}
	}
	delete(r.bookmarks, id)
	return nil
}

type fakeNoteRepo struct {
	notes  map[string]models.Note
	errs   map[string]error
	nextID int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{
		notes: make(map[string]models.Note),
		errs:  make(map[string]error),
	}
}

func (r *fakeNoteRepo) List(ctx context.Context, userID string, archived *bool) ([]models.Note, error) {
	if err := r.errs["List"]; err != nil {
		return nil, err
	}
	out := make([]models.Note, 0, len(r.notes))
	for _, n := range r.notes {
		if n.UserID != userID {
			continue
		}
		if archived != nil && n.IsArchived != *archived {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	if err := r.errs["GetByID"]; err != nil {
		return nil, err
	}
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("note %s not found", id)}
	}
	return &n, nil
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *models.Note) error {
	if err := r.errs["Create"]; err != nil {
		return err
	}
	r.nextID++
	note.ID = fmt.Sprintf("note-%d", r.nextID)
	r.notes[note.ID] = *note
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *models.Note) error {
	if err := r.errs["Update"]; err != nil {
		return err
	}
	if _, ok := r.notes[note.ID]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("note %s not found", note.ID)}
	}
	r.notes[note.ID] = *note
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id, userID string) error {
	if err := r.errs["Delete"]; err != nil {
		return err
	}
	if _, ok := r.notes[id]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("note %s not found", id)}
	}
	delete(r.notes, id)
	return nil
}

// fakeSummarizer lets tests drive the generate-or-fail branch.
type fakeSummarizer struct {
	summary string
	err     error
}

func (s *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.summary, s.err
}
