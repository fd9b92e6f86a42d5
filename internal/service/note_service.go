package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/model"
	"github.com/xxxsen/afternote/internal/pkg/timeutil"
	"github.com/xxxsen/afternote/internal/repo"
	"github.com/xxxsen/afternote/internal/textutil"
)

type NoteService struct {
	notes         *repo.NoteRepo
	folders       *repo.FolderRepo
	enricher      *enrich.Orchestrator
	maxInputChars int
}

func NewNoteService(notes *repo.NoteRepo, folders *repo.FolderRepo, enricher *enrich.Orchestrator, maxInputChars int) *NoteService {
	return &NoteService{notes: notes, folders: folders, enricher: enricher, maxInputChars: maxInputChars}
}

type NoteCreateInput struct {
	FolderID string
	Title    string
	Content  string
}

// NoteUpdateInput is a partial update; nil fields are left untouched.
type NoteUpdateInput struct {
	FolderID *string
	Title    *string
	Content  *string
}

// CanonicalText is the plain text enrichment runs over for a note body.
func CanonicalText(markdown string) string {
	return textutil.PlainText(markdown)
}

func (s *NoteService) Create(ctx context.Context, userID string, input NoteCreateInput) (*model.Note, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	title, err := trimmedRequired(input.Title)
	if err != nil {
		return nil, err
	}
	if err := ensureFolder(ctx, s.folders, userID, input.FolderID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	note := &model.Note{
		ID:       newID(),
		UserID:   userID,
		FolderID: input.FolderID,
		Title:    title,
		Content:  input.Content,
		Ctime:    now,
		Mtime:    now,
	}
	note.Enrichment = s.enricher.OnCreate(ctx, limitInput(CanonicalText(note.Content), s.maxInputChars))
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("note created", zap.String("note_id", note.ID), zap.String("user_id", userID))
	return note, nil
}

// Update re-runs enrichment only when the content is part of the change set,
// so a rename keeps the stored summary and tags.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, input NoteUpdateInput) (*model.Note, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	note, err := s.notes.GetByID(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		title, err := trimmedRequired(*input.Title)
		if err != nil {
			return nil, err
		}
		note.Title = title
	}
	if input.FolderID != nil {
		if err := ensureFolder(ctx, s.folders, userID, *input.FolderID); err != nil {
			return nil, err
		}
		note.FolderID = *input.FolderID
	}
	reenrich := input.Content != nil
	if reenrich {
		note.Content = *input.Content
		note.Enrichment = s.enricher.OnUpdate(ctx, limitInput(CanonicalText(note.Content), s.maxInputChars))
	}
	note.Mtime = timeutil.NowUnix()
	if err := s.notes.Update(ctx, note, reenrich); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Get(ctx context.Context, userID, noteID string) (*model.Note, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.notes.GetByID(ctx, userID, noteID)
}

func (s *NoteService) List(ctx context.Context, userID, folderID string, limit, offset uint) ([]model.Note, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.notes.List(ctx, userID, folderID, limit, offset)
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.notes.Delete(ctx, userID, noteID)
}
