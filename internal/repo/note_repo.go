package repo

import (
	"context"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/afternote/internal/db"
	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

var noteColumns = []string{"id", "user_id", "folder_id", "title", "content", "summary", "tags", "key_concepts", "ctime", "mtime"}

type NoteRepo struct {
	base
}

func NewNoteRepo(h *db.Handle) *NoteRepo {
	return &NoteRepo{base: newBase(h)}
}

func (r *NoteRepo) Create(ctx context.Context, note *model.Note) error {
	data := map[string]interface{}{
		"id":        note.ID,
		"user_id":   note.UserID,
		"folder_id": note.FolderID,
		"title":     note.Title,
		"content":   note.Content,
		"ctime":     note.Ctime,
		"mtime":     note.Mtime,
	}
	if err := encodeEnrichment(note.Enrichment, data); err != nil {
		return err
	}
	return r.insert(ctx, "notes", data)
}

// Update writes title, content and folder linkage. Enrichment columns are
// written in the same statement only when withEnrichment is set.
func (r *NoteRepo) Update(ctx context.Context, note *model.Note, withEnrichment bool) error {
	where := map[string]interface{}{
		"id":      note.ID,
		"user_id": note.UserID,
	}
	update := map[string]interface{}{
		"title":     note.Title,
		"content":   note.Content,
		"folder_id": note.FolderID,
		"mtime":     note.Mtime,
	}
	if withEnrichment {
		if err := encodeEnrichment(note.Enrichment, update); err != nil {
			return err
		}
	}
	return r.update(ctx, "notes", where, update)
}

func (r *NoteRepo) GetByID(ctx context.Context, userID, noteID string) (*model.Note, error) {
	where := map[string]interface{}{
		"id":      noteID,
		"user_id": userID,
	}
	notes, err := r.selectNotes(ctx, where)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &notes[0], nil
}

func (r *NoteRepo) List(ctx context.Context, userID, folderID string, limit, offset uint) ([]model.Note, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "mtime desc",
	}
	if folderID != "" {
		where["folder_id"] = folderID
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	return r.selectNotes(ctx, where)
}

func (r *NoteRepo) Delete(ctx context.Context, userID, noteID string) error {
	return r.delete(ctx, "notes", map[string]interface{}{
		"id":      noteID,
		"user_id": userID,
	})
}

func (r *NoteRepo) DetachFolder(ctx context.Context, userID, folderID string, mtime int64) error {
	return r.detachFolder(ctx, "notes", "folder_id", userID, folderID, mtime)
}

func (r *NoteRepo) selectNotes(ctx context.Context, where map[string]interface{}) ([]model.Note, error) {
	sqlStr, args, err := builder.BuildSelect("notes", where, noteColumns)
	if err != nil {
		return nil, err
	}
	rows, err := r.query(ctx, sqlStr, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	notes := make([]model.Note, 0)
	for rows.Next() {
		var note model.Note
		var enr enrichmentColumns
		if err := rows.Scan(&note.ID, &note.UserID, &note.FolderID, &note.Title, &note.Content,
			&enr.summary, &enr.tags, &enr.keyConcepts, &note.Ctime, &note.Mtime); err != nil {
			return nil, err
		}
		if err := enr.decode(&note.Enrichment); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
