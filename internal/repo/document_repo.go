package repo

import (
	"context"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/afternote/internal/db"
	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

var documentColumns = []string{"id", "user_id", "folder_id", "title", "mime_type", "storage_key", "size", "extracted_text", "summary", "tags", "key_concepts", "ctime", "mtime"}

type DocumentRepo struct {
	base
}

func NewDocumentRepo(h *db.Handle) *DocumentRepo {
	return &DocumentRepo{base: newBase(h)}
}

func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	data := map[string]interface{}{
		"id":             doc.ID,
		"user_id":        doc.UserID,
		"folder_id":      doc.FolderID,
		"title":          doc.Title,
		"mime_type":      doc.MimeType,
		"storage_key":    doc.StorageKey,
		"size":           doc.Size,
		"extracted_text": doc.ExtractedText,
		"ctime":          doc.Ctime,
		"mtime":          doc.Mtime,
	}
	if err := encodeEnrichment(doc.Enrichment, data); err != nil {
		return err
	}
	return r.insert(ctx, "documents", data)
}

func (r *DocumentRepo) Update(ctx context.Context, doc *model.Document, withEnrichment bool) error {
	where := map[string]interface{}{
		"id":      doc.ID,
		"user_id": doc.UserID,
	}
	update := map[string]interface{}{
		"title":          doc.Title,
		"folder_id":      doc.FolderID,
		"extracted_text": doc.ExtractedText,
		"mtime":          doc.Mtime,
	}
	if withEnrichment {
		if err := encodeEnrichment(doc.Enrichment, update); err != nil {
			return err
		}
	}
	return r.update(ctx, "documents", where, update)
}

func (r *DocumentRepo) GetByID(ctx context.Context, userID, docID string) (*model.Document, error) {
	docs, err := r.selectDocuments(ctx, map[string]interface{}{
		"id":      docID,
		"user_id": userID,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &docs[0], nil
}

func (r *DocumentRepo) List(ctx context.Context, userID, folderID string, limit, offset uint) ([]model.Document, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	if folderID != "" {
		where["folder_id"] = folderID
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	return r.selectDocuments(ctx, where)
}

func (r *DocumentRepo) Delete(ctx context.Context, userID, docID string) error {
	return r.delete(ctx, "documents", map[string]interface{}{
		"id":      docID,
		"user_id": userID,
	})
}

func (r *DocumentRepo) DetachFolder(ctx context.Context, userID, folderID string, mtime int64) error {
	return r.detachFolder(ctx, "documents", "folder_id", userID, folderID, mtime)
}

func (r *DocumentRepo) selectDocuments(ctx context.Context, where map[string]interface{}) ([]model.Document, error) {
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	rows, err := r.query(ctx, sqlStr, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	docs := make([]model.Document, 0)
	for rows.Next() {
		var doc model.Document
		var enr enrichmentColumns
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.FolderID, &doc.Title, &doc.MimeType, &doc.StorageKey,
			&doc.Size, &doc.ExtractedText, &enr.summary, &enr.tags, &enr.keyConcepts, &doc.Ctime, &doc.Mtime); err != nil {
			return nil, err
		}
		if err := enr.decode(&doc.Enrichment); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
