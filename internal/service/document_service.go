package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/extract"
	"github.com/xxxsen/afternote/internal/filestore"
	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
	"github.com/xxxsen/afternote/internal/pkg/timeutil"
	"github.com/xxxsen/afternote/internal/repo"
)

// allowedTypes maps every accepted declared content type to the extension of
// its storage key.
var allowedTypes = map[string]string{
	extract.MimePDF:  ".pdf",
	extract.MimeDOCX: ".docx",
	extract.MimePPT:  ".ppt",
	extract.MimePPTX: ".pptx",
	extract.MimeJPEG: ".jpg",
	extract.MimePNG:  ".png",
	extract.MimeText: ".txt",
}

// AllowedExtension reports the canonical extension for a declared type.
func AllowedExtension(declaredType string) (string, bool) {
	ext, ok := allowedTypes[normalizeType(declaredType)]
	return ext, ok
}

func normalizeType(declaredType string) string {
	if idx := strings.IndexByte(declaredType, ';'); idx >= 0 {
		declaredType = declaredType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(declaredType))
}

type DocumentService struct {
	docs          *repo.DocumentRepo
	folders       *repo.FolderRepo
	store         filestore.Store
	enricher      *enrich.Orchestrator
	maxInputChars int
}

func NewDocumentService(docs *repo.DocumentRepo, folders *repo.FolderRepo, store filestore.Store, enricher *enrich.Orchestrator, maxInputChars int) *DocumentService {
	return &DocumentService{docs: docs, folders: folders, store: store, enricher: enricher, maxInputChars: maxInputChars}
}

type UploadInput struct {
	FileName     string
	DeclaredType string
	FolderID     string
	Data         []byte
}

type DocumentUpdateInput struct {
	FolderID      *string
	Title         *string
	ExtractedText *string
}

// Upload validates the declared type before any side effect, stores the
// bytes under a fresh key, extracts text and enriches it once.
func (s *DocumentService) Upload(ctx context.Context, userID string, input UploadInput) (*model.Document, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	mimeType := normalizeType(input.DeclaredType)
	ext, ok := allowedTypes[mimeType]
	if !ok {
		return nil, appErr.ErrUnsupportedType
	}
	if err := ensureFolder(ctx, s.folders, userID, input.FolderID); err != nil {
		return nil, err
	}
	logger := logutil.GetLogger(ctx).With(zap.String("user_id", userID))

	key := newStorageKey(ext)
	size := int64(len(input.Data))
	sniffed := mimetype.Detect(input.Data)
	logger.Info("document upload received",
		zap.String("storage_key", key),
		zap.String("declared_type", mimeType),
		zap.String("sniffed_type", sniffed.String()),
		zap.Int64("size", size),
	)
	if err := s.store.Save(ctx, key, bytes.NewReader(input.Data), size); err != nil {
		return nil, err
	}

	text := s.extractText(ctx, mimeType, input.Data)
	now := timeutil.NowUnix()
	title := strings.TrimSpace(input.FileName)
	if title == "" {
		title = key
	}
	doc := &model.Document{
		ID:            newID(),
		UserID:        userID,
		FolderID:      input.FolderID,
		Title:         title,
		MimeType:      mimeType,
		StorageKey:    key,
		Size:          size,
		ExtractedText: text,
		Ctime:         now,
		Mtime:         now,
	}
	doc.Enrichment = s.enricher.OnCreate(ctx, limitInput(text, s.maxInputChars))
	if err := s.docs.Create(ctx, doc); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.Warn("remove orphan upload failed", zap.String("storage_key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return doc, nil
}

// extractText never returns an empty string; failed or empty extraction
// yields a placeholder naming the source type.
func (s *DocumentService) extractText(ctx context.Context, mimeType string, data []byte) string {
	text, err := extract.Text(ctx, mimeType, data)
	switch {
	case errors.Is(err, extract.ErrNoExtractor):
		logutil.GetLogger(ctx).Debug("no extractor for type", zap.String("mime_type", mimeType))
	case err != nil:
		logutil.GetLogger(ctx).Warn("text extraction failed", zap.String("mime_type", mimeType), zap.Error(err))
	}
	if strings.TrimSpace(text) == "" {
		return extract.Placeholder(mimeType)
	}
	return text
}

// Update re-enriches only when extracted text is replaced. Blank text is
// swapped for the type placeholder so a document never loses its content.
func (s *DocumentService) Update(ctx context.Context, userID, docID string, input DocumentUpdateInput) (*model.Document, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		title, err := trimmedRequired(*input.Title)
		if err != nil {
			return nil, err
		}
		doc.Title = title
	}
	if input.FolderID != nil {
		if err := ensureFolder(ctx, s.folders, userID, *input.FolderID); err != nil {
			return nil, err
		}
		doc.FolderID = *input.FolderID
	}
	reenrich := input.ExtractedText != nil
	if reenrich {
		doc.ExtractedText = *input.ExtractedText
		if strings.TrimSpace(doc.ExtractedText) == "" {
			doc.ExtractedText = extract.Placeholder(doc.MimeType)
		}
		doc.Enrichment = s.enricher.OnUpdate(ctx, limitInput(doc.ExtractedText, s.maxInputChars))
	}
	doc.Mtime = timeutil.NowUnix()
	if err := s.docs.Update(ctx, doc, reenrich); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, userID, docID string) (*model.Document, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.docs.GetByID(ctx, userID, docID)
}

func (s *DocumentService) List(ctx context.Context, userID, folderID string, limit, offset uint) ([]model.Document, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.docs.List(ctx, userID, folderID, limit, offset)
}

// Delete removes the record and then the stored bytes. A failure to remove
// the bytes is logged, not returned.
func (s *DocumentService) Delete(ctx context.Context, userID, docID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, userID, docID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
		logutil.GetLogger(ctx).Warn("remove stored document failed",
			zap.String("doc_id", docID), zap.String("storage_key", doc.StorageKey), zap.Error(err))
	}
	return nil
}

// OpenFile streams the original upload. The caller closes the reader.
func (s *DocumentService) OpenFile(ctx context.Context, userID, docID string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, userID, docID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, doc.StorageKey)
	if errors.Is(err, filestore.ErrNotExist) {
		return nil, nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}
