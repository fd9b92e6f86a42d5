package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

func TestUploadEveryAllowedTypeHasText(t *testing.T) {
	env := newTestEnv(t, newStageGen(nil))
	ctx := context.Background()
	for mimeType, ext := range allowedTypes {
		doc, err := env.documents.Upload(ctx, testUser, UploadInput{FileName: "f" + ext, DeclaredType: mimeType, Data: []byte{0x1, 0x2}})
		require.NoError(t, err, mimeType)
		require.NotEmpty(t, strings.TrimSpace(doc.ExtractedText), mimeType)
		require.True(t, strings.HasSuffix(doc.StorageKey, ext), mimeType)
		require.Equal(t, mimeType, doc.MimeType)
	}
}

func TestUploadPlainTextIsEnrichedOnce(t *testing.T) {
	gen := newStageGen(map[string]string{
		markSummary:  "Cells summary.",
		markConcepts: `["cell"]`,
	})
	env := newTestEnv(t, gen)
	ctx := context.Background()

	doc, err := env.documents.Upload(ctx, testUser, UploadInput{FileName: "cells.txt", DeclaredType: "text/plain; charset=utf-8", Data: []byte("Cells are the unit of life.")})
	require.NoError(t, err)
	require.Equal(t, "Cells are the unit of life.", doc.ExtractedText)
	require.Equal(t, "Cells summary.", *doc.Summary)
	require.Equal(t, []string{"cell"}, doc.Tags)
	require.Equal(t, []string{"cell"}, doc.KeyConcepts)
	require.Equal(t, 2, gen.calls())
	require.Equal(t, 1, env.store.saveCount())

	doc2, err := env.documents.Upload(ctx, testUser, UploadInput{FileName: "cells.txt", DeclaredType: "text/plain", Data: []byte("Cells are the unit of life.")})
	require.NoError(t, err)
	require.NotEqual(t, doc.StorageKey, doc2.StorageKey)
	require.NotEqual(t, doc.ID, doc2.ID)

	_, rc, err := env.documents.OpenFile(ctx, testUser, doc.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	require.Equal(t, "Cells are the unit of life.", string(data))
}

func TestUploadEmptyTextGetsPlaceholder(t *testing.T) {
	env := newTestEnv(t, newStageGen(nil))
	doc, err := env.documents.Upload(context.Background(), testUser, UploadInput{FileName: "empty.txt", DeclaredType: "text/plain", Data: []byte("  ")})
	require.NoError(t, err)
	require.Equal(t, "Extracted text from text/plain file (placeholder implementation)", doc.ExtractedText)
	require.NotNil(t, doc.Summary)
}

func TestUploadRejectsUnsupportedTypeWithoutSideEffects(t *testing.T) {
	gen := newStageGen(nil)
	env := newTestEnv(t, gen)
	ctx := context.Background()

	_, err := env.documents.Upload(ctx, testUser, UploadInput{FileName: "a.zip", DeclaredType: "application/zip", Data: []byte("PK")})
	require.ErrorIs(t, err, appErr.ErrUnsupportedType)
	require.Equal(t, 0, env.store.saveCount())
	require.Equal(t, 0, gen.calls())
	docs, err := env.documents.List(ctx, testUser, "", 0, 0)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestUploadUnknownFolder(t *testing.T) {
	env := newTestEnv(t, newStageGen(nil))
	_, err := env.documents.Upload(context.Background(), testUser, UploadInput{DeclaredType: "text/plain", FolderID: "nope", Data: []byte("x")})
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.Equal(t, 0, env.store.saveCount())
}

func TestDocumentUpdateAndDelete(t *testing.T) {
	gen := newStageGen(map[string]string{markSummary: "v1", markConcepts: `["a"]`})
	env := newTestEnv(t, gen)
	ctx := context.Background()
	doc, err := env.documents.Upload(ctx, testUser, UploadInput{FileName: "n.txt", DeclaredType: "text/plain", Data: []byte("old")})
	require.NoError(t, err)

	renamed, err := env.documents.Update(ctx, testUser, doc.ID, DocumentUpdateInput{Title: strPtr("renamed.txt")})
	require.NoError(t, err)
	require.Equal(t, "v1", *renamed.Summary)

	gen.replies = map[string]string{markSummary: "v2", markConcepts: `["b"]`}
	edited, err := env.documents.Update(ctx, testUser, doc.ID, DocumentUpdateInput{ExtractedText: strPtr("corrected transcription")})
	require.NoError(t, err)
	require.Equal(t, "v2", *edited.Summary)
	require.Equal(t, []string{"b"}, edited.KeyConcepts)

	gen.replies = map[string]string{markSummary: "v3", markConcepts: `["c"]`}
	blanked, err := env.documents.Update(ctx, testUser, doc.ID, DocumentUpdateInput{ExtractedText: strPtr("  \n ")})
	require.NoError(t, err)
	require.Equal(t, "Extracted text from text/plain file (placeholder implementation)", blanked.ExtractedText)
	require.Equal(t, "v3", *blanked.Summary)
	stored, err := env.documents.Get(ctx, testUser, doc.ID)
	require.NoError(t, err)
	require.Equal(t, blanked.ExtractedText, stored.ExtractedText)

	require.NoError(t, env.documents.Delete(ctx, testUser, doc.ID))
	_, _, err = env.documents.OpenFile(ctx, testUser, doc.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.ErrorIs(t, env.documents.Delete(ctx, testUser, doc.ID), appErr.ErrNotFound)
}

func TestGenerateArtifactFromDocument(t *testing.T) {
	gen := newStageGen(map[string]string{
		markSummary:  "s",
		markConcepts: "[]",
		markFlash:    "I cannot produce JSON today.",
		markQuiz:     `{"questions":[{"question":"q","options":["a","b"],"correct_answer":1,"explanation":"e"}]}`,
		markQA:       "Because of ATP.",
	})
	env := newTestEnv(t, gen)
	ctx := context.Background()
	doc, err := env.documents.Upload(ctx, testUser, UploadInput{FileName: "c.txt", DeclaredType: "text/plain", Data: []byte("Cells.")})
	require.NoError(t, err)

	cards, err := env.study.GenerateArtifact(ctx, testUser, SourceDocument, doc.ID, enrich.KindFlashcards, enrich.Params{Count: 3})
	require.NoError(t, err)
	require.Equal(t, []model.Flashcard{}, cards)
	require.Contains(t, gen.lastPrompt(), "Create 3 flashcards")

	quiz, err := env.study.GenerateArtifact(ctx, testUser, SourceDocument, doc.ID, enrich.KindQuiz, enrich.Params{})
	require.NoError(t, err)
	require.Len(t, quiz.(model.Quiz).Questions, 1)

	answer, err := env.study.GenerateArtifact(ctx, testUser, SourceDocument, doc.ID, enrich.KindDocumentQA, enrich.Params{Question: "why?"})
	require.NoError(t, err)
	require.Equal(t, "Because of ATP.", answer)

	_, err = env.study.GenerateArtifact(ctx, testUser, SourceDocument, doc.ID, enrich.KindDocumentQA, enrich.Params{})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	stored, err := env.documents.Get(ctx, testUser, doc.ID)
	require.NoError(t, err)
	require.Equal(t, "s", *stored.Summary)

	_, err = env.study.GenerateArtifact(ctx, testUser, SourceDocument, "missing", enrich.KindQuiz, enrich.Params{})
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestGenerateArtifactContentUnavailable(t *testing.T) {
	gen := newStageGen(nil)
	env := newTestEnv(t, gen)
	ctx := context.Background()
	calls := gen.calls()

	note, err := env.notes.Create(ctx, testUser, NoteCreateInput{Title: "empty"})
	require.NoError(t, err)
	_, err = env.study.GenerateArtifact(ctx, testUser, SourceNote, note.ID, enrich.KindMindMap, enrich.Params{})
	require.ErrorIs(t, err, appErr.ErrContentUnavailable)
	require.Equal(t, calls, gen.calls())
}
