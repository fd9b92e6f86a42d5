package service

import (
	"context"
	"strings"

	"github.com/xxxsen/afternote/internal/enrich"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
	"github.com/xxxsen/afternote/internal/repo"
)

type Source string

const (
	SourceNote     Source = "note"
	SourceDocument Source = "document"
)

// StudyService serves on-demand artifacts. Nothing it produces is written
// back to the source entity.
type StudyService struct {
	notes         *repo.NoteRepo
	docs          *repo.DocumentRepo
	enricher      *enrich.Orchestrator
	maxInputChars int
}

func NewStudyService(notes *repo.NoteRepo, docs *repo.DocumentRepo, enricher *enrich.Orchestrator, maxInputChars int) *StudyService {
	return &StudyService{notes: notes, docs: docs, enricher: enricher, maxInputChars: maxInputChars}
}

func (s *StudyService) sourceText(ctx context.Context, userID string, source Source, id string) (string, error) {
	switch source {
	case SourceNote:
		note, err := s.notes.GetByID(ctx, userID, id)
		if err != nil {
			return "", err
		}
		return CanonicalText(note.Content), nil
	case SourceDocument:
		doc, err := s.docs.GetByID(ctx, userID, id)
		if err != nil {
			return "", err
		}
		return doc.ExtractedText, nil
	default:
		return "", appErr.ErrInvalid
	}
}

// GenerateArtifact runs one stage over the text of a note or document.
func (s *StudyService) GenerateArtifact(ctx context.Context, userID string, source Source, id string, kind enrich.Kind, params enrich.Params) (interface{}, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	text, err := s.sourceText(ctx, userID, source, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, appErr.ErrContentUnavailable
	}
	if kind == enrich.KindDocumentQA && strings.TrimSpace(params.Question) == "" {
		return nil, appErr.ErrInvalid
	}
	return s.enricher.OnDemand(ctx, kind, limitInput(text, s.maxInputChars), params)
}

func (s *StudyService) Explain(ctx context.Context, userID, concept, level string) (string, error) {
	if err := requireUser(userID); err != nil {
		return "", err
	}
	concept, err := trimmedRequired(concept)
	if err != nil {
		return "", err
	}
	return s.enricher.Executor().Explanation(ctx, limitInput(concept, s.maxInputChars), level).Value, nil
}

// Chat answers from the supplied context when there is one, otherwise it
// explains the message at the requested level.
func (s *StudyService) Chat(ctx context.Context, userID, message, level, contextText string) (string, error) {
	if err := requireUser(userID); err != nil {
		return "", err
	}
	message, err := trimmedRequired(message)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(contextText) != "" {
		return s.enricher.Executor().DocumentQA(ctx, limitInput(contextText, s.maxInputChars), message).Value, nil
	}
	return s.enricher.Executor().Explanation(ctx, limitInput(message, s.maxInputChars), level).Value, nil
}
