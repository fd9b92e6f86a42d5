package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/afternote/internal/ai"
	"github.com/xxxsen/afternote/internal/model"
	"github.com/xxxsen/afternote/internal/prompt"
)

const mindMapFallbackTopic = "Content"

// Executor runs single stages against the generation capability. Every
// failure is absorbed into the stage's fallback value; no method returns an
// error.
type Executor struct {
	gen ai.IGenerator
}

func NewExecutor(gen ai.IGenerator) *Executor {
	return &Executor{gen: gen}
}

func (e *Executor) generate(ctx context.Context, p string) (string, error) {
	if e.gen == nil {
		return "", ai.ErrUnavailable
	}
	out, err := e.gen.Generate(ctx, p)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ai.ErrEmptyResponse
	}
	return out, nil
}

func logFallback(ctx context.Context, kind Kind, err error) {
	logutil.GetLogger(ctx).Warn("enrichment stage fell back", zap.String("stage", string(kind)), zap.Error(err))
}

func (e *Executor) Summary(ctx context.Context, content string, maxLength int) Result[string] {
	out, err := e.generate(ctx, prompt.Summary(content, positiveOr(maxLength, DefaultSummaryLength)))
	if err != nil {
		logFallback(ctx, KindSummary, err)
		return fallback(fmt.Sprintf("Summary generation failed: %s", err.Error()), err)
	}
	return artifact(out)
}

func (e *Executor) KeyConcepts(ctx context.Context, content string) Result[[]string] {
	out, err := e.generate(ctx, prompt.KeyConcepts(content))
	if err == nil {
		var concepts []string
		if concepts, err = parseConcepts(out); err == nil {
			return artifact(concepts)
		}
	}
	logFallback(ctx, KindKeyConcepts, err)
	return fallback([]string{}, err)
}

func (e *Executor) Flashcards(ctx context.Context, content string, count int) Result[[]model.Flashcard] {
	out, err := e.generate(ctx, prompt.Flashcards(content, positiveOr(count, DefaultFlashcardCount)))
	if err == nil {
		var cards []model.Flashcard
		if cards, err = parseFlashcards(out); err == nil {
			return artifact(cards)
		}
	}
	logFallback(ctx, KindFlashcards, err)
	return fallback([]model.Flashcard{}, err)
}

func (e *Executor) Quiz(ctx context.Context, content string, difficulty string, count int) Result[model.Quiz] {
	p := prompt.Quiz(content, NormalizeDifficulty(difficulty), positiveOr(count, DefaultQuizCount))
	out, err := e.generate(ctx, p)
	if err == nil {
		var quiz model.Quiz
		if quiz, err = parseQuiz(out); err == nil {
			return artifact(quiz)
		}
	}
	logFallback(ctx, KindQuiz, err)
	return fallback(model.Quiz{Questions: []model.QuizQuestion{}}, err)
}

func (e *Executor) MindMap(ctx context.Context, content string) Result[model.MindMapData] {
	out, err := e.generate(ctx, prompt.MindMap(content))
	if err == nil {
		var data model.MindMapData
		if data, err = parseMindMap(out); err == nil {
			return artifact(data)
		}
	}
	logFallback(ctx, KindMindMap, err)
	return fallback(model.MindMapData{CentralTopic: mindMapFallbackTopic, Branches: []model.MindMapBranch{}}, err)
}

func (e *Executor) DocumentQA(ctx context.Context, content string, question string) Result[string] {
	out, err := e.generate(ctx, prompt.DocumentQA(content, question))
	if err != nil {
		logFallback(ctx, KindDocumentQA, err)
		return fallback(fmt.Sprintf("I couldn't process that question. Error: %s", err.Error()), err)
	}
	return artifact(out)
}

func (e *Executor) Explanation(ctx context.Context, concept string, level string) Result[string] {
	out, err := e.generate(ctx, prompt.Explanation(concept, NormalizeLevel(level)))
	if err != nil {
		logFallback(ctx, KindExplanation, err)
		return fallback(fmt.Sprintf("Explanation failed: %s", err.Error()), err)
	}
	return artifact(out)
}
