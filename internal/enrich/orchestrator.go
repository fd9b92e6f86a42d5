package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xxxsen/afternote/internal/ai"
	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

// Orchestrator decides which stages run for a caller intent. It only ever
// computes values; persisting them is the caller's single write.
type Orchestrator struct {
	exec *Executor
}

func NewOrchestrator(gen ai.IGenerator) *Orchestrator {
	return &Orchestrator{exec: NewExecutor(gen)}
}

func (o *Orchestrator) Executor() *Executor {
	return o.exec
}

// OnCreate computes the enrichment bundle for freshly created content.
func (o *Orchestrator) OnCreate(ctx context.Context, content string) model.Enrichment {
	return o.enrich(ctx, content)
}

// OnUpdate recomputes the bundle in full after a content edit. The result
// replaces the stored fields, including when content became empty.
func (o *Orchestrator) OnUpdate(ctx context.Context, content string) model.Enrichment {
	return o.enrich(ctx, content)
}

func (o *Orchestrator) enrich(ctx context.Context, content string) model.Enrichment {
	var out model.Enrichment
	if strings.TrimSpace(content) == "" {
		return out
	}
	var (
		summary  Result[string]
		concepts Result[[]string]
		g        errgroup.Group
	)
	g.Go(func() error {
		start := time.Now()
		summary = o.exec.Summary(ctx, content, DefaultSummaryLength)
		logutil.GetLogger(ctx).Debug("summary stage finished", zap.Duration("cost", time.Since(start)), zap.Bool("fallback", summary.Fallback))
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		concepts = o.exec.KeyConcepts(ctx, content)
		logutil.GetLogger(ctx).Debug("key concepts stage finished", zap.Duration("cost", time.Since(start)), zap.Bool("fallback", concepts.Fallback))
		return nil
	})
	_ = g.Wait()

	s := summary.Value
	out.Summary = &s
	out.Tags = concepts.Value
	out.KeyConcepts = append([]string{}, concepts.Value...)
	return out
}

// OnDemand runs exactly one stage and returns its artifact. Only an unknown
// kind is reported as an error.
func (o *Orchestrator) OnDemand(ctx context.Context, kind Kind, content string, params Params) (interface{}, error) {
	switch kind {
	case KindSummary:
		return o.exec.Summary(ctx, content, params.MaxLength).Value, nil
	case KindKeyConcepts:
		return o.exec.KeyConcepts(ctx, content).Value, nil
	case KindFlashcards:
		return o.exec.Flashcards(ctx, content, params.Count).Value, nil
	case KindQuiz:
		return o.exec.Quiz(ctx, content, params.Difficulty, params.Count).Value, nil
	case KindMindMap:
		return o.exec.MindMap(ctx, content).Value, nil
	case KindDocumentQA:
		return o.exec.DocumentQA(ctx, content, params.Question).Value, nil
	case KindExplanation:
		return o.exec.Explanation(ctx, content, params.Level).Value, nil
	default:
		return nil, fmt.Errorf("unknown stage %q: %w", kind, appErr.ErrInvalid)
	}
}
