package enrich

import (
	"strings"

	"github.com/xxxsen/afternote/internal/prompt"
)

type Kind string

const (
	KindSummary     Kind = "summary"
	KindKeyConcepts Kind = "key_concepts"
	KindFlashcards  Kind = "flashcards"
	KindQuiz        Kind = "quiz"
	KindMindMap     Kind = "mindmap"
	KindDocumentQA  Kind = "chat"
	KindExplanation Kind = "explanation"
)

const (
	DefaultSummaryLength  = 200
	DefaultFlashcardCount = 10
	DefaultQuizCount      = 5

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Params carries the optional knobs of the on-demand stages. Zero values
// select the stage defaults.
type Params struct {
	MaxLength  int    `json:"max_length"`
	Count      int    `json:"count"`
	Difficulty string `json:"difficulty"`
	Question   string `json:"question"`
	Level      string `json:"level"`
}

// Result is either the artifact parsed from a valid response or the stage's
// fixed fallback. Cause is set only for fallbacks.
type Result[T any] struct {
	Value    T
	Fallback bool
	Cause    error
}

func artifact[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fallback[T any](v T, cause error) Result[T] {
	return Result[T]{Value: v, Fallback: true, Cause: cause}
}

func NormalizeDifficulty(d string) string {
	switch d = strings.ToLower(strings.TrimSpace(d)); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	default:
		return DifficultyMedium
	}
}

func NormalizeLevel(level string) string {
	switch level = strings.ToLower(strings.TrimSpace(level)); level {
	case prompt.LevelBeginner, prompt.LevelIntermediate, prompt.LevelAdvanced:
		return level
	default:
		return prompt.LevelIntermediate
	}
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
