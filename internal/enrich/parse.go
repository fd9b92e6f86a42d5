package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xxxsen/afternote/internal/model"
)

var (
	errMissingQuestions = errors.New("response has no questions field")
	errWrongShape       = errors.New("response has the wrong top-level JSON type")
)

// cleanJSON strips markdown fences and cuts the payload down to the
// open..close pair so chatter around the JSON does not break decoding. The
// first bracket of the reply decides the top-level type; a reply that opens
// with the other kind is rejected rather than mined for a nested value.
func cleanJSON(output string, open, close byte) (string, error) {
	clean := strings.TrimSpace(output)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	start := strings.IndexAny(clean, "[{")
	if start < 0 {
		return clean, nil
	}
	if clean[start] != open {
		return "", errWrongShape
	}
	end := strings.LastIndexByte(clean, close)
	if end < start {
		return "", errWrongShape
	}
	return clean[start : end+1], nil
}

func parseConcepts(output string) ([]string, error) {
	clean, err := cleanJSON(output, '[', ']')
	if err != nil {
		return nil, fmt.Errorf("parse concepts: %w", err)
	}
	var items []string
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, fmt.Errorf("parse concepts: %w", err)
	}
	uniq := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		normalized := strings.TrimSpace(item)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, normalized)
	}
	return uniq, nil
}

func parseFlashcards(output string) ([]model.Flashcard, error) {
	clean, err := cleanJSON(output, '[', ']')
	if err != nil {
		return nil, fmt.Errorf("parse flashcards: %w", err)
	}
	var items []model.Flashcard
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, fmt.Errorf("parse flashcards: %w", err)
	}
	cards := make([]model.Flashcard, 0, len(items))
	for _, item := range items {
		item.Question = strings.TrimSpace(item.Question)
		item.Answer = strings.TrimSpace(item.Answer)
		if item.Question == "" || item.Answer == "" {
			continue
		}
		cards = append(cards, item)
	}
	return cards, nil
}

type rawQuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type rawQuiz struct {
	Questions *[]rawQuizQuestion `json:"questions"`
}

// parseQuiz keeps only questions whose correct answer indexes into options.
func parseQuiz(output string) (model.Quiz, error) {
	clean, err := cleanJSON(output, '{', '}')
	if err != nil {
		return model.Quiz{}, fmt.Errorf("parse quiz: %w", err)
	}
	var raw rawQuiz
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return model.Quiz{}, fmt.Errorf("parse quiz: %w", err)
	}
	if raw.Questions == nil {
		return model.Quiz{}, errMissingQuestions
	}
	quiz := model.Quiz{Questions: make([]model.QuizQuestion, 0, len(*raw.Questions))}
	for _, q := range *raw.Questions {
		if q.CorrectAnswer == nil || *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
			continue
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Question:      strings.TrimSpace(q.Question),
			Options:       q.Options,
			CorrectAnswer: *q.CorrectAnswer,
			Explanation:   strings.TrimSpace(q.Explanation),
		})
	}
	return quiz, nil
}

func parseMindMap(output string) (model.MindMapData, error) {
	clean, err := cleanJSON(output, '{', '}')
	if err != nil {
		return model.MindMapData{}, fmt.Errorf("parse mindmap: %w", err)
	}
	var data model.MindMapData
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		return model.MindMapData{}, fmt.Errorf("parse mindmap: %w", err)
	}
	data.CentralTopic = strings.TrimSpace(data.CentralTopic)
	if data.CentralTopic == "" {
		data.CentralTopic = mindMapFallbackTopic
	}
	if data.Branches == nil {
		data.Branches = []model.MindMapBranch{}
	}
	for i := range data.Branches {
		if data.Branches[i].Children == nil {
			data.Branches[i].Children = []model.MindMapLeaf{}
		}
	}
	return data, nil
}
