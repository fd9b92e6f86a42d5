// Package prompt holds the fixed templates sent to the generation provider.
// Content is injected verbatim; length limits are the caller's concern.
package prompt

import "fmt"

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

var levelLeads = map[string]string{
	LevelBeginner:     "Explain like I'm 5 years old",
	LevelIntermediate: "Explain like I'm a college student",
	LevelAdvanced:     "Explain like I'm a graduate student",
}

func Summary(text string, maxLength int) string {
	return fmt.Sprintf(`Summarize the following text in %d characters or less.
Make it clear, concise, and student-friendly.
Output ONLY the summary text.

%s`, maxLength, text)
}

func KeyConcepts(text string) string {
	return fmt.Sprintf(`Extract the top 10 key concepts from this text.
Return only a JSON array of strings, no other text.

%s`, text)
}

func Flashcards(text string, count int) string {
	return fmt.Sprintf(`Create %d flashcards from this content.
Return as JSON array with objects having 'question' and 'answer' fields.

%s`, count, text)
}

func Quiz(text string, difficulty string, count int) string {
	return fmt.Sprintf(`Create a %s difficulty quiz with %d multiple choice questions from this content.
Return as JSON with structure:
{
  "questions": [
    {
      "question": "Question text",
      "options": ["A", "B", "C", "D"],
      "correct_answer": 0,
      "explanation": "Why this is correct"
    }
  ]
}

Content: %s`, difficulty, count, text)
}

func MindMap(text string) string {
	return fmt.Sprintf(`Create a mind map structure from this content. Return as JSON:
{
  "central_topic": "Main topic",
  "branches": [
    {
      "name": "Branch name",
      "children": [
        {"name": "Sub-concept 1"},
        {"name": "Sub-concept 2"}
      ]
    }
  ]
}

Content: %s`, text)
}

func DocumentQA(document string, question string) string {
	return fmt.Sprintf(`Based on this document content, answer the following question in a helpful, student-friendly way:

Document: %s

Question: %s

Answer:`, document, question)
}

// Explanation falls back to the intermediate lead for unknown levels.
func Explanation(concept string, level string) string {
	lead, ok := levelLeads[level]
	if !ok {
		lead = levelLeads[LevelIntermediate]
	}
	return fmt.Sprintf(`%s: %s

Make it engaging and easy to understand with examples.`, lead, concept)
}
