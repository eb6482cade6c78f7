package quizgen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/quiz"
)

// QuizSchema is the structured-output shape used when Config.Structured is
// set. Each question mirrors one block of the text format.
var QuizSchema = &llm.Schema{
	Name:        "tubequiz-questions",
	Description: "Multiple-choice questions about a video transcript",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"difficulty": map[string]any{"type": "string", "enum": []any{"medium", "hard"}},
						"question":   map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": 4,
							"maxItems": 4,
							"items":    map[string]any{"type": "string"},
						},
						"correct": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
					},
					"required": []any{"difficulty", "question", "options", "correct"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

type structuredQuiz struct {
	Questions []structuredQuestion `json:"questions"`
}

type structuredQuestion struct {
	Difficulty string   `json:"difficulty"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Correct    string   `json:"correct"`
}

// renderStructured validates a JSON completion and rewrites it as
// [Question_N] blocks so both output modes go through the same parser.
func renderStructured(raw string) (string, error) {
	doc, err := llm.ValidateJSON(QuizSchema, raw)
	if err != nil {
		return "", err
	}

	var sq structuredQuiz
	if err := json.Unmarshal([]byte(doc), &sq); err != nil {
		return "", fmt.Errorf("decode structured quiz: %w", err)
	}

	var b strings.Builder
	for i, q := range sq.Questions {
		fmt.Fprintf(&b, "[Question_%d]\n", i+1)
		fmt.Fprintf(&b, "Difficulty: %s\n", q.Difficulty)
		fmt.Fprintf(&b, "Question: %s\n", flatten(q.Question))
		b.WriteString("Options:\n")
		for j, opt := range q.Options {
			if j < len(quiz.Letters) {
				fmt.Fprintf(&b, "%s) %s\n", quiz.Letters[j], flatten(opt))
			}
		}
		fmt.Fprintf(&b, "Correct: %s\n\n", q.Correct)
	}
	return b.String(), nil
}

// labelRe matches text the tagged-block parser would read as structure.
var labelRe = regexp.MustCompile(`(?i)\[question_|correct:`)

// flatten puts a field on one line and defuses block labels inside it, so
// the rendered text parses back into the same question.
func flatten(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return labelRe.ReplaceAllStringFunc(s, func(m string) string {
		if m[0] == '[' {
			return "[" + m[1:len(m)-1] + " "
		}
		return m[:len(m)-1] + " -"
	})
}
