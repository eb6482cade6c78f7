package quizgen

import "fmt"

const promptTemplate = `**ROLE**: Expert MCQ Generator
**TASK**: Create %d high-quality MCQs (%d medium, %d hard) from this text:
%s

**FORMAT RULES**:
[Question_X]
Difficulty: medium/hard
Question: Clear question text
Options:
A) Plausible option
B) Plausible option
C) Plausible option
D) Plausible option
Correct: Letter only

**QUALITY CHECKS**:
1. Questions must test understanding
2. Options must be distinct
3. Avoid trivial/obvious questions
4. Ensure single correct answer

Generate exactly %d questions following these rules:`

const structuredTemplate = `**ROLE**: Expert MCQ Generator
**TASK**: Create %d high-quality MCQs (%d medium, %d hard) from this text:
%s

**OUTPUT**: A JSON object {"questions": [...]} where each question has
"difficulty" ("medium" or "hard"), "question", "options" (exactly four
strings, in order A to D) and "correct" (the letter A, B, C or D).

**QUALITY CHECKS**:
1. Questions must test understanding
2. Options must be distinct
3. Avoid trivial/obvious questions
4. Ensure single correct answer

Return exactly %d questions and nothing but the JSON object.`

// BuildPrompt renders the generation prompt for a transcript.
func BuildPrompt(transcriptText string, cfg Config) string {
	medium, hard := split(cfg.QuestionCount)
	tmpl := promptTemplate
	if cfg.Structured {
		tmpl = structuredTemplate
	}
	return fmt.Sprintf(tmpl,
		cfg.QuestionCount, medium, hard,
		Excerpt(transcriptText, cfg.ExcerptChars),
		cfg.QuestionCount)
}

// Excerpt returns at most n characters of text, cut on a rune boundary.
// n <= 0 returns text unchanged.
func Excerpt(text string, n int) string {
	if n <= 0 {
		return text
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}

// split divides count questions into medium and hard in the 5:2 ratio used
// for the default of seven.
func split(count int) (medium, hard int) {
	hard = (count*2 + 3) / 7
	return count - hard, hard
}
