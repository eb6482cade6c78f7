package quiz

import (
	"regexp"
	"strings"
)

// BlockDelimiter marks the start of every question block in generated text.
const BlockDelimiter = "[Question_"

var (
	difficultyRe = regexp.MustCompile(`(?i)Difficulty:\s*([A-Za-z]*)`)
	questionRe   = regexp.MustCompile(`(?ims)Question:[ \t]*(.*?)^[ \t]*Options:`)
	optionsRe    = regexp.MustCompile(`(?ims)^[ \t]*Options:[ \t]*(.*?)^[ \t]*Correct:`)
	// A lettered option may sit anywhere on its line: "A) x", "(A) x",
	// "1. A) x". Upper-case E is kept so five-option blocks are caught.
	optionLineRe = regexp.MustCompile(`(?m)(?:^|[^A-Za-z0-9])([A-E]|[a-d])\)[ \t]*(.*?)[ \t]*$`)
	correctRe    = regexp.MustCompile(`(?i)Correct:\s*\(?([A-D])\b`)
)

// FieldStatus tags the outcome of extracting a single field.
type FieldStatus int

const (
	// StatusMatched means the field was present and well-formed.
	StatusMatched FieldStatus = iota
	// StatusDefaulted means the label was absent and the default applies.
	StatusDefaulted
	// StatusInvalid means the label was present with an unusable value.
	StatusInvalid
)

// DifficultyResult is the tagged outcome of difficulty extraction.
type DifficultyResult struct {
	Value  Difficulty
	Status FieldStatus
	Raw    string
}

// BlockResult is the outcome of parsing one candidate block. Exactly one of
// Record and Err is set.
type BlockResult struct {
	Index  int
	Record *QuestionRecord
	Err    *ParseError
}

// OK reports whether the block produced a record.
func (r BlockResult) OK() bool { return r.Err == nil && r.Record != nil }

// Parser turns generated quiz text into question records.
type Parser struct {
	// LenientDifficulty accepts blocks without a Difficulty label and
	// records them as Medium. When false such blocks are rejected.
	LenientDifficulty bool

	// Validators run in order on every extracted record; the first
	// failure rejects the block.
	Validators []Validator

	// Limit caps the number of records returned by Parse. Zero or anything
	// above MaxQuestions means MaxQuestions.
	Limit int
}

// DefaultParser is the strict parser used by Parse and ParseBlocks.
var DefaultParser = Parser{Validators: DefaultValidators()}

// Parse extracts at most MaxQuestions valid records from raw using the
// default parser. Malformed blocks are dropped.
func Parse(raw string) []QuestionRecord {
	return DefaultParser.Parse(raw)
}

// ParseBlocks returns the per-block results of the default parser.
func ParseBlocks(raw string) []BlockResult {
	return DefaultParser.ParseBlocks(raw)
}

// Parse returns the valid records found in raw, in block order, capped at
// the parser limit. It never fails; unusable input yields an empty slice.
func (p Parser) Parse(raw string) []QuestionRecord {
	return Records(p.ParseBlocks(raw), p.limit())
}

// ParseBlocks splits raw on BlockDelimiter and parses every block after the
// first delimiter. Text before the first delimiter is ignored.
func (p Parser) ParseBlocks(raw string) []BlockResult {
	chunks := strings.Split(normalize(raw), BlockDelimiter)
	if len(chunks) < 2 {
		return nil
	}
	chunks = chunks[1:]

	results := make([]BlockResult, 0, len(chunks))
	for i, chunk := range chunks {
		results = append(results, p.parseBlock(i, chunk))
	}
	return results
}

// Records keeps the successful results, in order, up to limit.
func Records(results []BlockResult, limit int) []QuestionRecord {
	out := make([]QuestionRecord, 0, min(len(results), limit))
	for _, r := range results {
		if len(out) == limit {
			break
		}
		if r.OK() {
			out = append(out, *r.Record)
		}
	}
	return out
}

// Failures returns only the rejected blocks.
func Failures(results []BlockResult) []*ParseError {
	var out []*ParseError
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r.Err)
		}
	}
	return out
}

func (p Parser) limit() int {
	if p.Limit > 0 && p.Limit < MaxQuestions {
		return p.Limit
	}
	return MaxQuestions
}

func (p Parser) parseBlock(index int, block string) BlockResult {
	fail := func(field, format string, args ...any) BlockResult {
		return BlockResult{Index: index, Err: newParseError(index, field, format, args...)}
	}

	diff := ExtractDifficulty(block)
	switch diff.Status {
	case StatusInvalid:
		return fail(FieldDifficulty, "unrecognized difficulty %q", diff.Raw)
	case StatusDefaulted:
		if !p.LenientDifficulty {
			return fail(FieldDifficulty, "missing Difficulty label")
		}
	}

	m := questionRe.FindStringSubmatch(block)
	if m == nil {
		return fail(FieldQuestion, "no Question section before Options")
	}
	prompt := strings.TrimSpace(m[1])

	options, reason := extractOptions(block)
	if reason != "" {
		return fail(FieldOptions, "%s", reason)
	}

	c := correctRe.FindStringSubmatch(block)
	if c == nil {
		return fail(FieldCorrect, "no Correct letter A-D")
	}

	rec := &QuestionRecord{
		Difficulty: diff.Value,
		Prompt:     prompt,
		Options:    options,
		Correct:    Letter(strings.ToUpper(c[1])),
	}

	for _, v := range p.Validators {
		if verr := v.Validate(rec); verr != nil {
			verr.Block = index
			return BlockResult{Index: index, Err: verr}
		}
	}

	return BlockResult{Index: index, Record: rec}
}

// ExtractDifficulty finds the Difficulty label in block. A missing label
// yields StatusDefaulted with Medium; a label with any value other than
// medium or hard (case-insensitive) yields StatusInvalid.
func ExtractDifficulty(block string) DifficultyResult {
	m := difficultyRe.FindStringSubmatch(block)
	if m == nil {
		return DifficultyResult{Value: DifficultyMedium, Status: StatusDefaulted}
	}
	switch strings.ToLower(m[1]) {
	case "medium":
		return DifficultyResult{Value: DifficultyMedium, Status: StatusMatched, Raw: m[1]}
	case "hard":
		return DifficultyResult{Value: DifficultyHard, Status: StatusMatched, Raw: m[1]}
	}
	return DifficultyResult{Status: StatusInvalid, Raw: m[1]}
}

// extractOptions reads the lettered lines between Options: and Correct:.
// Lines without a lettered option are ignored. It returns a non-empty
// reason when the section is missing, an E option appears or a letter
// repeats.
func extractOptions(block string) (map[Letter]string, string) {
	m := optionsRe.FindStringSubmatch(block)
	if m == nil {
		return nil, "no Options section before Correct"
	}

	options := make(map[Letter]string, len(Letters))
	for _, line := range optionLineRe.FindAllStringSubmatch(m[1], -1) {
		l := Letter(strings.ToUpper(line[1]))
		if !l.Valid() {
			return nil, "unexpected option letter " + string(l)
		}
		if _, dup := options[l]; dup {
			return nil, "duplicate option " + string(l)
		}
		options[l] = line[2]
	}
	return options, ""
}

// normalize unifies line endings and drops markdown bold markers that
// models like to wrap around labels.
func normalize(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.ReplaceAll(raw, "**", "")
}
