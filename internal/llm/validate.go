package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	compiledMu sync.Mutex
	compiled   = map[string]*jsonschema.Schema{}
)

// ValidateJSON checks raw against schema and returns the document with any
// markdown code fence removed. A nil schema accepts anything unchanged.
// Failures are *ErrInvalidResponse carrying the original content.
func ValidateJSON(schema *Schema, raw string) (string, error) {
	if schema == nil {
		return raw, nil
	}

	doc := StripFence(raw)
	var parsed any
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return "", &ErrInvalidResponse{
			Content: json.RawMessage(raw),
			Err:     fmt.Errorf("not JSON: %w", err),
		}
	}

	s, err := compile(schema)
	if err != nil {
		return "", &ErrInvalidResponse{
			Content: json.RawMessage(raw),
			Err:     fmt.Errorf("schema %q: %w", schema.Name, err),
		}
	}

	if err := s.Validate(parsed); err != nil {
		return "", &ErrInvalidResponse{
			Content: json.RawMessage(raw),
			Err:     fmt.Errorf("does not match %q: %w", schema.Name, err),
		}
	}
	return doc, nil
}

// StripFence removes a surrounding ```json ... ``` block, which local
// models tend to add even in JSON mode.
func StripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	} else {
		t = strings.TrimPrefix(t, "json")
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

// compile returns the compiled form of schema, keyed by name. Schemas with
// the same name must share a definition.
func compile(schema *Schema) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[schema.Name]; ok {
		return s, nil
	}

	// The compiler wants decoded JSON values ([]any, float64), not the Go
	// literals a Definition is usually written with.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "mem://" + schema.Name + ".json"
	if err := c.AddResource(url, def); err != nil {
		return nil, err
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled[schema.Name] = s
	return s, nil
}
