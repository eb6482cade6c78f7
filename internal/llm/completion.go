package llm

import "net/http"

// Normalized stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopError     = "error"
)

// completion is what an adapter pulls out of its SDK response before the
// shared post-processing in finish.
type completion struct {
	text  string
	model string
	stop  string
	usage Usage
}

// finish validates a schema completion and fills the Response. For schema
// requests Text becomes the bare JSON document without a code fence.
func finish(req Request, c completion) (*Response, error) {
	text, err := ValidateJSON(req.Schema, c.text)
	if err != nil {
		return nil, err
	}
	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}
	if c.stop == "" {
		c.stop = StopEnd
	}
	return &Response{
		Text:       text,
		Usage:      c.usage,
		Model:      c.model,
		StopReason: c.stop,
	}, nil
}

// classifyStatus wraps an SDK error by the HTTP status it carried. Only 429
// is distinguished; everything else means the service could not answer.
func classifyStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a short alias to a provider model ID. Unknown names are
// passed through so full IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
