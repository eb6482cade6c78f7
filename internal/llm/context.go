package llm

import "context"

// PurposeQuizGen labels quiz generation calls in the audit log.
const PurposeQuizGen = "quiz-gen"

type purposeKey struct{}

// WithPurpose tags ctx so LoggingProvider can record why a call was made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
