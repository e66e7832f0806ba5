package llm

import "context"

// Purposes tag request events so usage can be broken down per feature.
const (
	PurposeQA      = "qa"
	PurposeExplain = "explain-word"
	PurposeProbe   = "connectivity"

	purposeUnknown = "unknown"
)

type purposeKey struct{}

func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return purposeUnknown
}
