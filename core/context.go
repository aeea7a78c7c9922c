package core

import "context"

// Context keys for execution options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	skipHistoryKey    contextKey = "skipHistory"
)

// WithSuppressHeader sets whether headers should be suppressed in the context.
// Non-terminal callers such as the MCP and HTTP servers use it.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithSkipHistory marks a computation as read-only so no run is recorded.
func WithSkipHistory(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipHistoryKey, true)
}

// shouldSkipHistory returns whether history recording is disabled for this context
func shouldSkipHistory(ctx context.Context) bool {
	val := ctx.Value(skipHistoryKey)
	if val == nil {
		return false // default: record when a history backend is configured
	}
	skip, ok := val.(bool)
	return ok && skip
}
