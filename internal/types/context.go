package types

import "context"

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
)

// SetRequestID returns a new context with the given request ID attached
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

// GetRequestID retrieves the request ID from the context, empty if not set
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}
