package correlation

import "context"

// Unknown is reported by [IDFromContext] when no ID was attached.
const Unknown = "unknown"

type contextKey struct{}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the correlation ID stored in ctx.
// ok is false when ctx is nil or carries no ID.
func FromContext(ctx context.Context) (id string, ok bool) {
	if ctx == nil {
		return "", false
	}
	id, ok = ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// IDFromContext is like [FromContext] but returns [Unknown] when no ID is
// present.
func IDFromContext(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id
	}
	return Unknown
}
