package session

import "context"

type sessionContextKey struct{}

// WithSession adds a resolved session to the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext retrieves the resolved session from the context.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session)
	return sess, ok
}

// MustFromContext retrieves the session from the context or panics.
// Only for handlers mounted behind the authentication guard.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return sess
}
