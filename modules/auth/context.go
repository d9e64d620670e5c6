package auth

import "context"

// Identity is the minimal authenticated identity the session guard attaches
// to the request context for downstream handlers.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SessionInfo describes the resolved session. SID is the raw identifier
// from the cookie; it stays in the request context only and is never
// persisted or logged.
type SessionInfo struct {
	SID    string
	UserID int64
}

type identityContextKey struct{}

type sessionInfoContextKey struct{}

// WithIdentity adds the authenticated identity to the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext retrieves the authenticated identity from the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}

// WithSessionInfo adds the resolved session descriptor to the context.
func WithSessionInfo(ctx context.Context, info SessionInfo) context.Context {
	return context.WithValue(ctx, sessionInfoContextKey{}, info)
}

// SessionInfoFromContext retrieves the session descriptor from the context.
func SessionInfoFromContext(ctx context.Context) (SessionInfo, bool) {
	info, ok := ctx.Value(sessionInfoContextKey{}).(SessionInfo)
	return info, ok
}
