package session

import "context"

type ctxKey struct{}

// WithSession returns a child context through which s is reachable.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session installed by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// MustFromContext is FromContext for code that cannot run without a
// session. It panics with ErrNoSessionScope outside a WithSession scope.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoSessionScope)
	}
	return s
}
