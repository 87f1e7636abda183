package session

import "errors"

var (
	// ErrStaleAttempt is returned by a register/login whose response arrived
	// after a newer attempt (or a logout) had started. Its result is dropped.
	ErrStaleAttempt = errors.New("superseded by a newer sign-in attempt")

	// ErrNotAuthenticated is returned by UpdateIdentity when nobody is signed in.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoSessionScope is the panic value of MustFromContext outside a scope.
	ErrNoSessionScope = errors.New("session must be used within a session scope")
)

// AuthError is a failed register/login. Its message is what the user sees:
// the server's message when there is one, a generic one otherwise.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }
