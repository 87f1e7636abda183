package session

import "github.com/dmitrijs2005/sweetshop/internal/client/models"

// Phase is the coarse lifecycle position of a Session.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseHydrating     Phase = "hydrating"
	PhaseAnonymous     Phase = "anonymous"
	PhaseAuthenticated Phase = "authenticated"
)

// State is an immutable snapshot of a Session.
//
// Identity is nil and Credential is "" when nobody is signed in; the two are
// always set and cleared together. Loading is true while the session is
// hydrating and while a register/login call is in flight. Error holds the
// message of the last failed register/login.
type State struct {
	Identity   *models.Identity
	Credential string
	Loading    bool
	Error      string

	// Version increases with every change; subscribers can use it to
	// discard snapshots they have already seen.
	Version uint64
}

func (s State) IsAuthenticated() bool {
	return s.Credential != "" && s.Identity != nil
}

func (s State) IsAdmin() bool {
	return s.IsAuthenticated() && s.Identity.IsAdmin()
}

// Role returns the identity's role, or "" when signed out.
func (s State) Role() models.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
