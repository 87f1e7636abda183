// Package guard decides, from a session snapshot, whether a destination view
// may be shown.
package guard

import (
	"github.com/dmitrijs2005/sweetshop/internal/client/session"
)

// Policy is the gate attached to a route.
type Policy int

const (
	// Open routes render for everyone, even while the session is loading.
	Open Policy = iota
	// Public routes are for signed-out users only (sign-in, sign-up).
	Public
	// Protected routes need a signed-in user.
	Protected
	// Admin routes need a signed-in admin.
	Admin
)

func (p Policy) String() string {
	switch p {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Admin:
		return "admin"
	default:
		return "open"
	}
}

// Kind is what the caller should do with the requested view.
type Kind int

const (
	Render Kind = iota
	Placeholder
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Redirect:
		return "redirect"
	default:
		return "render"
	}
}

// Decision is the outcome of evaluating a policy. View is the view to show
// (the requested one for Render, the target for Redirect). Replace is set
// for every redirect: the current history entry is overwritten, not pushed.
type Decision struct {
	Kind    Kind
	View    string
	Replace bool
}

func render(view string) Decision   { return Decision{Kind: Render, View: view} }
func redirect(view string) Decision { return Decision{Kind: Redirect, View: view, Replace: true} }

// Decide evaluates policy against st for the requested view. While st is
// loading every gated policy answers Placeholder.
func Decide(policy Policy, st session.State, requested string) Decision {
	if policy == Open {
		return render(requested)
	}
	if st.Loading {
		return Decision{Kind: Placeholder, View: requested}
	}

	switch policy {
	case Public:
		if st.IsAuthenticated() {
			return redirect(LandingPath)
		}
	case Protected:
		if !st.IsAuthenticated() {
			return redirect(LoginPath)
		}
	case Admin:
		// signed-in users without the role land on the dashboard, not sign-in
		if !st.IsAdmin() {
			return redirect(LandingPath)
		}
	}
	return render(requested)
}
