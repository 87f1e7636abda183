// Package cli provides the interactive sweetshop command-line client.
//
// NewApp wires configuration, the local database, the API client, the
// session and the catalog service. App.Run hydrates the session in the
// background and serves a REPL whose views mirror the storefront:
//
//	/           home
//	/sweets     catalog with search and category filter
//	/login      sign-in form (signed-out users only)
//	/register   sign-up form (signed-out users only)
//	/dashboard  account overview (signed-in users)
//	/admin      inventory management (admins)
//
// Every navigation goes through the guard package; redirects overwrite the
// current history entry so "back" never returns to a refused view.
package cli
