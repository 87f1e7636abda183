// Package client contains the storefront API client used by the CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Register,
//     Login and the sweets catalog calls.
//  2. A JSON-over-HTTP implementation (see HTTPClient) whose transport reads
//     the process-wide Authorization slot on every request, so the bearer
//     credential attached to a request is always the one current when the
//     request was issued.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *APIError carrying the server message. Common
// conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized.
//
// All calls accept context.Context and honor cancellation/timeouts.
package client
