// Package session owns the client's authenticated identity.
//
// A Session moves through Uninitialized -> Hydrating -> {Anonymous,
// Authenticated}. It restores the identity and bearer credential from the
// local database on start-up (Hydrate), replaces them on Register/Login,
// drops them on Logout, and keeps the persisted copy and the API client's
// authorization slot in step with the in-memory state: a reader never sees
// a new identity while the previous credential is still bound.
//
// Readers take immutable State snapshots; IsAuthenticated and IsAdmin are
// computed from the snapshot on every call. Snapshots are pushed to
// subscribers (Subscribe) and the session itself is handed down the call
// tree through a context (WithSession, MustFromContext).
package session
