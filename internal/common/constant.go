// Package common contains shared constants and sentinel errors used across
// the sweetshop client packages.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer
// credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the credential inside AuthorizationHeaderName.
const BearerScheme = "Bearer"

// RequestIDHeaderName tags every outbound request with a unique id.
const RequestIDHeaderName = "X-Request-ID"

// Keys of the persisted session entries in the local metadata table.
const (
	TokenMetadataKey = "token"
	UserMetadataKey  = "user"
)

// CatalogMetadataKey holds the last catalog fetched from the API, served
// when the API cannot be reached.
const CatalogMetadataKey = "catalog"
