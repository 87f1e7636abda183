// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised before a request leaves the client.
	ErrorInvalidInput = errors.New("invalid input")

	// Catalog errors.
	ErrorOutOfStock = errors.New("out of stock")
)
