// Package common defines shared sentinel errors used across the server
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors (missing or malformed input).
	ErrorValidation = errors.New("validation error")

	// Policy errors. A link's access token is set at most once; any later
	// issuance attempt for the same email fails with ErrorAlreadyIssued.
	ErrorAlreadyIssued = errors.New("already issued")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
)
