// Package common defines shared constants and sentinel errors used across
// the wardrobe client layers. Callers should use errors.Is to match these
// values; concrete errors (see client.APIError) wrap one of them.
package common

import "errors"

var (
	// Session is invalid or expired. Always clears the local identity.
	ErrUnauthorized = errors.New("unauthorized")

	// Input rejected on the client before any network call.
	ErrValidation = errors.New("validation error")

	// Non-2xx backend response without a more specific kind.
	ErrRequestFailed = errors.New("request failed")

	// No response at all (connection refused, DNS, reset...).
	ErrNetworkFailure = errors.New("network failure")

	// The request did not complete within the configured timeout.
	ErrNetworkTimeout = errors.New("network timeout")

	// One unit of a multi-step operation failed; the operation continued.
	ErrPartialFailure = errors.New("partial failure")

	// Store-level flow control.
	ErrNoIdentity = errors.New("not logged in")
	ErrBusy       = errors.New("operation already in progress")
)
