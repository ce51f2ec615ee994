package domain

import "errors"

// Error taxonomy shared by the resolution and pricing services.
// Callers branch with errors.Is; everything else wraps one of these.
var (
	// ErrInvalidInput marks empty/malformed addresses and out-of-range
	// coordinates. Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited marks a local admission denial for an outbound
	// provider call.
	ErrRateLimited = errors.New("rate limited")

	// ErrProvider marks a failed or empty response from the mapping
	// provider.
	ErrProvider = errors.New("provider error")
)
