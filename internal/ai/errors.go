package ai

import "errors"

// Failure taxonomy surfaced to callers. Auth and rate-limit failures are
// permanent; unavailability is transient and retried internally.
var (
	ErrEmptyInput          = errors.New("input text is empty")
	ErrProviderAuth        = errors.New("provider authentication failed")
	ErrRateLimited         = errors.New("provider rate limited")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrMalformedResponse   = errors.New("malformed provider response")
	ErrTimeout             = errors.New("provider request timed out")
)
