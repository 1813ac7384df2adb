package analytics

import "errors"

// Sentinel kinds for analytics provider errors.
var (
	ErrNoBaseURL   = errors.New("analytics base URL not configured")
	ErrUnreachable = errors.New("analytics producer unreachable")
)
