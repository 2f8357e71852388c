package advisor

import "errors"

var (
	// ErrDisabled indicates no API key is configured.
	ErrDisabled = errors.New("ai advisor disabled")

	// ErrUnavailable indicates the advisory endpoint is unreachable.
	ErrUnavailable = errors.New("advisory endpoint unavailable")

	// ErrTimeout indicates the advisory request exceeded its timeout.
	ErrTimeout = errors.New("advisory request timed out")

	// ErrBadCredentials indicates the endpoint rejected the API key.
	ErrBadCredentials = errors.New("advisory credentials rejected")

	// ErrRetryExhausted indicates all retry attempts have failed.
	ErrRetryExhausted = errors.New("advisory retry attempts exhausted")
)
