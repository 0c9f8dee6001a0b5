package generation

import (
	"errors"
	"fmt"
)

// Error taxonomy for generation calls. Callers dispatch with errors.Is.
var (
	// ErrInvalidRequest is returned when a request violates its schema. It is raised
	// before any provider call is issued.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrProviderUnavailable is returned for transport failures and non-2xx answers
	// from the provider.
	ErrProviderUnavailable = errors.New("generation provider unavailable")

	// ErrTimeout is returned when the provider does not answer within the configured wait.
	ErrTimeout = errors.New("generation timed out")

	// ErrMalformedResponse is returned when the provider output is empty, cannot be
	// decoded, or does not conform to the response schema.
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrContentBlocked is returned when the provider withholds output for safety reasons.
	ErrContentBlocked = fmt.Errorf("%w: content blocked by safety filters", ErrMalformedResponse)

	// ErrInvalidConfig is returned when the client configuration is invalid
	ErrInvalidConfig = errors.New("invalid generation configuration")
)
