package generation

import (
	"encoding/json"
	"fmt"

	"github.com/folioworks/folio-api/internal/schema"
)

// ValidateRequest checks req against its request schema before any provider call.
// The request is round-tripped through JSON so that schema defaults are applied; the
// normalized copy is returned. Violations are reported as ErrInvalidRequest.
func ValidateRequest[T any](req T, s *schema.Schema) (T, error) {
	var zero T

	raw, err := json.Marshal(req)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	value = s.ApplyDefaults(value)
	if err := s.Validate(value); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var out T
	if err := json.Unmarshal(normalized, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return out, nil
}
