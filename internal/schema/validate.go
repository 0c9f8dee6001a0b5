package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// validate is shared for format checks; validator.Validate is safe for concurrent use.
var validate = validator.New()

// Violation is a single constraint failure at a JSON path.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + " " + v.Message
}

// ValidationError collects every violation found in one value.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// Validate checks a JSON-shaped value (the result of decoding JSON into any) against
// the schema. It returns nil or a *ValidationError listing every violation.
func (s *Schema) Validate(value any) error {
	var violations []Violation
	s.check("", value, &violations)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func (s *Schema) check(path string, value any, out *[]Violation) {
	fail := func(format string, args ...any) {
		*out = append(*out, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	switch s.Kind {
	case KindString:
		str, ok := value.(string)
		if !ok {
			fail("must be a string")
			return
		}
		n := utf8.RuneCountInString(str)
		if s.MinLength != nil && n < *s.MinLength {
			fail("must be at least %d characters, got %d", *s.MinLength, n)
		}
		if s.MaxLength != nil && n > *s.MaxLength {
			fail("must be at most %d characters, got %d", *s.MaxLength, n)
		}
		if s.NotBlank && strings.TrimSpace(str) == "" {
			fail("must not be blank")
		}
		if len(s.Enum) > 0 && !slices.Contains(s.Enum, str) {
			fail("must be one of [%s], got %q", strings.Join(s.Enum, ", "), str)
		}
		if s.Format == FormatEmail && validate.Var(str, "required,email") != nil {
			fail("must be a valid email address")
		}

	case KindInteger, KindNumber:
		num, ok := toFloat(value)
		if !ok {
			fail("must be a number")
			return
		}
		if s.Kind == KindInteger && num != math.Trunc(num) {
			fail("must be an integer")
		}
		if s.Minimum != nil && num < *s.Minimum {
			fail("must be at least %v", *s.Minimum)
		}
		if s.Maximum != nil && num > *s.Maximum {
			fail("must be at most %v", *s.Maximum)
		}

	case KindBoolean:
		if _, ok := value.(bool); !ok {
			fail("must be a boolean")
		}

	case KindArray:
		items, ok := value.([]any)
		if !ok {
			fail("must be an array")
			return
		}
		if s.MinItems != nil && len(items) < *s.MinItems {
			fail("must contain at least %d items, got %d", *s.MinItems, len(items))
		}
		if s.MaxItems != nil && len(items) > *s.MaxItems {
			fail("must contain at most %d items, got %d", *s.MaxItems, len(items))
		}
		if s.Items != nil {
			for i, item := range items {
				s.Items.check(fmt.Sprintf("%s[%d]", path, i), item, out)
			}
		}

	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			fail("must be an object")
			return
		}
		for _, f := range s.Fields {
			fieldPath := joinPath(path, f.Name)
			fv, present := obj[f.Name]
			if !present || isAbsent(fv, f.Required) {
				if f.Required {
					*out = append(*out, Violation{Path: fieldPath, Message: "is required"})
				}
				continue
			}
			f.Schema.check(fieldPath, fv, out)
		}

	default:
		fail("has unsupported schema kind %q", s.Kind)
	}
}

// ApplyDefaults fills absent optional fields that declare a Default, recursing into
// nested objects and arrays. Maps are modified in place; the value is returned for
// convenience.
func (s *Schema) ApplyDefaults(value any) any {
	switch s.Kind {
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return value
		}
		for _, f := range s.Fields {
			fv, present := obj[f.Name]
			if !present || fv == nil {
				if f.Schema.Default != nil {
					obj[f.Name] = f.Schema.Default
				}
				continue
			}
			obj[f.Name] = f.Schema.ApplyDefaults(fv)
		}
		return obj
	case KindArray:
		items, ok := value.([]any)
		if !ok || s.Items == nil {
			return value
		}
		for i := range items {
			items[i] = s.Items.ApplyDefaults(items[i])
		}
		return items
	default:
		return value
	}
}

// isAbsent treats null, and an empty string on an optional field, as not supplied.
func isAbsent(v any, required bool) bool {
	if v == nil {
		return true
	}
	if str, ok := v.(string); ok && str == "" && !required {
		return true
	}
	return false
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
