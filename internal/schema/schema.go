// Package schema describes the shape of generation requests and responses as plain
// data (field name, type, constraints) and checks JSON-shaped values against those
// descriptions.
//
// A Schema is deliberately independent of any provider SDK: the same descriptor is
// used to validate caller input before a generation call, to validate untrusted model
// output after it, and is translated by provider adapters into whatever output-schema
// binding their API understands.
package schema

// Kind is the JSON type a Schema accepts.
type Kind string

// Supported kinds.
const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Format is a semantic string format checked in addition to length and enum rules.
type Format string

// FormatEmail requires the string to be a syntactically valid email address.
const FormatEmail Format = "email"

// Schema describes one JSON value. Constraint pointers left nil are not enforced.
type Schema struct {
	Kind        Kind
	Description string

	// String constraints, counted in characters rather than bytes.
	MinLength *int
	MaxLength *int
	Enum      []string
	Format    Format
	// NotBlank rejects strings made only of whitespace.
	NotBlank bool

	// Numeric constraints.
	Minimum *float64
	Maximum *float64

	// Array constraints.
	Items    *Schema
	MinItems *int
	MaxItems *int

	// Object fields, in declaration order.
	Fields []Field

	// Default is filled in by ApplyDefaults when an optional field is absent.
	Default any
}

// Field is a named member of an object schema.
type Field struct {
	Name     string
	Schema   *Schema
	Required bool
}

// String returns a string schema.
func String(description string) *Schema {
	return &Schema{Kind: KindString, Description: description}
}

// Integer returns an integer schema.
func Integer(description string) *Schema {
	return &Schema{Kind: KindInteger, Description: description}
}

// Number returns a number schema.
func Number(description string) *Schema {
	return &Schema{Kind: KindNumber, Description: description}
}

// Boolean returns a boolean schema.
func Boolean(description string) *Schema {
	return &Schema{Kind: KindBoolean, Description: description}
}

// Array returns an array schema whose elements match items.
func Array(description string, items *Schema) *Schema {
	return &Schema{Kind: KindArray, Description: description, Items: items}
}

// Object returns an object schema with the given fields.
func Object(description string, fields ...Field) *Schema {
	return &Schema{Kind: KindObject, Description: description, Fields: fields}
}

// Required declares a field that must be present.
func Required(name string, s *Schema) Field {
	return Field{Name: name, Schema: s, Required: true}
}

// Optional declares a field that may be absent.
func Optional(name string, s *Schema) Field {
	return Field{Name: name, Schema: s}
}

// WithMinLength sets the minimum number of characters.
func (s *Schema) WithMinLength(n int) *Schema {
	s.MinLength = &n
	return s
}

// WithMaxLength sets the maximum number of characters.
func (s *Schema) WithMaxLength(n int) *Schema {
	s.MaxLength = &n
	return s
}

// WithLength sets both character bounds.
func (s *Schema) WithLength(minLen, maxLen int) *Schema {
	return s.WithMinLength(minLen).WithMaxLength(maxLen)
}

// WithNotBlank requires at least one non-whitespace character.
func (s *Schema) WithNotBlank() *Schema {
	s.NotBlank = true
	return s
}

// WithEnum restricts a string to the given values.
func (s *Schema) WithEnum(values ...string) *Schema {
	s.Enum = values
	return s
}

// WithFormat sets a semantic string format.
func (s *Schema) WithFormat(f Format) *Schema {
	s.Format = f
	return s
}

// WithMinimum sets the inclusive numeric lower bound.
func (s *Schema) WithMinimum(v float64) *Schema {
	s.Minimum = &v
	return s
}

// WithMaximum sets the inclusive numeric upper bound.
func (s *Schema) WithMaximum(v float64) *Schema {
	s.Maximum = &v
	return s
}

// WithItems sets the inclusive element-count bounds of an array.
func (s *Schema) WithItems(minItems, maxItems int) *Schema {
	s.MinItems = &minItems
	s.MaxItems = &maxItems
	return s
}

// WithMinItems sets only the lower element-count bound of an array.
func (s *Schema) WithMinItems(n int) *Schema {
	s.MinItems = &n
	return s
}

// WithDefault sets the value used when an optional field is absent.
func (s *Schema) WithDefault(v any) *Schema {
	s.Default = v
	return s
}

// Field looks up an object field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredNames lists the names of required object fields in declaration order.
func (s *Schema) RequiredNames() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
