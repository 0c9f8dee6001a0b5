// Package prompt builds prompt text by explicit string concatenation.
//
// Values passed to a Builder are appended verbatim and are never parsed, so user
// content that happens to look like template syntax cannot change the structure of
// the prompt.
package prompt

import "strings"

// Builder accumulates prompt text line by line. The zero value is ready to use.
type Builder struct {
	sb strings.Builder
}

// Text appends s without a trailing newline.
func (b *Builder) Text(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Line appends s followed by a newline.
func (b *Builder) Line(s string) *Builder {
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
	return b
}

// Blank appends an empty line.
func (b *Builder) Blank() *Builder {
	b.sb.WriteByte('\n')
	return b
}

// Field appends "label: value".
func (b *Builder) Field(label, value string) *Builder {
	return b.Line(label + ": " + value)
}

// Section appends a heading line, the body on the following line(s), and a blank line.
func (b *Builder) Section(heading, body string) *Builder {
	return b.Line(heading).Line(body).Blank()
}

// List appends a heading followed by one "- item" line per element and a blank line.
// When items is empty nothing is written, heading included.
func (b *Builder) List(heading string, items []string) *Builder {
	if len(items) == 0 {
		return b
	}
	b.Line(heading)
	for _, item := range items {
		b.Line("- " + item)
	}
	return b.Blank()
}

// Each calls fn once per index in [0, n), letting callers render structured
// elements with the same builder.
func (b *Builder) Each(n int, fn func(b *Builder, i int)) *Builder {
	for i := 0; i < n; i++ {
		fn(b, i)
	}
	return b
}

// String returns the accumulated prompt.
func (b *Builder) String() string {
	return b.sb.String()
}

// Join renders items separated by sep; an empty slice renders as "".
func Join(items []string, sep string) string {
	return strings.Join(items, sep)
}
