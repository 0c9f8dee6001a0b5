package gemini

import (
	"github.com/folioworks/folio-api/internal/schema"
	"google.golang.org/genai"
)

var kinds = map[schema.Kind]genai.Type{
	schema.KindString:  genai.TypeString,
	schema.KindInteger: genai.TypeInteger,
	schema.KindNumber:  genai.TypeNumber,
	schema.KindBoolean: genai.TypeBoolean,
	schema.KindArray:   genai.TypeArray,
	schema.KindObject:  genai.TypeObject,
}

// toGenaiSchema translates a schema descriptor into the API's response schema.
// Formats other than enum and date-time are not understood by the API, so an
// email format is conveyed through the description only. The response is still
// checked against the full descriptor after decoding.
func toGenaiSchema(s *schema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        kinds[s.Kind],
		Description: s.Description,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		MinLength:   toInt64(s.MinLength),
		MaxLength:   toInt64(s.MaxLength),
		MinItems:    toInt64(s.MinItems),
		MaxItems:    toInt64(s.MaxItems),
	}

	if len(s.Enum) > 0 {
		out.Format = "enum"
		out.Enum = append([]string(nil), s.Enum...)
	}
	if s.Format == schema.FormatEmail && out.Description == "" {
		out.Description = "An email address."
	}

	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}

	if s.Kind == schema.KindObject {
		out.Properties = make(map[string]*genai.Schema, len(s.Fields))
		out.PropertyOrdering = make([]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			out.Properties[f.Name] = toGenaiSchema(f.Schema)
			out.PropertyOrdering = append(out.PropertyOrdering, f.Name)
		}
		out.Required = s.RequiredNames()
	}

	return out
}

func toInt64(n *int) *int64 {
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}
