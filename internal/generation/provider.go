package generation

import (
	"context"

	"github.com/folioworks/folio-api/internal/schema"
)

// Call is one outbound request to a provider.
type Call struct {
	// Model identifies the provider model.
	Model string

	// Prompt is the fully rendered prompt text.
	Prompt string

	// Schema binds the output shape. A nil Schema requests plain text.
	Schema *schema.Schema
}

// Provider is the boundary to a hosted text-generation service.
type Provider interface {
	// Generate performs exactly one call and returns the raw model output: a JSON
	// document when call.Schema is set, free text otherwise. Transport failures and
	// non-2xx answers should wrap ErrProviderUnavailable; blocked or empty output
	// should wrap ErrMalformedResponse.
	Generate(ctx context.Context, call Call) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, call Call) (string, error)

// Generate implements Provider.
func (f ProviderFunc) Generate(ctx context.Context, call Call) (string, error) {
	return f(ctx, call)
}
