package assistant

import (
	"errors"
	"strings"

	"github.com/folioworks/folio-api/internal/generation"
)

// Default persona used by the chat prompt.
const (
	DefaultAssistantName = "Portfolio Pro"
	DefaultOwnerName     = "the portfolio owner"
)

// Assistant runs the generative features against a shared generation client.
// It is immutable after construction and safe for concurrent use.
type Assistant struct {
	client        *generation.Client
	leadCapture   bool
	assistantName string
	ownerName     string
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLeadCapture toggles visitor classification in the chat feature. When
// disabled the chat runs in plain-text mode and returns the reply only.
func WithLeadCapture(enabled bool) Option {
	return func(a *Assistant) {
		a.leadCapture = enabled
	}
}

// WithPersona sets the chat assistant's name and the name of the portfolio owner
// it speaks for. Empty values keep the defaults.
func WithPersona(assistantName, ownerName string) Option {
	return func(a *Assistant) {
		if strings.TrimSpace(assistantName) != "" {
			a.assistantName = assistantName
		}
		if strings.TrimSpace(ownerName) != "" {
			a.ownerName = ownerName
		}
	}
}

// New creates an Assistant. Lead capture is enabled by default.
func New(client *generation.Client, opts ...Option) (*Assistant, error) {
	if client == nil {
		return nil, errors.New("generation client cannot be nil")
	}

	a := &Assistant{
		client:        client,
		leadCapture:   true,
		assistantName: DefaultAssistantName,
		ownerName:     DefaultOwnerName,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// LeadCapture reports whether the chat feature classifies visitors.
func (a *Assistant) LeadCapture() bool {
	return a.leadCapture
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
