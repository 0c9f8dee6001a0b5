package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/folioworks/folio-api/internal/redact"
	"github.com/folioworks/folio-api/internal/schema"
)

// Settings is the generation configuration shared read-only by every feature.
type Settings struct {
	// Model is the provider model identifier.
	Model string

	// Timeout bounds a single provider call.
	Timeout time.Duration
}

// Client invokes a Provider on behalf of the feature entry points. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	provider Provider
	settings Settings
	logger   *slog.Logger
}

// NewClient creates a Client. It is constructed once at process start and passed
// explicitly to every feature that needs it.
func NewClient(provider Provider, settings Settings, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: provider cannot be nil", ErrInvalidConfig)
	}
	if settings.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}
	if settings.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}

	return &Client{
		provider: provider,
		settings: settings,
		logger:   logger.With(slog.String("component", "generation_client")),
	}, nil
}

// Settings returns the client's configuration.
func (c *Client) Settings() Settings {
	return c.settings
}

// Text performs one plain-text generation call and returns the trimmed model output.
func (c *Client) Text(ctx context.Context, prompt string) (string, error) {
	raw, err := c.invoke(ctx, prompt, nil)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrMalformedResponse)
	}
	return text, nil
}

// Structured performs one structured generation call and decodes the output into T
// after validating it against s. On any error the returned pointer is nil; a
// partially populated value is never returned.
func Structured[T any](ctx context.Context, c *Client, prompt string, s *schema.Schema) (*T, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: response schema cannot be nil", ErrInvalidConfig)
	}

	raw, err := c.invoke(ctx, prompt, s)
	if err != nil {
		return nil, err
	}

	body := stripCodeFence(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var value any
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		c.logger.WarnContext(ctx, "provider returned invalid JSON",
			"error", err,
			"response_length", len(body))
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrMalformedResponse, err)
	}

	if err := s.Validate(value); err != nil {
		c.logger.WarnContext(ctx, "provider response failed schema validation",
			"error", redact.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

// invoke issues exactly one provider call bounded by the configured timeout and maps
// failures onto the generation error taxonomy. It never retries.
func (c *Client) invoke(ctx context.Context, prompt string, s *schema.Schema) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidRequest)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.settings.Timeout)
	defer cancel()

	c.logger.DebugContext(ctx, "calling generation provider",
		"model", c.settings.Model,
		"structured", s != nil,
		"prompt_length", len(prompt))

	start := time.Now()
	raw, err := c.provider.Generate(callCtx, Call{
		Model:  c.settings.Model,
		Prompt: prompt,
		Schema: s,
	})
	elapsed := time.Since(start)

	if err != nil {
		err = c.classify(callCtx, err)
		c.logger.WarnContext(ctx, "generation provider call failed",
			"model", c.settings.Model,
			"duration_ms", elapsed.Milliseconds(),
			"error", redact.Error(err))
		return "", err
	}

	c.logger.DebugContext(ctx, "generation provider call succeeded",
		"model", c.settings.Model,
		"duration_ms", elapsed.Milliseconds(),
		"response_length", len(raw))
	return raw, nil
}

func (c *Client) classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w after %s: %v", ErrTimeout, c.settings.Timeout, err)
	case errors.Is(err, ErrProviderUnavailable), errors.Is(err, ErrMalformedResponse):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
}

// stripCodeFence removes a surrounding Markdown code fence, which some models emit
// around JSON even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
