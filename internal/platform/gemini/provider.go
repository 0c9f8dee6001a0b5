package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/generation"
	"google.golang.org/genai"
)

// contentGenerator is the slice of the genai client the provider uses.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Provider implements generation.Provider using the Gemini API.
type Provider struct {
	models      contentGenerator
	temperature float32
	logger      *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Gemini-backed provider from the LLM configuration.
//
// Returns an error wrapping generation.ErrInvalidConfig if the API key is missing
// or the SDK client cannot be created.
func NewProvider(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "gemini provider initialized", "model", cfg.ModelName)
	return newProvider(client.Models, cfg.Temperature, logger), nil
}

func newProvider(models contentGenerator, temperature float64, logger *slog.Logger) *Provider {
	return &Provider{
		models:      models,
		temperature: float32(temperature),
		logger:      logger.With(slog.String("component", "gemini_provider")),
	}
}

// Generate implements generation.Provider. It issues exactly one GenerateContent
// request and returns the concatenated text parts of the first candidate.
func (p *Provider) Generate(ctx context.Context, call generation.Call) (string, error) {
	temperature := p.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if call.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenaiSchema(call.Schema)
	}

	resp, err := p.models.GenerateContent(ctx, call.Model, genai.Text(call.Prompt), cfg)
	if err != nil {
		return "", classifyError(ctx, err)
	}

	text, err := extractText(resp)
	if err != nil {
		p.logger.WarnContext(ctx, "gemini returned no usable content",
			"model", call.Model,
			"error", err)
		return "", err
	}
	return text, nil
}

// extractText returns the text of the first candidate, or an error wrapping
// generation.ErrMalformedResponse when there is none.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrMalformedResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrMalformedResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrMalformedResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: no text in response (finish reason %s)",
			generation.ErrMalformedResponse, candidate.FinishReason)
	}
	return sb.String(), nil
}

// classifyError maps an SDK error onto the generation taxonomy. Context errors
// are passed through so the client can tell a timeout from a transport failure.
func classifyError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	if apiErr, ok := asAPIError(err); ok {
		return fmt.Errorf("%w: gemini API returned %d %s: %s",
			generation.ErrProviderUnavailable, apiErr.Code, apiErr.Status, apiErr.Message)
	}
	return fmt.Errorf("%w: %w", generation.ErrProviderUnavailable, err)
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}
