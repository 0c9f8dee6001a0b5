// Package actions is the boundary between the assistant features and interactive
// callers. Every failure is logged with full (redacted) detail and replaced by a
// single caller-safe error that names the feature but never the cause.
package actions

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/folioworks/folio-api/internal/assistant"
	"github.com/folioworks/folio-api/internal/generation"
	"github.com/folioworks/folio-api/internal/platform/logger"
	"github.com/folioworks/folio-api/internal/platform/metrics"
	"github.com/folioworks/folio-api/internal/redact"
)

// Feature names, used as log fields and metric labels.
const (
	FeaturePersonalization  = "personalization"
	FeatureBlogSummary      = "blog_summary"
	FeatureTopicSuggestions = "topic_suggestions"
	FeatureBlogPerformance  = "blog_performance"
	FeatureChat             = "chat"
)

var messages = map[string]string{
	FeaturePersonalization:  "Failed to get personalization suggestions.",
	FeatureBlogSummary:      "Failed to get blog suggestions.",
	FeatureTopicSuggestions: "Failed to get topic suggestions.",
	FeatureBlogPerformance:  "Failed to get blog performance analysis.",
	FeatureChat:             "Failed to get chatbot response.",
}

// Message returns the caller-facing failure message of a feature.
func Message(feature string) string {
	if msg, ok := messages[feature]; ok {
		return msg
	}
	return "Failed to complete the request."
}

// Error is the only error an Actions method returns. Its message is fixed per
// feature and carries no detail of the underlying failure.
type Error struct {
	feature      string
	invalidInput bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	return Message(e.feature)
}

// Feature returns the name of the failed feature.
func (e *Error) Feature() string {
	return e.feature
}

// InvalidInput reports whether the failure was caused by the request itself
// rather than by the provider. The message is the same either way.
func (e *Error) InvalidInput() bool {
	return e.invalidInput
}

// Features is the set of generative operations exposed through Actions.
// *assistant.Assistant implements it.
type Features interface {
	Personalize(ctx context.Context, req assistant.PersonalizationRequest) (*assistant.PersonalizationResponse, error)
	SummarizeBlogPost(ctx context.Context, req assistant.BlogSummaryRequest) (*assistant.BlogSummaryResponse, error)
	SuggestTopics(ctx context.Context, req assistant.TopicSuggestionRequest) (*assistant.TopicSuggestionResponse, error)
	AnalyzeBlogPerformance(ctx context.Context, req assistant.PerformanceAnalysisRequest) (*assistant.PerformanceAnalysisResponse, error)
	Chat(ctx context.Context, req assistant.ChatRequest) (*assistant.ChatResponse, error)
}

// Actions exposes each feature to interactive callers.
type Actions struct {
	features Features
	metrics  *metrics.Recorder
	logger   *slog.Logger
}

// New creates Actions. recorder may be nil.
func New(features Features, recorder *metrics.Recorder, logger *slog.Logger) (*Actions, error) {
	if features == nil {
		return nil, errors.New("features cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Actions{
		features: features,
		metrics:  recorder,
		logger:   logger.With(slog.String("component", "actions")),
	}, nil
}

// GetPersonalizationSuggestions runs the personalization feature.
func (a *Actions) GetPersonalizationSuggestions(
	ctx context.Context,
	req assistant.PersonalizationRequest,
) (*assistant.PersonalizationResponse, error) {
	return run(ctx, a, FeaturePersonalization, func(ctx context.Context) (*assistant.PersonalizationResponse, error) {
		return a.features.Personalize(ctx, req)
	})
}

// GetBlogSuggestions runs the blog summary feature.
func (a *Actions) GetBlogSuggestions(
	ctx context.Context,
	req assistant.BlogSummaryRequest,
) (*assistant.BlogSummaryResponse, error) {
	return run(ctx, a, FeatureBlogSummary, func(ctx context.Context) (*assistant.BlogSummaryResponse, error) {
		return a.features.SummarizeBlogPost(ctx, req)
	})
}

// GetTopicSuggestions runs the topic suggestion feature.
func (a *Actions) GetTopicSuggestions(
	ctx context.Context,
	req assistant.TopicSuggestionRequest,
) (*assistant.TopicSuggestionResponse, error) {
	return run(ctx, a, FeatureTopicSuggestions, func(ctx context.Context) (*assistant.TopicSuggestionResponse, error) {
		return a.features.SuggestTopics(ctx, req)
	})
}

// GetBlogPerformanceAnalysis runs the blog performance feature.
func (a *Actions) GetBlogPerformanceAnalysis(
	ctx context.Context,
	req assistant.PerformanceAnalysisRequest,
) (*assistant.PerformanceAnalysisResponse, error) {
	return run(ctx, a, FeatureBlogPerformance, func(ctx context.Context) (*assistant.PerformanceAnalysisResponse, error) {
		return a.features.AnalyzeBlogPerformance(ctx, req)
	})
}

// GetChatbotResponse runs the chat feature. A captured lead is counted and logged
// with the address redacted; storing it is left to the caller.
func (a *Actions) GetChatbotResponse(
	ctx context.Context,
	req assistant.ChatRequest,
) (*assistant.ChatResponse, error) {
	resp, err := run(ctx, a, FeatureChat, func(ctx context.Context) (*assistant.ChatResponse, error) {
		return a.features.Chat(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	if resp.LeadEmail != "" {
		a.metrics.LeadCaptured()
		logger.FromContextOrDefault(ctx, a.logger).InfoContext(ctx, "chat lead captured",
			"feature", FeatureChat,
			"user_type", string(resp.UserType),
			"lead_email", redact.String(resp.LeadEmail))
	}
	return resp, nil
}

func run[T any](ctx context.Context, a *Actions, feature string, fn func(context.Context) (*T, error)) (*T, error) {
	start := time.Now()
	resp, err := fn(ctx)
	elapsed := time.Since(start)

	outcome := outcomeOf(err)
	a.metrics.ObserveAction(feature, outcome, elapsed)

	if err == nil {
		return resp, nil
	}

	log := logger.FromContextOrDefault(ctx, a.logger)
	invalid := errors.Is(err, generation.ErrInvalidRequest)
	level := slog.LevelError
	if invalid {
		level = slog.LevelWarn
	}
	log.Log(ctx, level, "assistant action failed",
		"feature", feature,
		"outcome", outcome,
		"duration_ms", elapsed.Milliseconds(),
		"error", redact.Error(err))

	return nil, &Error{feature: feature, invalidInput: invalid}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, generation.ErrInvalidRequest):
		return metrics.OutcomeInvalidRequest
	case errors.Is(err, generation.ErrTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, generation.ErrProviderUnavailable):
		return metrics.OutcomeProviderUnavailable
	case errors.Is(err, generation.ErrMalformedResponse):
		return metrics.OutcomeMalformedResponse
	default:
		return metrics.OutcomeError
	}
}
