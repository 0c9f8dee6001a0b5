package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/folioworks/folio-api/internal/api/middleware"
	"github.com/folioworks/folio-api/internal/assistant"
	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/mocks"
	"github.com/folioworks/folio-api/internal/platform/logger"
	"github.com/folioworks/folio-api/internal/platform/metrics"
	"github.com/folioworks/folio-api/internal/ratelimit"
	"github.com/folioworks/folio-api/internal/service/auth"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOwner struct{}

func (stubOwner) Login(context.Context, string, string) (string, time.Time, error) {
	return "", time.Time{}, auth.ErrInvalidCredentials
}

type stubActions struct{}

func (stubActions) GetPersonalizationSuggestions(context.Context, assistant.PersonalizationRequest) (*assistant.PersonalizationResponse, error) {
	return &assistant.PersonalizationResponse{}, nil
}

func (stubActions) GetBlogSuggestions(context.Context, assistant.BlogSummaryRequest) (*assistant.BlogSummaryResponse, error) {
	return &assistant.BlogSummaryResponse{Tags: []string{}}, nil
}

func (stubActions) GetTopicSuggestions(context.Context, assistant.TopicSuggestionRequest) (*assistant.TopicSuggestionResponse, error) {
	return &assistant.TopicSuggestionResponse{Topics: []assistant.SuggestedTopic{}}, nil
}

func (stubActions) GetBlogPerformanceAnalysis(context.Context, assistant.PerformanceAnalysisRequest) (*assistant.PerformanceAnalysisResponse, error) {
	return &assistant.PerformanceAnalysisResponse{TopPerformingPosts: []string{}}, nil
}

func (stubActions) GetChatbotResponse(context.Context, assistant.ChatRequest) (*assistant.ChatResponse, error) {
	return &assistant.ChatResponse{Response: "Hi!"}, nil
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) ratelimit.Decision {
	return ratelimit.Decision{Allowed: false, RetryAfter: 30 * time.Second}
}

func newTestApplication(t *testing.T, limiter ratelimit.Limiter) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	return &application{
		config:         &config.Config{Server: config.ServerConfig{Port: 0}},
		logger:         log,
		metrics:        metrics.New(prometheus.NewRegistry()),
		portfolioStore: &mocks.MockPortfolioStore{Portfolio: &domain.Portfolio{Profile: domain.Profile{Name: "Ada"}}},
		blogPostStore:  &mocks.MockBlogPostStore{},
		contactStore:   &mocks.MockContactStore{},
		jwtService:     jwtService,
		owner:          stubOwner{},
		actions:        stubActions{},
		chatLimiter:    limiter,
	}
}

func TestRouter(t *testing.T) {
	app := newTestApplication(t, nil)
	router := app.setupRouter()

	token, _, err := app.jwtService.GenerateToken(context.Background(), "owner@example.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "portfolio is public", method: http.MethodGet, path: "/api/portfolio", wantStatus: http.StatusOK},
		{name: "posts are public", method: http.MethodGet, path: "/api/blog/posts", wantStatus: http.StatusOK},
		{name: "missing post", method: http.MethodGet, path: "/api/blog/posts/" + uuid.NewString(), wantStatus: http.StatusNotFound},
		{name: "chat is public", method: http.MethodPost, path: "/api/chat", body: `{"messages":[{"role":"user","content":"hi"}]}`, wantStatus: http.StatusOK},
		{name: "contact is public", method: http.MethodPost, path: "/api/contact", body: `{"name":"Jane","email":"jane@studio.dev","message":"Hello there, Ada!"}`, wantStatus: http.StatusCreated},
		{name: "login rejects bad credentials", method: http.MethodPost, path: "/api/auth/login", body: `{"email":"x@example.com","password":"pw"}`, wantStatus: http.StatusUnauthorized},
		{name: "owner tool without token", method: http.MethodPost, path: "/api/assistant/topics", body: `{"brandKeywords":"go"}`, wantStatus: http.StatusUnauthorized},
		{name: "owner tool with token", method: http.MethodPost, path: "/api/assistant/topics", body: `{"brandKeywords":"go"}`, token: token, wantStatus: http.StatusOK},
		{name: "summary with token", method: http.MethodPost, path: "/api/assistant/blog-summary", body: `{"content":"text"}`, token: token, wantStatus: http.StatusOK},
		{name: "create post without token", method: http.MethodPost, path: "/api/blog/posts", body: `{"title":"T","content":"C"}`, wantStatus: http.StatusUnauthorized},
		{name: "create post with token", method: http.MethodPost, path: "/api/blog/posts", body: `{"title":"T","content":"C"}`, token: token, wantStatus: http.StatusCreated},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(middleware.TraceIDHeader))
		})
	}
}

func TestRouterChatBudgetIgnoresSpoofedForwardedFor(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	log, _ := logger.GetTestLogger(t)
	limiter, err := ratelimit.NewRedisLimiter(client, 1, time.Minute, log)
	require.NoError(t, err)

	app := newTestApplication(t, limiter)
	app.realIP, err = middleware.NewRealIP(nil)
	require.NoError(t, err)
	router := app.setupRouter()

	statuses := make([]int, 0, 5)
	for i := range 5 {
		r := httptest.NewRequest(http.MethodPost, "/api/chat",
			strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
		r.RemoteAddr = "203.0.113.7:40000"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		r.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, []int{
		http.StatusOK,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, statuses)
}

func TestRouterRateLimitsChat(t *testing.T) {
	router := newTestApplication(t, denyAll{}).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`)))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Too many messages")

	// Other public routes are not limited.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
