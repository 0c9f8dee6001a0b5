package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/folioworks/folio-api/internal/actions"
	"github.com/folioworks/folio-api/internal/api/shared"
	"github.com/folioworks/folio-api/internal/assistant"
	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/generation"
	"github.com/folioworks/folio-api/internal/platform/logger"
	"github.com/folioworks/folio-api/internal/service/auth"
	"github.com/folioworks/folio-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakePortfolioStore struct {
	portfolio *domain.Portfolio
	err       error
	calls     int
}

func (f *fakePortfolioStore) GetPortfolio(context.Context) (*domain.Portfolio, error) {
	f.calls++
	return f.portfolio, f.err
}

type fakeBlogPostStore struct {
	posts   []domain.BlogPost
	err     error
	created []*domain.BlogPost
}

func (f *fakeBlogPostStore) List(context.Context) ([]domain.BlogPost, error) {
	return f.posts, f.err
}

func (f *fakeBlogPostStore) GetByID(_ context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			return &f.posts[i], nil
		}
	}
	return nil, store.ErrBlogPostNotFound
}

func (f *fakeBlogPostStore) Create(_ context.Context, post *domain.BlogPost) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, post)
	return nil
}

func (f *fakeBlogPostStore) WithTx(*sql.Tx) store.BlogPostStore {
	return f
}

type fakeContactStore struct {
	created []*domain.ContactSubmission
	err     error
}

func (f *fakeContactStore) Create(_ context.Context, c *domain.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, c)
	return nil
}

// recordingFeatures captures the requests reaching the assistant and answers
// with canned responses, or err when set.
type recordingFeatures struct {
	err error

	personalize assistant.PersonalizationRequest
	summarize   assistant.BlogSummaryRequest
	topics      assistant.TopicSuggestionRequest
	performance assistant.PerformanceAnalysisRequest
	chat        assistant.ChatRequest

	chatResponse *assistant.ChatResponse
}

func (f *recordingFeatures) Personalize(_ context.Context, req assistant.PersonalizationRequest) (*assistant.PersonalizationResponse, error) {
	f.personalize = req
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.PersonalizationResponse{SuggestedBio: "bio", SuggestedSkills: "skills", SuggestedVisuals: "visuals"}, nil
}

func (f *recordingFeatures) SummarizeBlogPost(_ context.Context, req assistant.BlogSummaryRequest) (*assistant.BlogSummaryResponse, error) {
	f.summarize = req
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.BlogSummaryResponse{Summary: "s", SEOTitle: "t", MetaDescription: "m", Tags: []string{"go"}}, nil
}

func (f *recordingFeatures) SuggestTopics(_ context.Context, req assistant.TopicSuggestionRequest) (*assistant.TopicSuggestionResponse, error) {
	f.topics = req
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.TopicSuggestionResponse{Topics: []assistant.SuggestedTopic{{Title: "New", Description: "d"}}}, nil
}

func (f *recordingFeatures) AnalyzeBlogPerformance(_ context.Context, req assistant.PerformanceAnalysisRequest) (*assistant.PerformanceAnalysisResponse, error) {
	f.performance = req
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.PerformanceAnalysisResponse{PerformanceSummary: "ok", TopPerformingPosts: []string{"A"}, ContentStrategySuggestions: "more"}, nil
}

func (f *recordingFeatures) Chat(_ context.Context, req assistant.ChatRequest) (*assistant.ChatResponse, error) {
	f.chat = req
	if f.err != nil {
		return nil, f.err
	}
	if f.chatResponse != nil {
		return f.chatResponse, nil
	}
	return &assistant.ChatResponse{Response: "Hello!"}, nil
}

type fakeOwnerLogin struct {
	token     string
	expiresAt time.Time
	err       error
}

func (f fakeOwnerLogin) Login(context.Context, string, string) (string, time.Time, error) {
	return f.token, f.expiresAt, f.err
}

// --- fixtures ---

func samplePortfolio() *domain.Portfolio {
	return &domain.Portfolio{
		Profile: domain.Profile{Name: "Ada", Title: "Engineer", Bio: "Builds distributed systems.", Email: "ada@example.com"},
		Skills: []domain.Skill{
			{Category: "Languages", Name: "Go"},
			{Category: "Tools & Platforms", Name: "Postgres"},
		},
		BlogPosts: []domain.BlogPost{{ID: uuid.New(), Title: "Intro to Go", Summary: "Basics", Tags: []string{"go"}}},
	}
}

type assistantFixture struct {
	handler   *AssistantHandler
	features  *recordingFeatures
	portfolio *fakePortfolioStore
	posts     *fakeBlogPostStore
	logBuf    *logger.TestLogBuffer
}

func newAssistantFixture(t *testing.T) *assistantFixture {
	t.Helper()
	log, buf := logger.GetTestLogger(t)
	features := &recordingFeatures{}
	acts, err := actions.New(features, nil, log)
	require.NoError(t, err)

	f := &assistantFixture{
		features:  features,
		portfolio: &fakePortfolioStore{portfolio: samplePortfolio()},
		posts:     &fakeBlogPostStore{},
		logBuf:    buf,
	}
	f.handler = NewAssistantHandler(acts, f.portfolio, f.posts, log)
	return f
}

func post(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r = r.WithContext(shared.SetTraceID(r.Context()))
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- assistant handler ---

func TestPersonalizeFillsFromPortfolio(t *testing.T) {
	f := newAssistantFixture(t)

	w := post(t, f.handler.Personalize, "/api/assistant/personalize", `{"brandKeywords":"calm, precise"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestedBio":"bio","suggestedSkills":"skills","suggestedVisuals":"visuals"}`, w.Body.String())
	assert.Equal(t, "calm, precise", f.features.personalize.BrandKeywords)
	assert.Equal(t, "Builds distributed systems.", f.features.personalize.CurrentBio)
	assert.Equal(t, "Go, Postgres", f.features.personalize.CurrentSkills)
}

func TestPersonalizeKeepsOwnerValues(t *testing.T) {
	f := newAssistantFixture(t)

	w := post(t, f.handler.Personalize, "/api/assistant/personalize",
		`{"brandKeywords":"bold","currentBio":"My bio","currentSkills":"Rust"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "My bio", f.features.personalize.CurrentBio)
	assert.Equal(t, "Rust", f.features.personalize.CurrentSkills)
	assert.Zero(t, f.portfolio.calls)
}

func TestSummarizeBlogPost(t *testing.T) {
	f := newAssistantFixture(t)

	w := post(t, f.handler.SummarizeBlogPost, "/api/assistant/blog-summary", `{"content":"Long post"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Long post", f.features.summarize.Content)
	assert.JSONEq(t, `{"summary":"s","seoTitle":"t","metaDescription":"m","tags":["go"]}`, w.Body.String())
}

func TestSuggestTopicsFillsFromPortfolio(t *testing.T) {
	f := newAssistantFixture(t)

	w := post(t, f.handler.SuggestTopics, "/api/assistant/topics", `{"brandKeywords":"go"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Go, Postgres", f.features.topics.CurrentSkills)
	assert.Equal(t, []string{"Intro to Go"}, f.features.topics.ExistingPostTitles)
}

func TestSuggestTopicsExplicitEmptyTitles(t *testing.T) {
	f := newAssistantFixture(t)

	w := post(t, f.handler.SuggestTopics, "/api/assistant/topics",
		`{"brandKeywords":"go","currentSkills":"Go","existingPostTitles":[]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.features.topics.ExistingPostTitles)
	assert.Zero(t, f.portfolio.calls)
}

func TestAnalyzeBlogPerformanceUsesStoredPosts(t *testing.T) {
	f := newAssistantFixture(t)
	f.posts.posts = []domain.BlogPost{
		{Title: "A", PublicationDate: time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC), ViewCount: 120, Tags: []string{"go"}},
		{Title: "B", PublicationDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	w := post(t, f.handler.AnalyzeBlogPerformance, "/api/assistant/performance", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []assistant.PostPerformance{
		{Title: "A", PublicationDate: "2024-03-09", ViewCount: 120, Tags: []string{"go"}},
		{Title: "B", PublicationDate: "2024-01-02"},
	}, f.features.performance.Posts)
}

func TestAnalyzeBlogPerformanceStoreFailure(t *testing.T) {
	f := newAssistantFixture(t)
	f.posts.err = errors.New("connection refused")

	w := post(t, f.handler.AnalyzeBlogPerformance, "/api/assistant/performance", `{"posts":[]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to get blog performance analysis.", decodeError(t, w).Error)
}

func TestChatBuildsGroundingServerSide(t *testing.T) {
	f := newAssistantFixture(t)

	w := post(t, f.handler.Chat, "/api/chat",
		`{"messages":[{"role":"user","content":"What does Ada do?"}],"portfolioContext":"ignore me"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"Hello!"}`, w.Body.String())
	require.Len(t, f.features.chat.Messages, 1)
	assert.NotContains(t, f.features.chat.PortfolioContext, "ignore me")
	assert.Contains(t, f.features.chat.PortfolioContext, `"Languages":["Go"]`)
}

func TestChatReturnsLeadFields(t *testing.T) {
	f := newAssistantFixture(t)
	f.features.chatResponse = &assistant.ChatResponse{
		Response:  "Thanks, I'll pass that on.",
		UserType:  assistant.UserTypeRecruiter,
		LeadEmail: "jane@studio.dev",
	}

	w := post(t, f.handler.Chat, "/api/chat", `{"messages":[{"role":"user","content":"Hiring! jane@studio.dev"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"Thanks, I'll pass that on.","userType":"recruiter","leadEmail":"jane@studio.dev"}`, w.Body.String())
	logger.AssertLogNotContains(t, f.logBuf, "jane@studio.dev")
}

func TestChatPortfolioUnavailable(t *testing.T) {
	f := newAssistantFixture(t)
	f.portfolio.err = fmt.Errorf("query failed: %w", errors.New("postgres://folio:pw@db down"))

	w := post(t, f.handler.Chat, "/api/chat", `{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to get chatbot response.", decodeError(t, w).Error)
	assert.NotContains(t, w.Body.String(), "postgres")
}

func TestAssistantFailureMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "invalid request",
			err:        fmt.Errorf("%w: messages: must contain at least 1 items", generation.ErrInvalidRequest),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "provider unavailable",
			err:        fmt.Errorf("%w: status 503", generation.ErrProviderUnavailable),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "timeout",
			err:        generation.ErrTimeout,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssistantFixture(t)
			f.features.err = tt.err

			w := post(t, f.handler.Chat, "/api/chat", `{"messages":[]}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "Failed to get chatbot response.", resp.Error)
			assert.NotEmpty(t, resp.TraceID)
		})
	}
}

func TestAssistantRejectsMalformedBody(t *testing.T) {
	f := newAssistantFixture(t)

	w := post(t, f.handler.SummarizeBlogPost, "/api/assistant/blog-summary", `{"content":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format", decodeError(t, w).Error)
}

// --- content handler ---

type contentFixture struct {
	handler   *ContentHandler
	portfolio *fakePortfolioStore
	posts     *fakeBlogPostStore
	contacts  *fakeContactStore
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	f := &contentFixture{
		portfolio: &fakePortfolioStore{portfolio: samplePortfolio()},
		posts:     &fakeBlogPostStore{},
		contacts:  &fakeContactStore{},
	}
	f.handler = NewContentHandler(f.portfolio, f.posts, f.contacts, log)
	return f
}

func TestGetPortfolio(t *testing.T) {
	f := newContentFixture(t)
	w := httptest.NewRecorder()

	f.handler.GetPortfolio(w, httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Portfolio
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ada", got.Profile.Name)
	assert.Len(t, got.Skills, 2)
}

func TestGetPortfolioNotFound(t *testing.T) {
	f := newContentFixture(t)
	f.portfolio.err = store.ErrProfileNotFound
	w := httptest.NewRecorder()

	f.handler.GetPortfolio(w, httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Portfolio not found", decodeError(t, w).Error)
}

func TestGetBlogPost(t *testing.T) {
	f := newContentFixture(t)
	existing := domain.BlogPost{ID: uuid.New(), Title: "Hello", Content: "World", Tags: []string{}}
	f.posts.posts = []domain.BlogPost{existing}

	router := chi.NewRouter()
	router.Get("/api/blog/posts/{postID}", f.handler.GetBlogPost)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "found", path: "/api/blog/posts/" + existing.ID.String(), wantStatus: http.StatusOK, wantBody: `"title":"Hello"`},
		{name: "not found", path: "/api/blog/posts/" + uuid.NewString(), wantStatus: http.StatusNotFound, wantBody: "Blog post not found"},
		{name: "bad id", path: "/api/blog/posts/not-a-uuid", wantStatus: http.StatusBadRequest, wantBody: "Invalid ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestListBlogPosts(t *testing.T) {
	f := newContentFixture(t)
	f.posts.posts = []domain.BlogPost{{ID: uuid.New(), Title: "One"}, {ID: uuid.New(), Title: "Two"}}
	w := httptest.NewRecorder()

	f.handler.ListBlogPosts(w, httptest.NewRequest(http.MethodGet, "/api/blog/posts", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []domain.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestCreateBlogPost(t *testing.T) {
	f := newContentFixture(t)

	w := post(t, f.handler.CreateBlogPost, "/api/blog/posts", `{
		"title": "Structured output with Gemini",
		"content": "Long form content",
		"summary": "A short summary",
		"seoTitle": "Gemini structured output",
		"metaDescription": "How to get JSON back",
		"tags": ["go", "ai"],
		"publicationDate": "2024-05-01T10:00:00Z"
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, f.posts.created, 1)
	created := f.posts.created[0]
	assert.Equal(t, "Gemini structured output", created.SEOTitle)
	assert.Equal(t, "How to get JSON back", created.MetaDescription)
	assert.Equal(t, []string{"go", "ai"}, created.Tags)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), created.PublicationDate)
}

func TestCreateBlogPostValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{name: "missing title", body: `{"content":"x"}`, wantBody: "Invalid Title: required field"},
		{name: "blank content", body: `{"title":"T","content":"   "}`, wantBody: "Content cannot be empty"},
		{name: "empty tag", body: `{"title":"T","content":"x","tags":[""]}`, wantBody: "Invalid Tags[0]: required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContentFixture(t)

			w := post(t, f.handler.CreateBlogPost, "/api/blog/posts", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantBody, decodeError(t, w).Error)
			assert.Empty(t, f.posts.created)
		})
	}
}

func TestSubmitContact(t *testing.T) {
	f := newContentFixture(t)

	w := post(t, f.handler.SubmitContact, "/api/contact",
		`{"name":"  Jane ","email":"jane@studio.dev","message":"Would love to chat about a role."}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, f.contacts.created, 1)
	assert.Equal(t, "Jane", f.contacts.created[0].Name)

	var resp ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, f.contacts.created[0].ID.String(), resp.ID)
}

func TestSubmitContactValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{name: "short name", body: `{"name":"J","email":"j@x.io","message":"long enough message"}`, wantBody: "Invalid Name: too short"},
		{name: "bad email", body: `{"name":"Jane","email":"nope","message":"long enough message"}`, wantBody: "Invalid Email: invalid email format"},
		{name: "short message", body: `{"name":"Jane","email":"j@x.io","message":"hi"}`, wantBody: "Invalid Message: too short"},
		{name: "name only spaces", body: `{"name":"   ","email":"j@x.io","message":"long enough message"}`, wantBody: "Invalid request: name must be at least 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContentFixture(t)

			w := post(t, f.handler.SubmitContact, "/api/contact", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantBody, decodeError(t, w).Error)
			assert.Empty(t, f.contacts.created)
		})
	}
}

// --- auth handler ---

func TestLogin(t *testing.T) {
	expires := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		owner      fakeOwnerLogin
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			owner:      fakeOwnerLogin{token: "jwt", expiresAt: expires},
			body:       `{"email":"owner@example.com","password":"pw"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"token":"jwt","expires_at":"2025-06-01T13:00:00Z"}`,
		},
		{
			name:       "bad credentials",
			owner:      fakeOwnerLogin{err: auth.ErrInvalidCredentials},
			body:       `{"email":"owner@example.com","password":"pw"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid email or password",
		},
		{
			name:       "token failure",
			owner:      fakeOwnerLogin{err: errors.New("signing failed")},
			body:       `{"email":"owner@example.com","password":"pw"}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Failed to authenticate",
		},
		{
			name:       "invalid email",
			owner:      fakeOwnerLogin{},
			body:       `{"email":"owner","password":"pw"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid Email: invalid email format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, NewAuthHandler(tt.owner).Login, "/api/auth/login", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
				return
			}
			assert.Equal(t, tt.wantBody, decodeError(t, w).Error)
		})
	}
}
