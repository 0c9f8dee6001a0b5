package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/folioworks/folio-api/internal/actions"
	"github.com/folioworks/folio-api/internal/api/shared"
	"github.com/folioworks/folio-api/internal/assistant"
	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/platform/logger"
	"github.com/folioworks/folio-api/internal/store"
)

// AssistantActions is the boundary the assistant endpoints call. *actions.Actions
// implements it.
type AssistantActions interface {
	GetPersonalizationSuggestions(ctx context.Context, req assistant.PersonalizationRequest) (*assistant.PersonalizationResponse, error)
	GetBlogSuggestions(ctx context.Context, req assistant.BlogSummaryRequest) (*assistant.BlogSummaryResponse, error)
	GetTopicSuggestions(ctx context.Context, req assistant.TopicSuggestionRequest) (*assistant.TopicSuggestionResponse, error)
	GetBlogPerformanceAnalysis(ctx context.Context, req assistant.PerformanceAnalysisRequest) (*assistant.PerformanceAnalysisResponse, error)
	GetChatbotResponse(ctx context.Context, req assistant.ChatRequest) (*assistant.ChatResponse, error)
}

// publicationDateLayout is how post dates are shown to the model.
const publicationDateLayout = "2006-01-02"

// AssistantHandler serves the owner's content tools and the visitor chat.
// Request fields the owner leaves empty are filled from the stored portfolio.
type AssistantHandler struct {
	actions   AssistantActions
	portfolio store.PortfolioStore
	posts     store.BlogPostStore
	logger    *slog.Logger
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(
	actions AssistantActions,
	portfolio store.PortfolioStore,
	posts store.BlogPostStore,
	logger *slog.Logger,
) *AssistantHandler {
	return &AssistantHandler{
		actions:   actions,
		portfolio: portfolio,
		posts:     posts,
		logger:    logger.With(slog.String("component", "assistant_handler")),
	}
}

// Personalize handles POST /api/assistant/personalize.
func (h *AssistantHandler) Personalize(w http.ResponseWriter, r *http.Request) {
	var req assistant.PersonalizationRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.CurrentBio == "" || req.CurrentSkills == "" {
		p, ok := h.loadPortfolio(w, r, actions.FeaturePersonalization)
		if !ok {
			return
		}
		if req.CurrentBio == "" {
			req.CurrentBio = p.Profile.Bio
		}
		if req.CurrentSkills == "" {
			req.CurrentSkills = strings.Join(p.SkillNames(), ", ")
		}
		h.logDefaults(r, actions.FeaturePersonalization)
	}

	resp, err := h.actions.GetPersonalizationSuggestions(r.Context(), req)
	h.respond(w, r, resp, err)
}

// SummarizeBlogPost handles POST /api/assistant/blog-summary.
func (h *AssistantHandler) SummarizeBlogPost(w http.ResponseWriter, r *http.Request) {
	var req assistant.BlogSummaryRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.actions.GetBlogSuggestions(r.Context(), req)
	h.respond(w, r, resp, err)
}

// SuggestTopics handles POST /api/assistant/topics.
func (h *AssistantHandler) SuggestTopics(w http.ResponseWriter, r *http.Request) {
	var req assistant.TopicSuggestionRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.CurrentSkills == "" || req.ExistingPostTitles == nil {
		p, ok := h.loadPortfolio(w, r, actions.FeatureTopicSuggestions)
		if !ok {
			return
		}
		if req.CurrentSkills == "" {
			req.CurrentSkills = strings.Join(p.SkillNames(), ", ")
		}
		if req.ExistingPostTitles == nil {
			req.ExistingPostTitles = p.PostTitles()
		}
		h.logDefaults(r, actions.FeatureTopicSuggestions)
	}

	resp, err := h.actions.GetTopicSuggestions(r.Context(), req)
	h.respond(w, r, resp, err)
}

// AnalyzeBlogPerformance handles POST /api/assistant/performance. An empty
// post list analyzes every stored post.
func (h *AssistantHandler) AnalyzeBlogPerformance(w http.ResponseWriter, r *http.Request) {
	var req assistant.PerformanceAnalysisRequest
	if !h.decode(w, r, &req) {
		return
	}

	if len(req.Posts) == 0 {
		posts, err := h.posts.List(r.Context())
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				actions.Message(actions.FeatureBlogPerformance), err)
			return
		}
		req.Posts = toPostPerformance(posts)
		h.logDefaults(r, actions.FeatureBlogPerformance)
	}

	resp, err := h.actions.GetBlogPerformanceAnalysis(r.Context(), req)
	h.respond(w, r, resp, err)
}

// Chat handles POST /api/chat. The portfolio snapshot is read per request so
// the assistant always answers from current records.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, ok := h.loadPortfolio(w, r, actions.FeatureChat)
	if !ok {
		return
	}
	grounding, err := p.GroundingContext()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, actions.Message(actions.FeatureChat), err)
		return
	}

	resp, err := h.actions.GetChatbotResponse(r.Context(), assistant.ChatRequest{
		Messages:         req.Messages,
		PortfolioContext: grounding,
	})
	h.respond(w, r, resp, err)
}

func (h *AssistantHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	return true
}

func (h *AssistantHandler) loadPortfolio(w http.ResponseWriter, r *http.Request, feature string) (*domain.Portfolio, bool) {
	p, err := h.portfolio.GetPortfolio(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, actions.Message(feature), err)
		return nil, false
	}
	return p, true
}

func (h *AssistantHandler) logDefaults(r *http.Request, feature string) {
	logger.FromContextOrDefault(r.Context(), h.logger).DebugContext(r.Context(),
		"filled request defaults from stored portfolio", "feature", feature)
}

func (h *AssistantHandler) respond(w http.ResponseWriter, r *http.Request, resp any, err error) {
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func toPostPerformance(posts []domain.BlogPost) []assistant.PostPerformance {
	out := make([]assistant.PostPerformance, 0, len(posts))
	for _, p := range posts {
		out = append(out, assistant.PostPerformance{
			Title:           p.Title,
			PublicationDate: p.PublicationDate.Format(publicationDateLayout),
			ViewCount:       p.ViewCount,
			Tags:            p.Tags,
		})
	}
	return out
}
