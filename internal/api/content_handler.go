package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/folioworks/folio-api/internal/api/shared"
	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/platform/logger"
	"github.com/folioworks/folio-api/internal/store"
)

// ContentHandler serves the portfolio records, blog posts and contact form.
type ContentHandler struct {
	portfolio store.PortfolioStore
	posts     store.BlogPostStore
	contacts  store.ContactStore
	logger    *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(
	portfolio store.PortfolioStore,
	posts store.BlogPostStore,
	contacts store.ContactStore,
	logger *slog.Logger,
) *ContentHandler {
	return &ContentHandler{
		portfolio: portfolio,
		posts:     posts,
		contacts:  contacts,
		logger:    logger.With(slog.String("component", "content_handler")),
	}
}

// GetPortfolio handles GET /api/portfolio.
func (h *ContentHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.portfolio.GetPortfolio(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load portfolio")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, p)
}

// ListBlogPosts handles GET /api/blog/posts, newest first.
func (h *ContentHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load blog posts")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, posts)
}

// GetBlogPost handles GET /api/blog/posts/{postID}.
func (h *ContentHandler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "postID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load blog post")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// CreateBlogPost handles POST /api/blog/posts (owner only).
func (h *ContentHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogPostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var published time.Time
	if req.PublicationDate != nil {
		published = *req.PublicationDate
	}
	post, err := domain.NewBlogPost(req.Title, req.Content, req.Summary, req.Tags, published)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	post.SEOTitle = req.SEOTitle
	post.MetaDescription = req.MetaDescription

	if err := h.posts.Create(r.Context(), post); err != nil {
		HandleAPIError(w, r, err, "Failed to save blog post")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).InfoContext(r.Context(), "blog post created",
		"post_id", post.ID.String(),
		"tags", len(post.Tags))
	shared.RespondWithJSON(w, r, http.StatusCreated, post)
}

// SubmitContact handles POST /api/contact.
func (h *ContentHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	submission, err := domain.NewContactSubmission(req.Name, req.Email, req.Message)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.contacts.Create(r.Context(), submission); err != nil {
		HandleAPIError(w, r, err, "Failed to send message")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).InfoContext(r.Context(), "contact submission stored",
		"submission_id", submission.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, ContactResponse{
		ID:          submission.ID.String(),
		SubmittedAt: submission.SubmittedAt,
	})
}
