package main

import (
	"net/http"

	"github.com/folioworks/folio-api/internal/api"
	apiMiddleware "github.com/folioworks/folio-api/internal/api/middleware"
	"github.com/folioworks/folio-api/internal/api/shared"
	"github.com/folioworks/folio-api/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// chatRoute labels the chat endpoint in rate limit metrics.
const chatRoute = "/api/chat"

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	if app.realIP != nil {
		r.Use(app.realIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Metrics(app.metrics))

	authHandler := api.NewAuthHandler(app.owner)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	contentHandler := api.NewContentHandler(app.portfolioStore, app.blogPostStore, app.contactStore, app.logger)
	assistantHandler := api.NewAssistantHandler(app.actions, app.portfolioStore, app.blogPostStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/login", authHandler.Login)
		r.Get("/portfolio", contentHandler.GetPortfolio)
		r.Get("/blog/posts", contentHandler.ListBlogPosts)
		r.Get("/blog/posts/{postID}", contentHandler.GetBlogPost)
		r.Post("/contact", contentHandler.SubmitContact)

		r.Group(func(r chi.Router) {
			if app.chatLimiter != nil {
				r.Use(ratelimit.Middleware(app.chatLimiter, chatRoute, app.metrics, rateLimited))
			}
			r.Post("/chat", assistantHandler.Chat)
		})

		// Owner tools
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/blog/posts", contentHandler.CreateBlogPost)
			r.Post("/assistant/personalize", assistantHandler.Personalize)
			r.Post("/assistant/blog-summary", assistantHandler.SummarizeBlogPost)
			r.Post("/assistant/topics", assistantHandler.SuggestTopics)
			r.Post("/assistant/performance", assistantHandler.AnalyzeBlogPerformance)
		})
	})

	r.Get("/health", app.health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		if err := app.db.PingContext(r.Context()); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
		"Too many messages. Please wait a moment and try again.", nil)
}
