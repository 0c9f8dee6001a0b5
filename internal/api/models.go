package api

import (
	"time"

	"github.com/folioworks/folio-api/internal/assistant"
)

// LoginRequest defines the payload for the owner login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// AuthResponse defines the successful response of the login endpoint.
type AuthResponse struct {
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 expiry of the access token.
	ExpiresAt string `json:"expires_at"`
}

// ChatRequest is a visitor's conversation so far. The grounding context is
// always built server-side and never accepted from the client.
type ChatRequest struct {
	Messages []assistant.Message `json:"messages"`
}

// CreateBlogPostRequest saves a post, typically after the owner accepted a
// generated summary, SEO title, meta description and tags.
type CreateBlogPostRequest struct {
	Title           string     `json:"title"                     validate:"required,max=300"`
	Content         string     `json:"content"                   validate:"required"`
	Summary         string     `json:"summary"`
	SEOTitle        string     `json:"seoTitle,omitempty"        validate:"max=300"`
	MetaDescription string     `json:"metaDescription,omitempty" validate:"max=500"`
	Tags            []string   `json:"tags,omitempty"            validate:"max=20,dive,required"`
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
}

// ContactRequest is a contact form submission.
type ContactRequest struct {
	Name    string `json:"name"    validate:"required,min=2,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ContactResponse acknowledges a stored submission.
type ContactResponse struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
}
