package store

import (
	"context"
	"database/sql"

	"github.com/folioworks/folio-api/internal/domain"
	"github.com/google/uuid"
)

// PortfolioStore reads the records shown on the site.
type PortfolioStore interface {
	// GetPortfolio returns a consistent snapshot of every portfolio record.
	// Returns ErrProfileNotFound if the owner profile has not been seeded.
	GetPortfolio(ctx context.Context) (*domain.Portfolio, error)
}

// BlogPostStore persists blog posts.
type BlogPostStore interface {
	// List returns all posts, newest publication first.
	List(ctx context.Context) ([]domain.BlogPost, error)

	// GetByID returns ErrBlogPostNotFound if no post has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)

	// Create validates and inserts a post.
	Create(ctx context.Context, post *domain.BlogPost) error

	// WithTx returns a store bound to the transaction.
	WithTx(tx *sql.Tx) BlogPostStore
}

// ContactStore persists contact form submissions.
type ContactStore interface {
	Create(ctx context.Context, submission *domain.ContactSubmission) error
}
