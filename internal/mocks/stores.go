package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/store"
	"github.com/google/uuid"
)

// MockPortfolioStore implements store.PortfolioStore.
type MockPortfolioStore struct {
	GetPortfolioFn func(ctx context.Context) (*domain.Portfolio, error)

	Portfolio *domain.Portfolio
	Err       error
}

var _ store.PortfolioStore = (*MockPortfolioStore)(nil)

// GetPortfolio implements store.PortfolioStore. Without a configured
// Portfolio it returns an empty one.
func (m *MockPortfolioStore) GetPortfolio(ctx context.Context) (*domain.Portfolio, error) {
	if m.GetPortfolioFn != nil {
		return m.GetPortfolioFn(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Portfolio == nil {
		return &domain.Portfolio{}, nil
	}
	return m.Portfolio, nil
}

// MockBlogPostStore implements store.BlogPostStore over an in-memory slice.
type MockBlogPostStore struct {
	ListFn    func(ctx context.Context) ([]domain.BlogPost, error)
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)
	CreateFn  func(ctx context.Context, post *domain.BlogPost) error

	mu    sync.Mutex
	Posts []domain.BlogPost
	Err   error
}

var _ store.BlogPostStore = (*MockBlogPostStore)(nil)

// List implements store.BlogPostStore.
func (m *MockBlogPostStore) List(ctx context.Context) ([]domain.BlogPost, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.BlogPost{}, m.Posts...), nil
}

// GetByID implements store.BlogPostStore.
func (m *MockBlogPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Posts {
		if p.ID == id {
			post := p
			return &post, nil
		}
	}
	return nil, store.ErrBlogPostNotFound
}

// Create implements store.BlogPostStore and appends to Posts.
func (m *MockBlogPostStore) Create(ctx context.Context, post *domain.BlogPost) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Posts = append(m.Posts, *post)
	return nil
}

// WithTx implements store.BlogPostStore. The mock ignores transactions.
func (m *MockBlogPostStore) WithTx(*sql.Tx) store.BlogPostStore {
	return m
}

// MockContactStore implements store.ContactStore.
type MockContactStore struct {
	CreateFn func(ctx context.Context, c *domain.ContactSubmission) error

	mu      sync.Mutex
	Created []*domain.ContactSubmission
	Err     error
}

var _ store.ContactStore = (*MockContactStore)(nil)

// Create implements store.ContactStore and records the submission.
func (m *MockContactStore) Create(ctx context.Context, c *domain.ContactSubmission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Created = append(m.Created, c)
	return nil
}
