package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/store"
	"github.com/google/uuid"
)

const blogPostColumns = `id, title, content, summary, seo_title, meta_description, tags,
	view_count, publication_date, created_at, updated_at`

// PostgresBlogPostStore implements store.BlogPostStore.
type PostgresBlogPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.BlogPostStore = (*PostgresBlogPostStore)(nil)

// NewPostgresBlogPostStore creates a blog post store over a connection or transaction.
// If logger is nil, a default logger will be used.
func NewPostgresBlogPostStore(db store.DBTX, logger *slog.Logger) *PostgresBlogPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBlogPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "blog_post_store")),
	}
}

// WithTx implements store.BlogPostStore.
func (s *PostgresBlogPostStore) WithTx(tx *sql.Tx) store.BlogPostStore {
	return &PostgresBlogPostStore{db: tx, logger: s.logger}
}

// List implements store.BlogPostStore.
func (s *PostgresBlogPostStore) List(ctx context.Context) ([]domain.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts ORDER BY publication_date DESC, created_at DESC`)
	if err != nil {
		return nil, store.NewStoreError("blog_post", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	posts := []domain.BlogPost{}
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, store.NewStoreError("blog_post", "list", "scan failed", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("blog_post", "list", "row iteration failed", MapError(err))
	}
	return posts, nil
}

// GetByID implements store.BlogPostStore.
func (s *PostgresBlogPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE id = $1`, id)

	post, err := scanBlogPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBlogPostNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("blog_post", "get", "query failed", MapError(err))
	}
	return post, nil
}

// Create implements store.BlogPostStore.
func (s *PostgresBlogPostStore) Create(ctx context.Context, post *domain.BlogPost) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO blog_posts (`+blogPostColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		post.ID, post.Title, post.Content, post.Summary, post.SEOTitle, post.MetaDescription, tags,
		post.ViewCount, post.PublicationDate, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return store.NewStoreError("blog_post", "create", "insert failed", MapError(err))
	}

	s.logger.InfoContext(ctx, "blog post created",
		"post_id", post.ID.String(),
		"tag_count", len(post.Tags))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlogPost(row scanner) (*domain.BlogPost, error) {
	var (
		post domain.BlogPost
		tags []byte
	)
	if err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Summary, &post.SEOTitle,
		&post.MetaDescription, &tags, &post.ViewCount, &post.PublicationDate,
		&post.CreatedAt, &post.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeList(tags, &post.Tags); err != nil {
		return nil, err
	}
	return &post, nil
}

// decodeList decodes a JSONB array column, treating NULL as empty.
func decodeList[T any](raw []byte, dst *[]T) error {
	*dst = []T{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode JSONB list: %w", err)
	}
	if *dst == nil {
		*dst = []T{}
	}
	return nil
}
