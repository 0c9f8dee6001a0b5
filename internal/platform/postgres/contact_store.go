package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/store"
)

// PostgresContactStore implements store.ContactStore.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.ContactStore = (*PostgresContactStore)(nil)

// NewPostgresContactStore creates a contact submission store.
func NewPostgresContactStore(db store.DBTX, logger *slog.Logger) *PostgresContactStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

// Create implements store.ContactStore.
func (s *PostgresContactStore) Create(ctx context.Context, c *domain.ContactSubmission) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (id, name, email, message, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Email, c.Message, c.SubmittedAt)
	if err != nil {
		return store.NewStoreError("contact_submission", "create", "insert failed", MapError(err))
	}

	s.logger.InfoContext(ctx, "contact submission stored",
		"submission_id", c.ID.String(),
		"message_length", len(c.Message))
	return nil
}
