package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/store"
)

// PostgresPortfolioStore implements store.PortfolioStore.
type PostgresPortfolioStore struct {
	db     *sql.DB
	posts  *PostgresBlogPostStore
	logger *slog.Logger
}

var _ store.PortfolioStore = (*PostgresPortfolioStore)(nil)

// NewPostgresPortfolioStore creates a portfolio store. It needs a *sql.DB rather
// than a store.DBTX because each snapshot runs in its own transaction.
func NewPostgresPortfolioStore(db *sql.DB, logger *slog.Logger) *PostgresPortfolioStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPortfolioStore{
		db:     db,
		posts:  NewPostgresBlogPostStore(db, logger),
		logger: logger.With(slog.String("component", "portfolio_store")),
	}
}

// GetPortfolio implements store.PortfolioStore. All records are read inside one
// read-only repeatable-read transaction.
func (s *PostgresPortfolioStore) GetPortfolio(ctx context.Context) (*domain.Portfolio, error) {
	var p domain.Portfolio

	err := store.RunInTransaction(ctx, s.db, store.ReadOnlySnapshot, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		if p.Profile, err = getProfile(ctx, tx); err != nil {
			return err
		}
		if p.Skills, err = queryAll(ctx, tx, "skills",
			`SELECT category, name FROM skills ORDER BY position, id`,
			func(row scanner) (domain.Skill, error) {
				var sk domain.Skill
				err := row.Scan(&sk.Category, &sk.Name)
				return sk, err
			}); err != nil {
			return err
		}
		if p.Projects, err = queryAll(ctx, tx, "projects",
			`SELECT title, description, tags, live_url, repo_url FROM projects ORDER BY position, id`,
			scanProject); err != nil {
			return err
		}
		if p.Certifications, err = queryAll(ctx, tx, "certifications",
			`SELECT title, issuer, date, url FROM certifications ORDER BY position, id`,
			func(row scanner) (domain.Certification, error) {
				var c domain.Certification
				err := row.Scan(&c.Title, &c.Issuer, &c.Date, &c.URL)
				return c, err
			}); err != nil {
			return err
		}
		if p.Testimonials, err = queryAll(ctx, tx, "testimonials",
			`SELECT author, author_title, author_company, text FROM testimonials ORDER BY position, id`,
			func(row scanner) (domain.Testimonial, error) {
				var t domain.Testimonial
				err := row.Scan(&t.Author, &t.AuthorTitle, &t.AuthorCompany, &t.Text)
				return t, err
			}); err != nil {
			return err
		}
		p.BlogPosts, err = s.posts.WithTx(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "portfolio snapshot loaded",
		"skills", len(p.Skills),
		"projects", len(p.Projects),
		"blog_posts", len(p.BlogPosts))
	return &p, nil
}

func getProfile(ctx context.Context, tx *sql.Tx) (domain.Profile, error) {
	var (
		profile domain.Profile
		social  []byte
	)
	err := tx.QueryRowContext(ctx,
		`SELECT name, title, bio, email, social FROM profile WHERE id = 1`).
		Scan(&profile.Name, &profile.Title, &profile.Bio, &profile.Email, &social)
	if errors.Is(err, sql.ErrNoRows) {
		return profile, store.ErrProfileNotFound
	}
	if err != nil {
		return profile, store.NewStoreError("profile", "get", "query failed", MapError(err))
	}
	if err := decodeList(social, &profile.Social); err != nil {
		return profile, store.NewStoreError("profile", "get", "decode failed", err)
	}
	return profile, nil
}

func scanProject(row scanner) (domain.Project, error) {
	var (
		p    domain.Project
		tags []byte
	)
	if err := row.Scan(&p.Title, &p.Description, &tags, &p.LiveURL, &p.RepoURL); err != nil {
		return p, err
	}
	err := decodeList(tags, &p.Tags)
	return p, err
}

func queryAll[T any](
	ctx context.Context,
	tx *sql.Tx,
	entity string,
	query string,
	scan func(scanner) (T, error),
) ([]T, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, store.NewStoreError(entity, "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, store.NewStoreError(entity, "list", "scan failed", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(entity, "list", "row iteration failed", MapError(err))
	}
	return out, nil
}
