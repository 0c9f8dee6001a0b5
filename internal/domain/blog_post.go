package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlogPost is a published article. ViewCount is maintained outside this service
// and only read here.
type BlogPost struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Summary         string    `json:"summary"`
	SEOTitle        string    `json:"seoTitle,omitempty"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	Tags            []string  `json:"tags"`
	ViewCount       int       `json:"viewCount"`
	PublicationDate time.Time `json:"publicationDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewBlogPost creates a post with a fresh ID and timestamps. A zero
// publicationDate means the post is published now.
func NewBlogPost(title, content, summary string, tags []string, publicationDate time.Time) (*BlogPost, error) {
	now := time.Now().UTC()
	if publicationDate.IsZero() {
		publicationDate = now
	}
	if tags == nil {
		tags = []string{}
	}

	post := &BlogPost{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(title),
		Content:         content,
		Summary:         strings.TrimSpace(summary),
		Tags:            tags,
		PublicationDate: publicationDate.UTC(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}
	return post, nil
}

// Validate checks if the BlogPost has valid data.
func (p *BlogPost) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}
	if p.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrEmptyContent
	}
	if p.ViewCount < 0 {
		return fmt.Errorf("%w: view count cannot be negative", ErrValidation)
	}
	for i, tag := range p.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: tag %d is empty", ErrValidation, i)
		}
	}
	return nil
}
