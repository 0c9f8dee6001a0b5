package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Contact form limits.
const (
	MinContactNameLength    = 2
	MinContactMessageLength = 10
)

// ContactSubmission is a message left through the contact form.
type ContactSubmission struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewContactSubmission creates a submission stamped with the current time.
func NewContactSubmission(name, email, message string) (*ContactSubmission, error) {
	c := &ContactSubmission{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		Message:     strings.TrimSpace(message),
		SubmittedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if the ContactSubmission has valid data.
func (c *ContactSubmission) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}
	if utf8.RuneCountInString(c.Name) < MinContactNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrValidation, MinContactNameLength)
	}
	if !validEmail(c.Email) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(c.Message) < MinContactMessageLength {
		return fmt.Errorf("%w: message must be at least %d characters", ErrValidation, MinContactMessageLength)
	}
	return nil
}
