package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/folioworks/folio-api/internal/actions"
	"github.com/folioworks/folio-api/internal/api/shared"
	"github.com/folioworks/folio-api/internal/domain"
	"github.com/folioworks/folio-api/internal/service/auth"
	"github.com/folioworks/folio-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error itself.
func MapErrorToStatusCode(err error) int {
	var actionErr *actions.Error
	if errors.As(err, &actionErr) {
		if actionErr.InvalidInput() {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var actionErr *actions.Error
	if errors.As(err, &actionErr) {
		return actionErr.Error()
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, store.ErrBlogPostNotFound):
		return "Blog post not found"
	case errors.Is(err, store.ErrProfileNotFound):
		return "Portfolio not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, domain.ErrEmptyContent):
		return "Content cannot be empty"
	case errors.Is(err, domain.ErrValidation):
		return validationDetail(err)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// validationDetail surfaces the constraint named by a domain validation error.
// Domain messages are built from constants only; anything wrapped further is
// reduced to the generic message.
func validationDetail(err error) string {
	prefix := domain.ErrValidation.Error() + ": "
	if detail, ok := strings.CutPrefix(err.Error(), prefix); ok && detail != "" {
		return "Invalid request: " + detail
	}
	return "Validation error"
}

// HandleAPIError maps err to a status and safe message, logs it and writes the
// response. fallback replaces the generic message for unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns a validator error into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Key: 'ContactRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
