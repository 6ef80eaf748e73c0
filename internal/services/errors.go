package services

import (
	"strings"

	"recruitcrm/internal/repositories"

	"github.com/pkg/errors"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// ValidationError describes client input rejected by a service
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Message: "Validation failed",
		Details: map[string]string{field: message},
	}
}

type tenantOwned interface {
	OwnerID() string
}

// authorize converts a repository lookup into the caller's view of the document:
// missing documents are ErrNotFound and documents of another tenant are ErrForbidden.
func authorize[T tenantOwned](doc T, err error, tenantID string) (T, error) {
	var zero T
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	if doc.OwnerID() != tenantID {
		return zero, ErrForbidden
	}
	return doc, nil
}

// translateWrite maps a write that matched no row to ErrNotFound
func translateWrite(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func apply(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
