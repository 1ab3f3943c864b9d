package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linskybing/engagement-go/pkg/apperr"
	"gorm.io/gorm"
)

// translate maps storage errors onto the application's error kinds.
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	what := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %s", apperr.ErrConflict, what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// isUniqueViolation catches drivers opened without TranslateError.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
