package repositories

import (
	"errors"
	"strings"

	"github.com/sitepulse/analytics-api/internal/domain/apperrors"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether err came from a unique constraint.
// Matched by message so the check works against Postgres in production and
// sqlite in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// storeErr converts a raw gorm error into the application taxonomy.
// gorm.ErrRecordNotFound is intentionally not handled here; the repositories
// translate it per lookup so the message can name what was missing.
func storeErr(err error, op string) error {
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.KindConflict, err, "%s: duplicate", op)
	}
	return apperrors.Unavailable(err, "%s", op)
}
