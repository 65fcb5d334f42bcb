package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/99minutos/postboard/internal/core/domain"
)

const uniqueViolation = "23505"

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// userConflict maps a unique violation on the users table to the matching
// domain error. It returns nil for any other error.
func userConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != uniqueViolation {
			return nil
		}
		if pgErr.ConstraintName == emailConstraint {
			return domain.ErrDuplicateEmail
		}
		return domain.ErrDuplicateUsername
	}

	// Dialects without structured errors (sqlite) only report the column.
	msg := err.Error()
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "UNIQUE constraint failed") {
		if strings.Contains(msg, "users.email") || strings.Contains(msg, emailConstraint) {
			return domain.ErrDuplicateEmail
		}
		return domain.ErrDuplicateUsername
	}
	return nil
}
