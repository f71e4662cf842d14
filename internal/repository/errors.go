package repository

import (
	"errors"
	"strings"

	"microblog/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// translateUniqueError maps a unique-constraint violation onto the matching
// domain error, relying on the database constraint rather than a
// check-then-act query. Non-constraint errors are wrapped as internal.
func translateUniqueError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return models.NewDuplicateUsernameError()
		case strings.Contains(pgErr.ConstraintName, "email"):
			return models.NewDuplicateEmailError()
		}
	}

	// Fallback for drivers that do not surface PgError
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, uniqueViolation) {
		if strings.Contains(msg, "email") {
			return models.NewDuplicateEmailError()
		}
		return models.NewDuplicateUsernameError()
	}

	return models.NewInternalError(err)
}
