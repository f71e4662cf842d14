package repository

import (
	"errors"
	"fmt"
	"testing"

	"microblog/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateUniqueError(t *testing.T) {
	t.Parallel()

	t.Run("pg error routed by constraint name", func(t *testing.T) {
		t.Parallel()
		err := translateUniqueError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"})
		assert.Equal(t, models.CodeDuplicateUsername, models.ErrorCode(err))

		err = translateUniqueError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
		assert.Equal(t, models.CodeDuplicateEmail, models.ErrorCode(err))
	})

	t.Run("wrapped pg error is still recognized", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"})
		assert.Equal(t, models.CodeDuplicateUsername, models.ErrorCode(translateUniqueError(wrapped)))
	})

	t.Run("string fallback for drivers without PgError", func(t *testing.T) {
		t.Parallel()
		err := translateUniqueError(errors.New(`duplicate key value violates unique constraint "idx_users_email"`))
		assert.Equal(t, models.CodeDuplicateEmail, models.ErrorCode(err))

		err = translateUniqueError(errors.New(`duplicate key value violates unique constraint "idx_users_username"`))
		assert.Equal(t, models.CodeDuplicateUsername, models.ErrorCode(err))
	})

	t.Run("unrelated errors become internal", func(t *testing.T) {
		t.Parallel()
		err := translateUniqueError(errors.New("connection refused"))
		assert.Equal(t, models.CodeInternal, models.ErrorCode(err))
	})

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, translateUniqueError(nil))
	})
}
