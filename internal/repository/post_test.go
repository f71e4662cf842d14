package repository

import (
	"context"
	"regexp"
	"testing"

	"microblog/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(42, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	post, err := repo.GetByID(context.Background(), 42)
	assert.Nil(t, post)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListFeed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	// Page 3 of a size-10 feed: limit 10, offset 20, newest first with the
	// id tiebreak.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2`)).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}))

	posts, err := repo.ListFeed(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
