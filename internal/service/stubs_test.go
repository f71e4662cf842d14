package service

import (
	"context"
	"testing"

	"microblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	listByUserFn func(context.Context, uint) ([]*models.Post, error)
	listAllFn    func(context.Context) ([]*models.Post, error)
	listFeedFn   func(context.Context, int, int) ([]*models.Post, error)
	countFn      func(context.Context) (int64, error)
	updateFn     func(context.Context, *models.Post) error
	deleteFn     func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) ListAll(ctx context.Context) ([]*models.Post, error) {
	return s.listAllFn(ctx)
}
func (s *postRepoStub) ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFeedFn(ctx, limit, offset)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:     func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listByUserFn: func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		listAllFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		listFeedFn:   func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
		updateFn:     func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// storeStub is a stub for ImageStore recording every call.
type storeStub struct {
	saved    []string
	replaced []string
	removed  []string

	saveErr    error
	replaceErr error
}

func (s *storeStub) Save(bucket, rawName string, _ []byte) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	stored := "stored_" + rawName
	s.saved = append(s.saved, bucket+"/"+stored)
	return stored, nil
}

func (s *storeStub) Replace(bucket, oldName, rawName string, _ []byte) (string, error) {
	if s.replaceErr != nil {
		return "", s.replaceErr
	}
	stored := "stored_" + rawName
	s.replaced = append(s.replaced, bucket+"/"+oldName+"->"+stored)
	return stored, nil
}

func (s *storeStub) Remove(bucket, name string) {
	s.removed = append(s.removed, bucket+"/"+name)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, models.ErrorCode(err))
}
