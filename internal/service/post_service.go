package service

import (
	"context"
	"errors"

	"microblog/internal/cache"
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/storage"
)

// FeedPageSize is the fixed number of posts per feed page.
const FeedPageSize = 10

const (
	maxTitleLen   = 200
	maxContentLen = 50000
)

// PostService implements the post lifecycle rules.
type PostService struct {
	postRepo repository.PostRepository
	store    ImageStore
}

type CreatePostInput struct {
	UserID    uint
	Title     string
	Content   string
	ImageName string
	ImageData []byte
}

type UpdatePostInput struct {
	UserID    uint
	PostID    uint
	Title     string
	Content   string
	ImageName string
	ImageData []byte
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, store ImageStore) *PostService {
	return &PostService{postRepo: postRepo, store: store}
}

// CreatePost publishes a new post for the actor. A rejected image is not
// fatal: the post is created without one.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	image := ""
	if in.ImageName != "" && len(in.ImageData) > 0 {
		stored, err := s.store.Save(storage.BucketPosts, in.ImageName, in.ImageData)
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			// Graceful degradation: proceed without an image.
		case err != nil:
			return nil, models.NewInternalError(err)
		default:
			image = stored
		}
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		Image:   image,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost fetches a post with its author and comments.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost overwrites title and content and optionally swaps the image.
// Ownership is checked before any field is touched.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	if in.ImageName != "" && len(in.ImageData) > 0 {
		stored, err := s.store.Replace(storage.BucketPosts, post.Image, in.ImageName, in.ImageData)
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			// Rejected upload leaves the existing image untouched.
		case err != nil:
			return nil, models.NewInternalError(err)
		default:
			post.Image = stored
		}
	}

	post.Title = in.Title
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post, its stored image and, through the cascade,
// its comments.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if post.Image != "" {
		s.store.Remove(storage.BucketPosts, post.Image)
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// ListAllPosts returns the entire feed, newest first.
func (s *PostService) ListAllPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.ListAll(ctx)
}

// ListUserPosts returns all posts by a user, newest first.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID)
}

// ListFeed returns one 1-indexed page of the global feed together with the
// total page count. A page past the end yields an empty page, not an error.
func (s *PostService) ListFeed(ctx context.Context, page int) ([]*models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * FeedPageSize

	var posts []*models.Post
	var err error
	if page == 1 {
		// Only the first page is cached; it absorbs nearly all feed reads.
		err = cache.Aside(ctx, cache.FeedKey(1), &posts, cache.FeedTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.ListFeed(ctx, FeedPageSize, 0)
			return fetchErr
		})
	} else {
		posts, err = s.postRepo.ListFeed(ctx, FeedPageSize, offset)
	}
	if err != nil {
		return nil, 0, err
	}

	count, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	totalPages := int((count + FeedPageSize - 1) / FeedPageSize)
	return posts, totalPages, nil
}

func validatePostFields(title, content string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}
