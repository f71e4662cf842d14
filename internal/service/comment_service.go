package service

import (
	"context"
	"strings"

	"microblog/internal/models"
	"microblog/internal/repository"
)

const maxCommentLen = 10000

// CommentService implements comment creation and the two-party delete rule.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// CreateComment appends a comment to an existing post. Whitespace-only
// content is rejected.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewEmptyContentError()
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a single comment. Allowed for the comment's author
// and for the author of the parent post.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if comment.UserID != in.UserID {
		post, err := s.postRepo.GetByID(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.UserID != in.UserID {
			return models.NewForbiddenError("You cannot delete this comment")
		}
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
