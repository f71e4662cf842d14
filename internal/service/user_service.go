package service

import (
	"context"
	"errors"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/storage"
	"microblog/internal/validation"
)

// UserService implements profile reading and self-service profile updates.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	store    ImageStore
}

type UpdateProfileInput struct {
	UserID     uint
	Username   string
	Email      string
	AvatarName string
	AvatarData []byte
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, store ImageStore) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, store: store}
}

// GetUser resolves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns a user by username along with their posts, newest first.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, []*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewNotFoundError("User", username)
	}

	posts, err := s.postRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, posts, nil
}

// UpdateProfile commits username, email and avatar together. Uniqueness is
// enforced by the database constraints; when the row update fails, a freshly
// stored avatar file is removed again so no partial profile survives.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	newAvatar := ""
	if in.AvatarName != "" && len(in.AvatarData) > 0 {
		stored, err := s.store.Save(storage.BucketAvatars, in.AvatarName, in.AvatarData)
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			// Rejected upload leaves the current avatar unchanged.
		case err != nil:
			return nil, models.NewInternalError(err)
		default:
			newAvatar = stored
		}
	}

	oldAvatar := user.Avatar
	user.Username = in.Username
	if in.Email == "" {
		user.Email = nil
	} else {
		email := in.Email
		user.Email = &email
	}
	if newAvatar != "" {
		user.Avatar = newAvatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if newAvatar != "" {
			s.store.Remove(storage.BucketAvatars, newAvatar)
		}
		return nil, err
	}

	if newAvatar != "" && oldAvatar != "" && oldAvatar != models.DefaultAvatar {
		s.store.Remove(storage.BucketAvatars, oldAvatar)
	}
	return user, nil
}
