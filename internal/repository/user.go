// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"microblog/internal/cache"
	"microblog/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateUniqueError(err)
	}
	return nil
}

// Update persists the profile columns only. The user value may come from the
// cache, where json-skipped fields like the password hash are absent, so a
// full-row Save would overwrite them with zero values.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	updates := map[string]any{
		"username": user.Username,
		"email":    user.Email,
		"avatar":   user.Avatar,
	}
	err := r.db.WithContext(ctx).Model(&models.User{ID: user.ID}).Updates(updates).Error
	if err != nil {
		return translateUniqueError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	// Cached feed entries embed the author's username and avatar.
	cache.InvalidateFeed(ctx)
	return nil
}
