package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// loginDummyHash is compared against when the username is unknown so both
// login failure paths cost a bcrypt verification.
var loginDummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user. Only the bcrypt hash of the password is
// persisted, never the plaintext.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Password != in.ConfirmPassword {
		return nil, models.NewPasswordMismatchError()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Password: string(hashed),
		Avatar:   models.DefaultAvatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the matching user. Unknown usernames
// and wrong passwords yield the same error so the response does not reveal
// which of the two failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(loginDummyHash, []byte(password))
		return nil, models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}
	return user, nil
}
