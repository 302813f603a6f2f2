package service

import (
	"context"
	"strings"

	"bunchly/internal/cache"
	"bunchly/internal/models"
	"bunchly/internal/repository"
	"bunchly/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// ClaimInput is the payload for claiming a username (signup).
type ClaimInput struct {
	Username string
	Email    string
	Password string
	Name     string
}

// UpdateProfileInput is a partial profile update for the authenticated owner.
type UpdateProfileInput struct {
	UserID     uint
	Name       *string
	Bio        *string
	Image      *string
	Appearance *models.Appearance
}

// UserService implements account lifecycle operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Claim creates an account for a username. The reserved-word and format check
// is a write-time invariant: a username that passes here is reserved forever
// for this account (DB uniqueness backs it up against races).
func (s *UserService) Claim(ctx context.Context, in ClaimInput) (*models.User, error) {
	username := validation.NormalizeUsername(in.Username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, models.NewValidationError("a valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, models.NewValidationError("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(in.Name),
		Plan:     models.PlanFree,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email/password credentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

const (
	maxNameLen = 60
	maxBioLen  = 500
)

// UpdateProfile merges a partial update into the owner's profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if len(*in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 60 characters)")
		}
		user.Name = *in.Name
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Image != nil {
		user.Image = *in.Image
	}
	if in.Appearance != nil {
		user.Appearance = *in.Appearance
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	cache.InvalidateProfile(ctx, user.Username)
	return user, nil
}

// ListUsers returns a page of users with the total count (admin listing).
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SetBanned flips the suspension flag on an account. The profile resolver
// observes the flag on the next resolution.
func (s *UserService) SetBanned(ctx context.Context, targetID uint, banned bool) (*models.User, error) {
	user, err := s.userRepo.SetBanned(ctx, targetID, banned)
	if err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, user.Username)
	return user, nil
}
