// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"log/slog"

	"bunchly/internal/cache"
	"bunchly/internal/middleware"
	"bunchly/internal/models"
	"bunchly/internal/observability"
	"bunchly/internal/repository"
	"bunchly/internal/validation"
)

// ProfileState is the outcome of a public profile resolution.
type ProfileState int

const (
	// ProfileFound means the user exists and is not banned.
	ProfileFound ProfileState = iota
	// ProfileNotFound means no user with that username exists. Backend
	// failures also resolve here (fail-closed).
	ProfileNotFound
	// ProfileSuspended means the user exists but is banned. Public data is
	// withheld; only the suspension flag itself is observable.
	ProfileSuspended
)

// ProfileResult is the tagged result of a resolution. User and Links are
// populated only when State is ProfileFound.
type ProfileResult struct {
	State ProfileState
	User  *models.PublicUser
	Links []models.Link
}

// ProfileService resolves usernames to public profile pages.
type ProfileService struct {
	userRepo repository.UserRepository
	linkRepo repository.LinkRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, linkRepo repository.LinkRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo, linkRepo: linkRepo}
}

// profilePage is the cacheable payload of a found profile. Suspended and
// missing profiles are never cached so moderation takes effect immediately.
type profilePage struct {
	User  models.PublicUser `json:"user"`
	Links []models.Link     `json:"links"`
}

// Resolve looks up a public profile by username, case-insensitively. It is a
// pure read: no counter bumps, no side effects beyond metrics. Storage errors
// degrade to ProfileNotFound so probing a failing backend looks identical to
// probing a missing profile. Found profiles are cached under
// cache.ProfileKey(username); profile, link, and ban mutations invalidate.
func (s *ProfileService) Resolve(ctx context.Context, username string) ProfileResult {
	username = validation.NormalizeUsername(username)

	var page profilePage
	if found, err := cache.GetJSON(ctx, cache.ProfileKey(username), &page); err == nil && found {
		observability.ProfileResolutions.WithLabelValues("found").Inc()
		return ProfileResult{State: ProfileFound, User: &page.User, Links: page.Links}
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "profile lookup failed, returning not found",
			slog.String("username", username), slog.String("error", err.Error()))
		observability.ProfileResolutions.WithLabelValues("not_found").Inc()
		return ProfileResult{State: ProfileNotFound}
	}
	if user == nil {
		observability.ProfileResolutions.WithLabelValues("not_found").Inc()
		return ProfileResult{State: ProfileNotFound}
	}

	if user.IsBanned {
		// The suspension state itself is observable (product decision);
		// name, bio, image, and links must not leak.
		observability.ProfileResolutions.WithLabelValues("suspended").Inc()
		return ProfileResult{State: ProfileSuspended}
	}

	links, err := s.linkRepo.ListActiveByUserID(ctx, user.ID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "link listing failed, returning not found",
			slog.String("username", username), slog.String("error", err.Error()))
		observability.ProfileResolutions.WithLabelValues("not_found").Inc()
		return ProfileResult{State: ProfileNotFound}
	}

	public := user.Public()
	_ = cache.SetJSON(ctx, cache.ProfileKey(username),
		profilePage{User: public, Links: links}, cache.ProfileTTL)
	observability.ProfileResolutions.WithLabelValues("found").Inc()
	return ProfileResult{State: ProfileFound, User: &public, Links: links}
}
