package service

import (
	"context"
	"net/url"
	"strings"

	"bunchly/internal/cache"
	"bunchly/internal/models"
	"bunchly/internal/repository"
)

// LinkInput is the payload for creating or updating a link.
type LinkInput struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	IsActive *bool  `json:"isActive"`
}

// LinkService implements link management for profile owners.
type LinkService struct {
	linkRepo repository.LinkRepository
	userRepo repository.UserRepository
}

// NewLinkService returns a new LinkService.
func NewLinkService(linkRepo repository.LinkRepository, userRepo repository.UserRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo, userRepo: userRepo}
}

func validateLinkURL(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return models.NewValidationError("url must be a valid absolute URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return models.NewValidationError("url must use http or https")
	}
	return nil
}

// List returns all of the owner's links, active or not, ordered by position.
func (s *LinkService) List(ctx context.Context, userID uint) ([]models.Link, error) {
	return s.linkRepo.ListByUserID(ctx, userID)
}

// Create appends a link at the end of the owner's page.
func (s *LinkService) Create(ctx context.Context, userID uint, in LinkInput) (*models.Link, error) {
	if err := validateLinkURL(in.URL); err != nil {
		return nil, err
	}

	existing, err := s.linkRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	link := &models.Link{
		UserID:   userID,
		Title:    strings.TrimSpace(in.Title),
		URL:      strings.TrimSpace(in.URL),
		IsActive: true,
		Position: len(existing),
	}
	if in.IsActive != nil {
		link.IsActive = *in.IsActive
	}

	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	s.invalidateOwner(ctx, userID)
	return link, nil
}

// Update merges a partial update into a link the caller owns.
func (s *LinkService) Update(ctx context.Context, userID, linkID uint, in LinkInput) (*models.Link, error) {
	link, err := s.ownedLink(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if in.URL != "" {
		if err := validateLinkURL(in.URL); err != nil {
			return nil, err
		}
		link.URL = strings.TrimSpace(in.URL)
	}
	if in.Title != "" {
		link.Title = strings.TrimSpace(in.Title)
	}
	if in.IsActive != nil {
		link.IsActive = *in.IsActive
	}

	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	s.invalidateOwner(ctx, userID)
	return link, nil
}

// Delete removes a link the caller owns.
func (s *LinkService) Delete(ctx context.Context, userID, linkID uint) error {
	link, err := s.ownedLink(ctx, userID, linkID)
	if err != nil {
		return err
	}
	if err := s.linkRepo.Delete(ctx, link.ID); err != nil {
		return err
	}
	s.invalidateOwner(ctx, userID)
	return nil
}

// Reorder assigns positions following the given id order.
func (s *LinkService) Reorder(ctx context.Context, userID uint, ids []uint) error {
	if len(ids) == 0 {
		return models.NewValidationError("ids is required")
	}
	if err := s.linkRepo.Reorder(ctx, userID, ids); err != nil {
		return err
	}
	s.invalidateOwner(ctx, userID)
	return nil
}

func (s *LinkService) ownedLink(ctx context.Context, userID, linkID uint) (*models.Link, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.UserID != userID {
		return nil, models.NewAuthorizationError("You do not own this link")
	}
	return link, nil
}

func (s *LinkService) invalidateOwner(ctx context.Context, userID uint) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return
	}
	cache.InvalidateProfile(ctx, user.Username)
}
