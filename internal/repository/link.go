package repository

import (
	"context"
	"errors"

	"bunchly/internal/models"

	"gorm.io/gorm"
)

// LinkRepository defines persistence operations for links.
type LinkRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Link, error)
	// ListActiveByUserID returns a user's active links ordered by position.
	ListActiveByUserID(ctx context.Context, userID uint) ([]models.Link, error)
	ListByUserID(ctx context.Context, userID uint) ([]models.Link, error)
	Create(ctx context.Context, link *models.Link) error
	Update(ctx context.Context, link *models.Link) error
	Delete(ctx context.Context, id uint) error
	// Reorder assigns positions following the order of ids. IDs not owned by
	// userID are ignored.
	Reorder(ctx context.Context, userID uint, ids []uint) error
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository returns a new LinkRepository implementation.
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) GetByID(ctx context.Context, id uint) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Link", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &link, nil
}

func (r *linkRepository) ListActiveByUserID(ctx context.Context, userID uint) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("position ASC, id ASC").
		Find(&links).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return links, nil
}

func (r *linkRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&links).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return links, nil
}

func (r *linkRepository) Create(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *linkRepository) Update(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *linkRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Link{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *linkRepository) Reorder(ctx context.Context, userID uint, ids []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range ids {
			if err := tx.Model(&models.Link{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
