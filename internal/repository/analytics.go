package repository

import (
	"context"
	"time"

	"bunchly/internal/models"

	"gorm.io/gorm"
)

// EventStamp is the minimal projection used for in-process time bucketing.
type EventStamp struct {
	CreatedAt time.Time
	VisitorID string
}

// AnalyticsRepository defines read/append operations over page view events.
// All reads are grouped with portable SQL so the same queries run on Postgres
// in production and SQLite in tests; calendar bucketing happens in the
// service layer.
type AnalyticsRepository interface {
	Insert(ctx context.Context, event *models.AnalyticsEvent) error
	CountViews(ctx context.Context, since time.Time) (int64, error)
	CountUniqueVisitors(ctx context.Context, since time.Time) (int64, error)
	ListStamps(ctx context.Context, since time.Time) ([]EventStamp, error)
	GeoCounts(ctx context.Context, since time.Time) ([]models.GeoStat, error)
	CategoryCounts(ctx context.Context, column string, since time.Time) ([]models.CategoryCount, error)
	TopPages(ctx context.Context, since time.Time, limit, offset int) ([]models.PageStat, error)
	CountDistinctPaths(ctx context.Context, since time.Time) (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository returns a new AnalyticsRepository implementation.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Insert(ctx context.Context, event *models.AnalyticsEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *analyticsRepository) CountViews(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *analyticsRepository) CountUniqueVisitors(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("created_at >= ?", since).
		Distinct("visitor_id").
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *analyticsRepository) ListStamps(ctx context.Context, since time.Time) ([]EventStamp, error) {
	var stamps []EventStamp
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("created_at", "visitor_id").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&stamps).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return stamps, nil
}

func (r *analyticsRepository) GeoCounts(ctx context.Context, since time.Time) ([]models.GeoStat, error) {
	var stats []models.GeoStat
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("country", "city", "COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("country").
		Group("city").
		Order("count DESC").
		Find(&stats).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}

// categoryColumns whitelists groupable columns so callers can never inject
// arbitrary SQL through the column parameter.
var categoryColumns = map[string]string{
	"device":  "device",
	"browser": "browser",
	"os":      "os",
}

func (r *analyticsRepository) CategoryCounts(ctx context.Context, column string, since time.Time) ([]models.CategoryCount, error) {
	col, ok := categoryColumns[column]
	if !ok {
		return nil, models.NewInternalError(gorm.ErrInvalidField)
	}

	var counts []models.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select(col+" AS name", "COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group(col).
		Order("count DESC").
		Find(&counts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}

func (r *analyticsRepository) TopPages(ctx context.Context, since time.Time, limit, offset int) ([]models.PageStat, error) {
	var stats []models.PageStat
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("path", "COUNT(*) AS views", "COUNT(DISTINCT visitor_id) AS visitors").
		Where("created_at >= ?", since).
		Group("path").
		Order("views DESC, path ASC").
		Limit(limit).
		Offset(offset).
		Find(&stats).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}

func (r *analyticsRepository) CountDistinctPaths(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("created_at >= ?", since).
		Distinct("path").
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
