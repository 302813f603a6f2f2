package service

import (
	"context"
	"time"

	"bunchly/internal/models"
	"bunchly/internal/repository"
)

// Period is a closed analytics aggregation window.
type Period struct {
	// Name is the wire value: "24h", "7d", or "30d".
	Name string
	// Span is the total lookback window.
	Span time.Duration
	// Buckets is the number of time-series buckets.
	Buckets int
	// Hourly selects hourly buckets (24h) instead of daily ones (7d/30d).
	Hourly bool
}

var periods = map[string]Period{
	"24h": {Name: "24h", Span: 24 * time.Hour, Buckets: 24, Hourly: true},
	"7d":  {Name: "7d", Span: 7 * 24 * time.Hour, Buckets: 7},
	"30d": {Name: "30d", Span: 30 * 24 * time.Hour, Buckets: 30},
}

// ParsePeriod validates a wire period value. An empty value defaults to 7d.
func ParsePeriod(raw string) (Period, error) {
	if raw == "" {
		raw = "7d"
	}
	p, ok := periods[raw]
	if !ok {
		return Period{}, models.NewValidationError("period must be one of 24h, 7d, 30d")
	}
	return p, nil
}

// activeWindow is the lookback used for the activeUsers counter, independent
// of the requested period.
const activeWindow = 5 * time.Minute

// AnalyticsService aggregates pre-recorded page view events. All operations
// are pure reads and tolerate a period with zero events.
type AnalyticsService struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

// NewAnalyticsService returns a new AnalyticsService.
func NewAnalyticsService(repo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: time.Now}
}

// WithClock replaces the service clock. Tests use this to pin bucketing.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Overview returns the headline counters for a period.
func (s *AnalyticsService) Overview(ctx context.Context, p Period) (*models.Overview, error) {
	now := s.now()

	views, err := s.repo.CountViews(ctx, now.Add(-p.Span))
	if err != nil {
		return nil, err
	}
	visitors, err := s.repo.CountUniqueVisitors(ctx, now.Add(-p.Span))
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountUniqueVisitors(ctx, now.Add(-activeWindow))
	if err != nil {
		return nil, err
	}

	return &models.Overview{
		TotalViews:     views,
		UniqueVisitors: visitors,
		ActiveUsers:    active,
	}, nil
}

// TimeSeries returns one bucket per calendar unit across the period, zero
// filled and ordered chronologically ascending. Bucketing happens in-process
// so the same code path serves Postgres and SQLite.
func (s *AnalyticsService) TimeSeries(ctx context.Context, p Period) ([]models.TimeSeriesBucket, error) {
	// Truncate truncates against the UTC epoch, so daily boundaries are UTC
	// midnights. Labels must be rendered in UTC too or a non-UTC host prints
	// the previous local day for each boundary.
	now := s.now().UTC()

	var unit time.Duration
	var layout string
	if p.Hourly {
		unit = time.Hour
		layout = "2006-01-02 15:00"
	} else {
		unit = 24 * time.Hour
		layout = "2006-01-02"
	}

	// The newest bucket is the one containing now; older buckets step back
	// one unit each.
	end := now.Truncate(unit)
	start := end.Add(-time.Duration(p.Buckets-1) * unit)

	stamps, err := s.repo.ListStamps(ctx, start)
	if err != nil {
		return nil, err
	}

	views := make([]int64, p.Buckets)
	visitors := make([]map[string]struct{}, p.Buckets)

	for _, stamp := range stamps {
		idx := int(stamp.CreatedAt.Truncate(unit).Sub(start) / unit)
		if idx < 0 || idx >= p.Buckets {
			continue
		}
		views[idx]++
		if visitors[idx] == nil {
			visitors[idx] = make(map[string]struct{})
		}
		visitors[idx][stamp.VisitorID] = struct{}{}
	}

	buckets := make([]models.TimeSeriesBucket, p.Buckets)
	for i := range buckets {
		buckets[i] = models.TimeSeriesBucket{
			Date:     start.Add(time.Duration(i) * unit).Format(layout),
			Views:    views[i],
			Visitors: int64(len(visitors[i])),
		}
	}
	return buckets, nil
}

// Geo returns per-country view counts for a period.
func (s *AnalyticsService) Geo(ctx context.Context, p Period) ([]models.GeoStat, error) {
	stats, err := s.repo.GeoCounts(ctx, s.now().Add(-p.Span))
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []models.GeoStat{}
	}
	return stats, nil
}

// Devices returns device/browser/OS breakdowns for a period.
func (s *AnalyticsService) Devices(ctx context.Context, p Period) (*models.DeviceBreakdown, error) {
	since := s.now().Add(-p.Span)

	breakdown := &models.DeviceBreakdown{
		Devices:  []models.CategoryCount{},
		Browsers: []models.CategoryCount{},
		OS:       []models.CategoryCount{},
	}

	for column, dest := range map[string]*[]models.CategoryCount{
		"device":  &breakdown.Devices,
		"browser": &breakdown.Browsers,
		"os":      &breakdown.OS,
	} {
		counts, err := s.repo.CategoryCounts(ctx, column, since)
		if err != nil {
			return nil, err
		}
		if counts != nil {
			*dest = counts
		}
	}

	return breakdown, nil
}

// TopPages returns the paginated top-pages listing, sorted by views
// descending with ties broken by path ascending. Zero events yields an empty
// page with pages = 1.
func (s *AnalyticsService) TopPages(ctx context.Context, p Period, page, limit int) (*models.TopPages, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	since := s.now().Add(-p.Span)

	total, err := s.repo.CountDistinctPaths(ctx, since)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}

	stats, err := s.repo.TopPages(ctx, since, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []models.PageStat{}
	}

	return &models.TopPages{
		Data: stats,
		Pagination: models.Pagination{
			Page:  page,
			Pages: pages,
			Total: total,
		},
	}, nil
}

// Track records one page view event.
func (s *AnalyticsService) Track(ctx context.Context, event *models.AnalyticsEvent) error {
	if event.Path == "" {
		return models.NewValidationError("path is required")
	}
	if event.VisitorID == "" {
		return models.NewValidationError("visitorId is required")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
	}
	for _, field := range []*string{&event.Country, &event.City, &event.Device, &event.OS, &event.Browser} {
		if *field == "" {
			*field = "Unknown"
		}
	}
	return s.repo.Insert(ctx, event)
}
