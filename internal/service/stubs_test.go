package service

import (
	"context"
	"time"

	"bunchly/internal/mailer"
	"bunchly/internal/models"
	"bunchly/internal/repository"
)

// userRepoStub is a function-backed UserRepository for service tests. Only
// the funcs a test sets are callable; the rest return zero values.
type userRepoStub struct {
	getByID       func(ctx context.Context, id uint) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
	getByEmail    func(ctx context.Context, email string) (*models.User, error)
	create        func(ctx context.Context, user *models.User) error
	update        func(ctx context.Context, user *models.User) error
	setBanned     func(ctx context.Context, id uint, banned bool) (*models.User, error)
	list          func(ctx context.Context, limit, offset int) ([]models.User, int64, error)
	listEmails    func(ctx context.Context, plan string) ([]string, error)
}

var _ repository.UserRepository = (*userRepoStub)(nil)

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return s.getByID(ctx, id)
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsername == nil {
		return nil, nil
	}
	return s.getByUsername(ctx, username)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail == nil {
		return nil, nil
	}
	return s.getByEmail(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, user)
}

func (s *userRepoStub) SetBanned(ctx context.Context, id uint, banned bool) (*models.User, error) {
	if s.setBanned == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return s.setBanned(ctx, id, banned)
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	if s.list == nil {
		return nil, 0, nil
	}
	return s.list(ctx, limit, offset)
}

func (s *userRepoStub) ListEmails(ctx context.Context, plan string) ([]string, error) {
	if s.listEmails == nil {
		return nil, nil
	}
	return s.listEmails(ctx, plan)
}

type linkRepoStub struct {
	getByID            func(ctx context.Context, id uint) (*models.Link, error)
	listActiveByUserID func(ctx context.Context, userID uint) ([]models.Link, error)
	listByUserID       func(ctx context.Context, userID uint) ([]models.Link, error)
	create             func(ctx context.Context, link *models.Link) error
	update             func(ctx context.Context, link *models.Link) error
	delete             func(ctx context.Context, id uint) error
	reorder            func(ctx context.Context, userID uint, ids []uint) error
}

var _ repository.LinkRepository = (*linkRepoStub)(nil)

func (s *linkRepoStub) GetByID(ctx context.Context, id uint) (*models.Link, error) {
	if s.getByID == nil {
		return nil, models.NewNotFoundError("Link", id)
	}
	return s.getByID(ctx, id)
}

func (s *linkRepoStub) ListActiveByUserID(ctx context.Context, userID uint) ([]models.Link, error) {
	if s.listActiveByUserID == nil {
		return nil, nil
	}
	return s.listActiveByUserID(ctx, userID)
}

func (s *linkRepoStub) ListByUserID(ctx context.Context, userID uint) ([]models.Link, error) {
	if s.listByUserID == nil {
		return nil, nil
	}
	return s.listByUserID(ctx, userID)
}

func (s *linkRepoStub) Create(ctx context.Context, link *models.Link) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, link)
}

func (s *linkRepoStub) Update(ctx context.Context, link *models.Link) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, link)
}

func (s *linkRepoStub) Delete(ctx context.Context, id uint) error {
	if s.delete == nil {
		return nil
	}
	return s.delete(ctx, id)
}

func (s *linkRepoStub) Reorder(ctx context.Context, userID uint, ids []uint) error {
	if s.reorder == nil {
		return nil
	}
	return s.reorder(ctx, userID, ids)
}

type analyticsRepoStub struct {
	insert              func(ctx context.Context, event *models.AnalyticsEvent) error
	countViews          func(ctx context.Context, since time.Time) (int64, error)
	countUniqueVisitors func(ctx context.Context, since time.Time) (int64, error)
	listStamps          func(ctx context.Context, since time.Time) ([]repository.EventStamp, error)
	geoCounts           func(ctx context.Context, since time.Time) ([]models.GeoStat, error)
	categoryCounts      func(ctx context.Context, column string, since time.Time) ([]models.CategoryCount, error)
	topPages            func(ctx context.Context, since time.Time, limit, offset int) ([]models.PageStat, error)
	countDistinctPaths  func(ctx context.Context, since time.Time) (int64, error)
}

var _ repository.AnalyticsRepository = (*analyticsRepoStub)(nil)

func (s *analyticsRepoStub) Insert(ctx context.Context, event *models.AnalyticsEvent) error {
	if s.insert == nil {
		return nil
	}
	return s.insert(ctx, event)
}

func (s *analyticsRepoStub) CountViews(ctx context.Context, since time.Time) (int64, error) {
	if s.countViews == nil {
		return 0, nil
	}
	return s.countViews(ctx, since)
}

func (s *analyticsRepoStub) CountUniqueVisitors(ctx context.Context, since time.Time) (int64, error) {
	if s.countUniqueVisitors == nil {
		return 0, nil
	}
	return s.countUniqueVisitors(ctx, since)
}

func (s *analyticsRepoStub) ListStamps(ctx context.Context, since time.Time) ([]repository.EventStamp, error) {
	if s.listStamps == nil {
		return nil, nil
	}
	return s.listStamps(ctx, since)
}

func (s *analyticsRepoStub) GeoCounts(ctx context.Context, since time.Time) ([]models.GeoStat, error) {
	if s.geoCounts == nil {
		return nil, nil
	}
	return s.geoCounts(ctx, since)
}

func (s *analyticsRepoStub) CategoryCounts(ctx context.Context, column string, since time.Time) ([]models.CategoryCount, error) {
	if s.categoryCounts == nil {
		return nil, nil
	}
	return s.categoryCounts(ctx, column, since)
}

func (s *analyticsRepoStub) TopPages(ctx context.Context, since time.Time, limit, offset int) ([]models.PageStat, error) {
	if s.topPages == nil {
		return nil, nil
	}
	return s.topPages(ctx, since, limit, offset)
}

func (s *analyticsRepoStub) CountDistinctPaths(ctx context.Context, since time.Time) (int64, error) {
	if s.countDistinctPaths == nil {
		return 0, nil
	}
	return s.countDistinctPaths(ctx, since)
}

// settingsRepoStub keeps the singleton in memory.
type settingsRepoStub struct {
	stored models.Settings
	getErr error
}

var _ repository.SettingsRepository = (*settingsRepoStub)(nil)

func (s *settingsRepoStub) Get(ctx context.Context) (*models.Settings, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	copy := s.stored
	copy.ID = models.SettingsID
	return &copy, nil
}

func (s *settingsRepoStub) Save(ctx context.Context, settings *models.Settings) error {
	s.stored = *settings
	return nil
}

// senderStub records outbound messages instead of dialing SMTP.
type senderStub struct {
	sent    []mailer.Outbound
	sendErr func(to string) error
}

var _ mailer.Sender = (*senderStub)(nil)

func (s *senderStub) Send(_ context.Context, msg mailer.Outbound) error {
	if s.sendErr != nil {
		if err := s.sendErr(msg.To); err != nil {
			return err
		}
	}
	s.sent = append(s.sent, msg)
	return nil
}
