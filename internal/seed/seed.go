// Package seed provides database seeding utilities for development and demo
// environments.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"bunchly/internal/models"
	"bunchly/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumEvents   int
	ShouldClean bool
	// SkipBcrypt replaces password hashing with a constant, which is much
	// faster when seeding hundreds of accounts for a demo box.
	SkipBcrypt bool
}

var (
	linkTitles = []string{
		"My Portfolio", "Latest Drop", "YouTube Channel", "Newsletter",
		"Book a Call", "My Shop", "Podcast", "Twitch", "GitHub", "Blog",
		"Support Me", "New Single", "Free Guide", "Course", "Discord",
	}

	trackedPaths = []string{
		"/", "/pricing", "/about", "/privacy", "/terms",
	}

	devices  = []string{"Mobile", "Desktop", "Tablet"}
	browsers = []string{"Chrome", "Safari", "Firefox", "Edge"}
	oses     = []string{"iOS", "Android", "Windows", "macOS", "Linux"}

	countries = map[string][]string{
		"United States":  {"New York", "Los Angeles", "Chicago", "Austin"},
		"United Kingdom": {"London", "Manchester", "Bristol"},
		"Germany":        {"Berlin", "Munich", "Hamburg"},
		"Brazil":         {"São Paulo", "Rio de Janeiro"},
		"Japan":          {"Tokyo", "Osaka"},
		"Canada":         {"Toronto", "Vancouver"},
	}
)

// Run populates the database with demo data.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Seeding %d users and %d analytics events...", opts.NumUsers, opts.NumEvents)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	users, err := seedUsers(db, opts, r)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := seedLinks(db, users, r); err != nil {
		return fmt.Errorf("seed links: %w", err)
	}
	if err := seedEvents(db, users, opts.NumEvents, r); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	if err := seedReports(db, users, r); err != nil {
		return fmt.Errorf("seed reports: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func hashPassword(plain string, skip bool) (string, error) {
	if skip {
		return "seed-password-not-hashed", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func seedUsers(db *gorm.DB, opts Options, r *rand.Rand) ([]models.User, error) {
	count := opts.NumUsers
	if count <= 0 {
		count = 25
	}

	users := make([]models.User, 0, count+1)

	adminHash, err := hashPassword("admin-password", opts.SkipBcrypt)
	if err != nil {
		return nil, err
	}
	admin := models.User{
		Username: "staff_admin",
		Email:    "admin@bunchly.app",
		Password: adminHash,
		Name:     "Bunchly Staff",
		Plan:     models.PlanPro,
		IsAdmin:  true,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < count; i++ {
		username := validation.NormalizeUsername(
			strings.ReplaceAll(gofakeit.Username(), ".", "_") + fmt.Sprintf("%d", gofakeit.Number(10, 99)))
		if validation.ValidateUsername(username) != nil {
			username = fmt.Sprintf("creator_%d%d", i, gofakeit.Number(100, 999))
		}

		hash, err := hashPassword(gofakeit.Password(true, true, true, false, false, 12), opts.SkipBcrypt)
		if err != nil {
			return nil, err
		}

		plan := models.PlanFree
		if r.Intn(100) < 30 {
			plan = models.PlanPro
		}

		user := models.User{
			Username: username,
			Email:    gofakeit.Email(),
			Password: hash,
			Name:     gofakeit.Name(),
			Bio:      gofakeit.Sentence(8),
			Image:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", uuid.NewString()),
			Plan:     plan,
			IsBanned: r.Intn(100) < 5,
		}
		if err := db.Create(&user).Error; err != nil {
			// Duplicate usernames from the generator are fine to skip.
			continue
		}
		users = append(users, user)
	}

	return users, nil
}

func seedLinks(db *gorm.DB, users []models.User, r *rand.Rand) error {
	for _, user := range users {
		n := 2 + r.Intn(5)
		links := make([]models.Link, 0, n)
		for pos := 0; pos < n; pos++ {
			links = append(links, models.Link{
				UserID:   user.ID,
				Title:    linkTitles[r.Intn(len(linkTitles))],
				URL:      gofakeit.URL(),
				IsActive: r.Intn(100) < 85,
				Position: pos,
			})
		}
		if err := db.Create(&links).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedEvents(db *gorm.DB, users []models.User, count int, r *rand.Rand) error {
	if count <= 0 {
		count = 2000
	}

	// A smaller visitor pool than event count so uniques diverge from views.
	visitors := make([]string, count/4+1)
	for i := range visitors {
		visitors[i] = uuid.NewString()
	}

	countryNames := make([]string, 0, len(countries))
	for name := range countries {
		countryNames = append(countryNames, name)
	}

	batch := make([]models.AnalyticsEvent, 0, 500)
	for i := 0; i < count; i++ {
		path := trackedPaths[r.Intn(len(trackedPaths))]
		if r.Intn(100) < 60 && len(users) > 0 {
			path = "/" + users[r.Intn(len(users))].Username
		}

		country := countryNames[r.Intn(len(countryNames))]
		cities := countries[country]

		batch = append(batch, models.AnalyticsEvent{
			Path:      path,
			VisitorID: visitors[r.Intn(len(visitors))],
			IP:        gofakeit.IPv4Address(),
			Country:   country,
			City:      cities[r.Intn(len(cities))],
			Device:    devices[r.Intn(len(devices))],
			OS:        oses[r.Intn(len(oses))],
			Browser:   browsers[r.Intn(len(browsers))],
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(30*24*60)) * time.Minute),
		})

		if len(batch) == cap(batch) {
			if err := db.Create(&batch).Error; err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := db.Create(&batch).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedReports(db *gorm.DB, users []models.User, r *rand.Rand) error {
	if len(users) == 0 {
		return nil
	}

	reasons := []string{
		models.ReportReasonSpam,
		models.ReportReasonInappropriate,
		models.ReportReasonImpersonation,
		models.ReportReasonOther,
	}

	n := 5 + r.Intn(10)
	for i := 0; i < n; i++ {
		report := models.Report{
			Username:      users[r.Intn(len(users))].Username,
			Reason:        reasons[r.Intn(len(reasons))],
			Details:       gofakeit.Sentence(12),
			ReporterEmail: gofakeit.Email(),
			Status:        models.ReportStatusOpen,
		}
		if err := db.Create(&report).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []any{
		&models.AnalyticsEvent{},
		&models.Report{},
		&models.Feedback{},
		&models.Link{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
