package service

import (
	"context"
	"errors"
	"testing"

	"bunchly/internal/cache"
	"bunchly/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// withTestCache points the cache package at a throwaway miniredis for the
// duration of the test. Callers must not use t.Parallel: the client is a
// package-level seam shared with the parallel tests, which expect no cache.
func withTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestResolve_Found(t *testing.T) {
	t.Parallel()

	users := &userRepoStub{
		getByUsername: func(_ context.Context, username string) (*models.User, error) {
			if username != "alice" {
				t.Errorf("expected normalized lookup for alice, got %q", username)
			}
			return &models.User{
				ID:       7,
				Username: "alice",
				Name:     "Alice",
				Bio:      "hi",
				Plan:     models.PlanPro,
			}, nil
		},
	}
	links := &linkRepoStub{
		listActiveByUserID: func(_ context.Context, userID uint) ([]models.Link, error) {
			if userID != 7 {
				t.Errorf("expected links lookup for user 7, got %d", userID)
			}
			return []models.Link{
				{ID: 1, UserID: 7, Title: "Blog", URL: "https://example.com", Position: 0},
				{ID: 2, UserID: 7, Title: "Shop", URL: "https://example.com/shop", Position: 1},
			}, nil
		},
	}

	svc := NewProfileService(users, links)
	result := svc.Resolve(context.Background(), "  ALICE ")

	if result.State != ProfileFound {
		t.Fatalf("expected ProfileFound, got %v", result.State)
	}
	if result.User == nil || result.User.Username != "alice" {
		t.Fatalf("expected public user alice, got %+v", result.User)
	}
	if len(result.Links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(result.Links))
	}
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(&userRepoStub{}, &linkRepoStub{})
	result := svc.Resolve(context.Background(), "nobody")

	if result.State != ProfileNotFound {
		t.Fatalf("expected ProfileNotFound, got %v", result.State)
	}
	if result.User != nil || result.Links != nil {
		t.Fatal("not-found resolution must carry no profile data")
	}
}

func TestResolve_SuspendedLeaksNothing(t *testing.T) {
	t.Parallel()

	users := &userRepoStub{
		getByUsername: func(context.Context, string) (*models.User, error) {
			return &models.User{
				ID:       3,
				Username: "banned_user",
				Name:     "Should Not Leak",
				Bio:      "Should Not Leak",
				IsBanned: true,
			}, nil
		},
	}
	links := &linkRepoStub{
		listActiveByUserID: func(context.Context, uint) ([]models.Link, error) {
			t.Fatal("suspended profiles must not fetch links")
			return nil, nil
		},
	}

	svc := NewProfileService(users, links)
	result := svc.Resolve(context.Background(), "banned_user")

	if result.State != ProfileSuspended {
		t.Fatalf("expected ProfileSuspended, got %v", result.State)
	}
	if result.User != nil || result.Links != nil {
		t.Fatal("suspended resolution must carry no profile data")
	}
}

func TestResolve_CachesFoundProfile(t *testing.T) {
	mr := withTestCache(t)

	lookups := 0
	users := &userRepoStub{
		getByUsername: func(_ context.Context, username string) (*models.User, error) {
			lookups++
			return &models.User{ID: 7, Username: username, Name: "Alice"}, nil
		},
	}
	links := &linkRepoStub{
		listActiveByUserID: func(context.Context, uint) ([]models.Link, error) {
			return []models.Link{{ID: 1, UserID: 7, Title: "Blog", URL: "https://example.com"}}, nil
		},
	}
	svc := NewProfileService(users, links)
	ctx := context.Background()

	result := svc.Resolve(ctx, "alice")
	if result.State != ProfileFound || lookups != 1 {
		t.Fatalf("expected one storage lookup on a cold cache, got state=%v lookups=%d", result.State, lookups)
	}
	if !mr.Exists(cache.ProfileKey("alice")) {
		t.Fatal("expected the resolved profile to be written to the cache")
	}

	// Second resolution is served from the cache.
	result = svc.Resolve(ctx, "alice")
	if lookups != 1 {
		t.Fatalf("expected cached resolution, storage was hit %d times", lookups)
	}
	if result.State != ProfileFound || result.User == nil || result.User.Name != "Alice" {
		t.Fatalf("cached resolution lost data: %+v", result)
	}
	if len(result.Links) != 1 || result.Links[0].Title != "Blog" {
		t.Fatalf("cached resolution lost links: %+v", result.Links)
	}

	// Invalidation forces the next resolution back to storage.
	cache.InvalidateProfile(ctx, "alice")
	svc.Resolve(ctx, "alice")
	if lookups != 2 {
		t.Fatalf("expected a storage lookup after invalidation, got %d", lookups)
	}
}

func TestResolve_SuspendedNotCached(t *testing.T) {
	mr := withTestCache(t)

	lookups := 0
	users := &userRepoStub{
		getByUsername: func(_ context.Context, username string) (*models.User, error) {
			lookups++
			return &models.User{ID: 3, Username: username, IsBanned: true}, nil
		},
	}
	svc := NewProfileService(users, &linkRepoStub{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if result := svc.Resolve(ctx, "banned_user"); result.State != ProfileSuspended {
			t.Fatalf("expected ProfileSuspended, got %v", result.State)
		}
	}
	if lookups != 2 {
		t.Fatalf("suspended profiles must not be cached, storage was hit %d times", lookups)
	}
	if mr.Exists(cache.ProfileKey("banned_user")) {
		t.Fatal("suspended profile leaked into the cache")
	}
}

func TestResolve_StorageErrorFailsClosed(t *testing.T) {
	t.Parallel()

	users := &userRepoStub{
		getByUsername: func(context.Context, string) (*models.User, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewProfileService(users, &linkRepoStub{})
	result := svc.Resolve(context.Background(), "anyone")

	if result.State != ProfileNotFound {
		t.Fatalf("storage failure must degrade to ProfileNotFound, got %v", result.State)
	}
}

func TestResolve_LinkErrorFailsClosed(t *testing.T) {
	t.Parallel()

	users := &userRepoStub{
		getByUsername: func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice"}, nil
		},
	}
	links := &linkRepoStub{
		listActiveByUserID: func(context.Context, uint) ([]models.Link, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewProfileService(users, links)
	result := svc.Resolve(context.Background(), "alice")

	if result.State != ProfileNotFound {
		t.Fatalf("link failure must degrade to ProfileNotFound, got %v", result.State)
	}
}
