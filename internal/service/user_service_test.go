package service

import (
	"context"
	"errors"
	"testing"

	"bunchly/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestClaim_CreatesFreeAccount(t *testing.T) {
	t.Parallel()

	var created *models.User
	users := &userRepoStub{
		create: func(_ context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewUserService(users)

	user, err := svc.Claim(context.Background(), ClaimInput{
		Username: "  Alice_99 ",
		Email:    " Alice@Example.COM ",
		Password: "correct-horse",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if created == nil {
		t.Fatal("expected user to be persisted")
	}
	if user.Username != "alice_99" {
		t.Errorf("expected normalized username, got %q", user.Username)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.Plan != models.PlanFree {
		t.Errorf("new accounts must start on the free plan, got %q", user.Plan)
	}
	if user.Password == "correct-horse" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct-horse")) != nil {
		t.Error("stored hash must verify against the original password")
	}
}

func TestClaim_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&userRepoStub{})

	cases := []struct {
		name  string
		input ClaimInput
	}{
		{"reserved username", ClaimInput{Username: "admin", Email: "a@b.com", Password: "longenough"}},
		{"brand prefix", ClaimInput{Username: "bunchly_hq", Email: "a@b.com", Password: "longenough"}},
		{"bad format", ClaimInput{Username: "Not Valid!", Email: "a@b.com", Password: "longenough"}},
		{"missing email", ClaimInput{Username: "valid_name", Password: "longenough"}},
		{"short password", ClaimInput{Username: "valid_name", Email: "a@b.com", Password: "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Claim(context.Background(), tc.input)
			var appErr *models.AppError
			if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
				t.Fatalf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestClaim_RejectsTakenUsername(t *testing.T) {
	t.Parallel()

	users := &userRepoStub{
		getByUsername: func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 1, Username: "taken_name"}, nil
		},
	}
	svc := NewUserService(users)

	_, err := svc.Claim(context.Background(), ClaimInput{
		Username: "taken_name",
		Email:    "a@b.com",
		Password: "longenough",
	})
	if err == nil {
		t.Fatal("expected taken username to be rejected")
	}
}

func TestAuthenticate_UniformFailureMessage(t *testing.T) {
	t.Parallel()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	users := &userRepoStub{
		getByEmail: func(_ context.Context, email string) (*models.User, error) {
			if email == "known@x.com" {
				return &models.User{ID: 1, Email: email, Password: string(hash)}, nil
			}
			return nil, nil
		},
	}
	svc := NewUserService(users)

	_, errUnknown := svc.Authenticate(context.Background(), "missing@x.com", "whatever")
	_, errWrongPw := svc.Authenticate(context.Background(), "known@x.com", "wrong-password")

	if errUnknown == nil || errWrongPw == nil {
		t.Fatal("expected both attempts to fail")
	}
	// Identical messages so a caller cannot probe which emails exist.
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("failure messages must match: %q vs %q", errUnknown, errWrongPw)
	}

	user, err := svc.Authenticate(context.Background(), "known@x.com", "right-password")
	if err != nil || user == nil {
		t.Fatalf("expected valid credentials to authenticate, got %v", err)
	}
}

func TestUpdateProfile_LengthLimits(t *testing.T) {
	t.Parallel()

	users := &userRepoStub{
		getByID: func(context.Context, uint) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice", Name: "Old"}, nil
		},
	}
	svc := NewUserService(users)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	tooLongBio := string(long)

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Bio:    &tooLongBio,
	})
	if err == nil {
		t.Fatal("expected over-length bio to be rejected")
	}

	newName := "New Name"
	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Name:   &newName,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if user.Name != "New Name" {
		t.Errorf("expected name update, got %q", user.Name)
	}
}
