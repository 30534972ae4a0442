package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/pkg/apperror"
	"github.com/lumoshop/lumoshop-api/pkg/helpers"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepo, *recordingNotifier) {
	t.Helper()
	repo := newFakeUserRepo()
	notifier := &recordingNotifier{}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewUserService(repo, jwt, notifier, logrus.New(), "boss@example.com")
	return svc, repo, notifier
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, notifier := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{
		Username: "jane", FirstName: "Jane", LastName: "Doe",
		Email: "Jane@Example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("email should be normalized, got %s", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatal("returned identity must not carry the password hash")
	}
	if u.Role != entity.RoleUser {
		t.Fatalf("role = %s, want %s", u.Role, entity.RoleUser)
	}
	if got := notifier.all(); len(got) != 1 || got[0].Template != "welcome" {
		t.Fatalf("expected a welcome email, got %+v", got)
	}

	logged, token, exp, err := svc.Login(ctx, "jane@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != u.ID || token == "" {
		t.Fatalf("unexpected login result: %+v token=%q", logged, token)
	}
	if !exp.After(time.Now()) {
		t.Fatal("session expiry should be in the future")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	in := SignupInput{Username: "jane", Email: "jane@example.com", Password: "secret123"}
	if _, err := svc.Signup(ctx, in); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.Signup(ctx, in)
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Fatalf("expected BadRequest for duplicate email, got %v", err)
	}
}

func TestLoginRejections(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Username: "jane", Email: "jane@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	// wrong password is unauthorized
	if _, _, _, err := svc.Login(ctx, "jane@example.com", "wrong"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("wrong password: expected Unauthorized, got %v", err)
	}

	// unknown account and banned account fail identically
	_, _, _, errUnknown := svc.Login(ctx, "ghost@example.com", "secret123")
	if err := repo.SetBanned(ctx, u.ID, true); err != nil {
		t.Fatalf("ban: %v", err)
	}
	_, _, _, errBanned := svc.Login(ctx, "jane@example.com", "secret123")

	if !errors.Is(errUnknown, apperror.ErrNotFound) || !errors.Is(errBanned, apperror.ErrNotFound) {
		t.Fatalf("expected NotFound for both, got %v and %v", errUnknown, errBanned)
	}
	if errUnknown.Error() != errBanned.Error() {
		t.Fatalf("banned and unknown accounts must be indistinguishable: %q vs %q", errUnknown, errBanned)
	}
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Username: "jane", Email: "jane@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := svc.ChangePassword(ctx, u.ID, "nope", "newpass123"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("expected Unauthorized for wrong old password, got %v", err)
	}
	if err := svc.ChangePassword(ctx, u.ID, "secret123", "newpass123"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if !helpers.CheckPassword(repo.users[u.ID].PasswordHash, "newpass123") {
		t.Fatal("password hash was not updated")
	}
}

func TestUpdateProfileEmailUniqueness(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	a, err := svc.Signup(ctx, SignupInput{Username: "a", Email: "a@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("signup a: %v", err)
	}
	if _, err := svc.Signup(ctx, SignupInput{Username: "b", Email: "b@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("signup b: %v", err)
	}

	// taking b's email is refused
	if _, err := svc.UpdateProfile(ctx, a, UpdateProfileInput{Email: "b@example.com"}); !errors.Is(err, apperror.ErrBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}

	// keeping your own email is not a conflict
	updated, err := svc.UpdateProfile(ctx, a, UpdateProfileInput{Email: "A@Example.com", FirstName: "Ann"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "a@example.com" || updated.FirstName != "Ann" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
}

func TestReservedAdminCannotBeBannedOrDeleted(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	ctx := context.Background()

	admin, err := svc.Signup(ctx, SignupInput{Username: "boss", Email: "Boss@Example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := svc.ToggleBan(ctx, admin.ID); !errors.Is(err, apperror.ErrBadRequest) {
		t.Fatalf("ban: expected BadRequest, got %v", err)
	}
	if err := svc.DeleteUser(ctx, admin.ID); !errors.Is(err, apperror.ErrBadRequest) {
		t.Fatalf("delete: expected BadRequest, got %v", err)
	}
	if repo.users[admin.ID].IsBanned {
		t.Fatal("reserved admin must never be banned")
	}
}

func TestToggleBanFlips(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Username: "jane", Email: "jane@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	banned, err := svc.ToggleBan(ctx, u.ID)
	if err != nil || !banned.IsBanned {
		t.Fatalf("first toggle should ban: %+v err=%v", banned, err)
	}
	unbanned, err := svc.ToggleBan(ctx, u.ID)
	if err != nil || unbanned.IsBanned {
		t.Fatalf("second toggle should unban: %+v err=%v", unbanned, err)
	}

	if _, err := svc.ToggleBan(ctx, "404"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("unknown id: expected NotFound, got %v", err)
	}
}
