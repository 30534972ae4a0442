package application

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/pkg/apperror"
)

func federatedClaims() *FederatedClaims {
	return &FederatedClaims{
		ExternalID:    "google-sub-1",
		Email:         "Jane@Example.com",
		EmailVerified: true,
		GivenName:     "Jane",
		FamilyName:    "Doe",
		PhotoURL:      "https://lh3.example/photo.jpg",
	}
}

func TestAuthenticateCreatesIdentityOnFirstLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewFederationService(repo, &fakeVerifier{claims: federatedClaims()}, "boss@example.com", logrus.New())

	u, err := svc.Authenticate(context.Background(), "raw-token")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("email should be normalized, got %s", u.Email)
	}
	if u.GoogleID != "google-sub-1" || u.Role != entity.RoleUser {
		t.Fatalf("unexpected identity: %+v", u)
	}
	if u.PhotoURL != "https://lh3.example/photo.jpg" {
		t.Fatalf("photo url not carried over: %s", u.PhotoURL)
	}
}

func TestAuthenticateReturnsExistingIdentityUnchanged(t *testing.T) {
	repo := newFakeUserRepo()
	existing := &entity.User{Email: "jane@example.com", Username: "janed", FirstName: "Janet", Role: entity.RoleUser}
	if err := repo.Create(context.Background(), existing); err != nil {
		t.Fatalf("create: %v", err)
	}

	svc := NewFederationService(repo, &fakeVerifier{claims: federatedClaims()}, "boss@example.com", logrus.New())
	u, err := svc.Authenticate(context.Background(), "raw-token")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.ID != existing.ID || u.Username != "janed" || u.FirstName != "Janet" {
		t.Fatalf("federation must not overwrite the local profile: %+v", u)
	}
}

func TestAuthenticateRejectsUnverifiedEmail(t *testing.T) {
	repo := newFakeUserRepo()
	claims := federatedClaims()
	claims.EmailVerified = false
	svc := NewFederationService(repo, &fakeVerifier{claims: claims}, "", logrus.New())

	_, err := svc.Authenticate(context.Background(), "raw-token")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatal("no identity may be created from an unverified email")
	}
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	svc := NewFederationService(newFakeUserRepo(), &fakeVerifier{err: errors.New("bad signature")}, "", logrus.New())

	_, err := svc.Authenticate(context.Background(), "garbage")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}

func TestAuthenticateGrantsAdminRoleToReservedEmail(t *testing.T) {
	repo := newFakeUserRepo()
	claims := federatedClaims()
	claims.Email = "Boss@Example.com"
	svc := NewFederationService(repo, &fakeVerifier{claims: claims}, "boss@example.com", logrus.New())

	u, err := svc.Authenticate(context.Background(), "raw-token")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Role != entity.RoleAdmin {
		t.Fatalf("reserved email should get the admin role, got %s", u.Role)
	}
}
