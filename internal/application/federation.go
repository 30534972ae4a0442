package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/internal/domain/repository"
	"github.com/lumoshop/lumoshop-api/pkg/apperror"
)

// FederatedClaims is the normalized payload extracted from a verified
// third-party identity token.
type FederatedClaims struct {
	ExternalID    string
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
	PhotoURL      string
}

// TokenVerifier verifies a raw third-party identity token (signature and
// audience) and returns its claims. Implementations return identity
// facts only; user creation and linking happen here.
type TokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*FederatedClaims, error)
}

// FederationService mediates third-party identity-token login.
type FederationService struct {
	Repo       repository.UserRepository
	Verifier   TokenVerifier
	AdminEmail string
	Logger     *logrus.Logger
}

func NewFederationService(repo repository.UserRepository, verifier TokenVerifier, adminEmail string, logger *logrus.Logger) *FederationService {
	return &FederationService{Repo: repo, Verifier: verifier, AdminEmail: adminEmail, Logger: logger}
}

// Authenticate verifies the assertion and finds or creates the matching
// identity. An unverified third-party email never establishes identity.
// An existing identity is returned unchanged: federation does not
// overwrite a local profile.
func (s *FederationService) Authenticate(ctx context.Context, rawIDToken string) (*entity.User, error) {
	claims, err := s.Verifier.Verify(ctx, rawIDToken)
	if err != nil {
		s.Logger.WithError(err).Warn("federation token rejected")
		return nil, apperror.Wrap(apperror.ErrForbidden, err, "authentication failed")
	}
	if !claims.EmailVerified {
		return nil, apperror.Forbidden("authentication failed")
	}

	email := NormalizeEmail(claims.Email)
	u, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if err != repository.ErrNotFound {
		return nil, apperror.Internal(err)
	}

	role := entity.RoleUser
	if email == NormalizeEmail(s.AdminEmail) {
		role = entity.RoleAdmin
	}
	u = &entity.User{
		Email:     email,
		GoogleID:  claims.ExternalID,
		Username:  claims.GivenName,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		PhotoURL:  claims.PhotoURL,
		Role:      role,
	}
	if u.PhotoURL == "" {
		u.PhotoURL = entity.DefaultPhotoURL
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, apperror.Internal(err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("identity created via federation")
	return u, nil
}

// NormalizeEmail lowercases and trims an address before any store lookup,
// keeping the email uniqueness invariant case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nowFunc is the injected clock shared by the services in this package.
type nowFunc func() time.Time
