package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/internal/domain/repository"
	"github.com/lumoshop/lumoshop-api/pkg/apperror"
	"github.com/lumoshop/lumoshop-api/pkg/helpers"
	"github.com/lumoshop/lumoshop-api/pkg/mailer"
)

// ResetTokenTTL is the validity window for reset and confirmation tokens.
const ResetTokenTTL = time.Hour

// ResetService owns the single-use token lifecycle shared by password
// reset and email confirmation. The two flows differ only in the
// mutation applied on consumption and the notification sent afterwards.
type ResetService struct {
	Repo     repository.UserRepository
	Notifier Notifier
	Logger   *logrus.Logger

	now nowFunc
}

func NewResetService(repo repository.UserRepository, notifier Notifier, logger *logrus.Logger) *ResetService {
	return &ResetService{Repo: repo, Notifier: notifier, Logger: logger, now: time.Now}
}

// WithClock overrides the service clock. Used by expiry tests.
func (s *ResetService) WithClock(now func() time.Time) *ResetService {
	s.now = now
	return s
}

// errTokenNotFoundOrExpired deliberately collapses "wrong token" and
// "expired token" into one outcome to avoid a token-guessing oracle.
func errTokenNotFoundOrExpired() error {
	return apperror.NotFound("reset token is invalid or has expired")
}

// Issue generates a token on the identity and returns it for out-of-band
// delivery. The token is valid for ResetTokenTTL from now.
func (s *ResetService) Issue(ctx context.Context, u *entity.User) (string, error) {
	token, err := helpers.GenerateResetToken()
	if err != nil {
		return "", apperror.Internal(err)
	}
	expires := s.now().Add(ResetTokenTTL)
	if err := s.Repo.SetResetToken(ctx, u.ID, token, expires); err != nil {
		if err == repository.ErrNotFound {
			return "", apperror.NotFound("user not found")
		}
		return "", apperror.Internal(err)
	}
	return token, nil
}

// RequestPasswordReset issues a token for the account with that email and
// mails the reset link. Unknown email surfaces as NotFound.
func (s *ResetService) RequestPasswordReset(ctx context.Context, email, resetURL string) error {
	u, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if err == repository.ErrNotFound {
			return apperror.NotFound("the email address is not associated with any account")
		}
		return apperror.Internal(err)
	}
	token, err := s.Issue(ctx, u)
	if err != nil {
		return err
	}
	s.Notifier.Send(ctx, u.Email, mailer.TemplatePasswordRequest, map[string]any{
		"Name": u.FirstName,
		"Link": resetURL + "/" + token,
	})
	return nil
}

// RequestEmailConfirmation issues a token on the caller's own identity
// and mails the verification link.
func (s *ResetService) RequestEmailConfirmation(ctx context.Context, u *entity.User, verifyURL string) error {
	token, err := s.Issue(ctx, u)
	if err != nil {
		return err
	}
	s.Notifier.Send(ctx, u.Email, mailer.TemplateConfirmEmail, map[string]any{
		"Name": u.FirstName,
		"Link": verifyURL + "/" + token,
	})
	return nil
}

// Validate looks up the identity holding a still-unexpired token without
// consuming it.
func (s *ResetService) Validate(ctx context.Context, token string) (*entity.User, error) {
	u, err := s.Repo.GetByResetToken(ctx, token, s.now())
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errTokenNotFoundOrExpired()
		}
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// consume re-validates then applies the mutation and clears the token
// fields through the store's conditional write. A second presentation of
// the same token fails exactly like an unknown token.
func (s *ResetService) consume(ctx context.Context, token string, m repository.ResetMutation) (*entity.User, error) {
	u, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ConsumeResetToken(ctx, u.ID, token, m); err != nil {
		if err == repository.ErrNotFound {
			// lost the race: someone consumed it between validate and write
			return nil, errTokenNotFoundOrExpired()
		}
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// ConsumePasswordReset sets a new credential hash and burns the token.
func (s *ResetService) ConsumePasswordReset(ctx context.Context, token, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	u, err := s.consume(ctx, token, repository.ResetMutation{PasswordHash: &hash})
	if err != nil {
		return err
	}
	s.Notifier.Send(ctx, u.Email, mailer.TemplatePasswordChanged, map[string]any{
		"Name":  u.FirstName,
		"Email": u.Email,
	})
	return nil
}

// ConsumeEmailConfirmation marks the email confirmed and burns the token.
func (s *ResetService) ConsumeEmailConfirmation(ctx context.Context, token string) error {
	_, err := s.consume(ctx, token, repository.ResetMutation{EmailConfirmed: true})
	return err
}
