package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
)

// ErrNotFound is returned when no row matches; ErrDuplicateEmail when the
// store's uniqueness constraint on email rejects a create or update.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// ResetMutation is applied by ConsumeResetToken in the same atomic update
// that clears the reset token fields.
type ResetMutation struct {
	PasswordHash   *string // set a new credential hash
	EmailConfirmed bool    // mark the email as confirmed
}

// UserRepository is the identity store contract. Reads never include the
// password hash unless the method says so.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByEmailWithPassword is the credential-login read.
	GetByEmailWithPassword(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken matches a still-unexpired reset token.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	// SetResetToken stores a token and its expiry on the identity.
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	// ConsumeResetToken applies the mutation and clears the reset token
	// fields in one conditional write matched on the still-present token.
	// ErrNotFound when the token was already consumed or never set: of two
	// concurrent consumers exactly one succeeds.
	ConsumeResetToken(ctx context.Context, id, expectedToken string, m ResetMutation) error
	SetBanned(ctx context.Context, id string, banned bool) error
	Delete(ctx context.Context, id string) error
}
