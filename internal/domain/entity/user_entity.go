package entity

import (
	"time"
)

// Roles a user can hold. Exactly one identity, the one whose email
// equals the configured admin email, is created with RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const DefaultPhotoURL = "https://i.ibb.co/GP2pC1g/rsz-avatar.png"

// User is the aggregate root for the identity domain.
//
// PasswordHash is empty for federation-only identities and is excluded
// from store reads unless explicitly selected. ResetToken and
// ResetTokenExpires are either both set or both nil; consumption clears
// them in the same update that applies the requested mutation.
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	GoogleID          string
	Username          string
	FirstName         string
	LastName          string
	PhotoURL          string
	Role              string
	IsBanned          bool
	EmailConfirmed    bool
	ResetToken        *string
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasValidResetToken reports whether a reset token is present and not
// yet expired at the given instant.
func (u *User) HasValidResetToken(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpires != nil && now.Before(*u.ResetTokenExpires)
}
