package user

import (
	"fmt"
	c "signon/internal/core/domain/common"
	e "signon/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID           ID
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	// ResetFingerprint and ResetExpiresAt are set together while a password
	// reset is pending and cleared together once it is resolved.
	ResetFingerprint c.Optional[ResetTokenFingerprint]
	ResetExpiresAt   c.Optional[time.Time]
	CreatedAt        time.Time
}

func (u *User) Validate() error {
	if u.Name == "" {
		return e.NewInvalidStateError(fmt.Sprintf("name is not set for user %d", u.ID))
	}
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	if u.ResetFingerprint.IsPresent != u.ResetExpiresAt.IsPresent {
		return e.NewInvalidStateError(
			fmt.Sprintf("reset fingerprint and expiry are not paired for user %d", u.ID),
		)
	}
	return nil
}

func (u *User) HasPendingReset() bool {
	return u.ResetFingerprint.IsPresent
}
