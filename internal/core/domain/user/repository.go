package user

import (
	"context"
	c "signon/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UpdatePasswordInput struct {
	Fingerprint  ResetTokenFingerprint
	PasswordHash PasswordHash
	Now          time.Time
}

type UserRepository interface {
	// Create inserts a new user. Email uniqueness is enforced by the store
	// itself, not by a prior lookup, so two concurrent registrations with the
	// same email cannot both succeed; the loser gets ErrEmailAlreadyExists.
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByResetFingerprint returns the matching user regardless of expiry;
	// the caller must treat an expired match as not found.
	GetByResetFingerprint(ctx context.Context, fingerprint ResetTokenFingerprint) (User, error)
	SetResetToken(ctx context.Context, id ID, fingerprint ResetTokenFingerprint, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id ID) error
	// UpdatePassword replaces the password hash and clears the reset fields in
	// a single conditional update: it matches only while the stored
	// fingerprint equals input.Fingerprint and the reset has not expired at
	// input.Now. Of two racing calls with the same token exactly one matches;
	// the other gets ErrInvalidResetToken.
	UpdatePassword(ctx context.Context, input UpdatePasswordInput) (User, error)
}
