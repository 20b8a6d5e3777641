package user

import (
	"context"
	"time"
)

// PasswordResetToken is the one-time secret delivered to the user. It is
// never persisted, only its fingerprint is.
type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

// ResetTokenFingerprint is an irreversible digest of a reset token, safe to
// store: a leaked database row does not yield a usable token.
type ResetTokenFingerprint string

type PasswordResetTokenGenerator interface {
	// GenerateToken draws a fresh token from a cryptographically secure
	// source and returns it once, together with its fingerprint and the
	// moment the token stops being valid.
	GenerateToken() (PasswordResetToken, ResetTokenFingerprint, time.Time)
	// Fingerprint recomputes the digest of a submitted token.
	Fingerprint(token PasswordResetToken) ResetTokenFingerprint
}

type PasswordResetTokenSender interface {
	SendToken(ctx context.Context, u User, token PasswordResetToken) error
}
