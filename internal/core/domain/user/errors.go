package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken covers tokens that never existed, expired ones and
	// ones already spent. Callers must not distinguish between these cases.
	ErrInvalidResetToken        = errors.New("invalid or expired password reset token")
	ErrResetTokenDeliveryFailed = errors.New("password reset token could not be delivered")
)
