package resetpassword

import (
	"context"
	"errors"
	e "signon/internal/core/domain/errors"
	"signon/internal/core/domain/logging"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
	"time"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	fingerprint := s.tokenGenerator.Fingerprint(input.Token)

	u, err := s.userRepository.GetByResetFingerprint(ctx, fingerprint)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrInvalidResetToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by reset token fingerprint.",
			logging.Entry("err", err),
		)
		return result, err
	}
	// An expired token must look exactly like one that never existed.
	if !u.ResetExpiresAt.IsPresent || !s.now().Before(u.ResetExpiresAt.Value) {
		return result, user.ErrInvalidResetToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	// The conditional update replaces the hash and clears the reset fields in
	// one statement; a concurrent reset that already spent the token makes
	// the fingerprint no longer match.
	updatedUser, err := s.userRepository.UpdatePassword(ctx, user.UpdatePasswordInput{
		Fingerprint:  fingerprint,
		PasswordHash: newPasswordHash,
		Now:          s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidResetToken) {
		s.log.Info(
			ctx,
			"Reset token was spent or expired before the password update.",
			logging.Entry("userID", u.ID),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", updatedUser.ID),
	)
	return Result{User: updatedUser}, nil
}
