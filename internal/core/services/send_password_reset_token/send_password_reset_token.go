package sendpasswordresettoken

import (
	"context"
	"errors"
	"fmt"
	c "signon/internal/core/domain/common"
	e "signon/internal/core/domain/errors"
	"signon/internal/core/domain/logging"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
)

type Input struct {
	Email c.Email
}

type Result struct {
	// Token is set only when an account was found. It exists for the
	// test-mode response header and must never reach a production response
	// body: the success payload is identical whether or not the account
	// exists.
	Token user.PasswordResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	tokenSender    user.PasswordResetTokenSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	tokenSender user.PasswordResetTokenSender,
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
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		tokenSender:    tokenSender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Burn the same token-generation work as the found path so the
		// response does not betray whether the account exists.
		s.tokenGenerator.GenerateToken()
		s.log.Info(
			ctx,
			"Password reset requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, fingerprint, expiresAt := s.tokenGenerator.GenerateToken()
	err = s.userRepository.SetResetToken(ctx, u.ID, fingerprint, expiresAt)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not persist reset token fingerprint.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.tokenSender.SendToken(ctx, u, token); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token, rolling reset state back.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		if rollbackErr := s.userRepository.ClearResetToken(ctx, u.ID); rollbackErr != nil {
			// The pending reset stays in place but expires on its own; the
			// caller still sees a delivery failure.
			s.log.Error(
				ctx,
				"Could not roll back reset token after delivery failure.",
				logging.Entry("userID", u.ID),
				logging.Entry("err", rollbackErr),
			)
		}
		return result, fmt.Errorf("%w: %v", user.ErrResetTokenDeliveryFailed, err)
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent to the user.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiresAt", expiresAt),
	)
	return Result{Token: token}, nil
}
