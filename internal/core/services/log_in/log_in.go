package login

import (
	"context"
	"errors"
	c "signon/internal/core/domain/common"
	e "signon/internal/core/domain/errors"
	"signon/internal/core/domain/logging"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

type Result struct {
	User  user.User
	Token user.SessionToken
}

type service struct {
	log                logging.Logger
	userRepository     user.UserRepository
	passwordHasher     user.PasswordHasher
	sessionTokenIssuer user.SessionTokenIssuer
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	sessionTokenIssuer user.SessionTokenIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	return &service{
		log:                log,
		userRepository:     userRepository,
		passwordHasher:     passwordHasher,
		sessionTokenIssuer: sessionTokenIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, user.ErrInvalidCredentials
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
	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		return result, user.ErrInvalidCredentials
	}

	sessionToken, err := s.sessionTokenIssuer.Issue(u.ID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue session token for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully authenticated, session token issued.",
		logging.Entry("userID", u.ID),
	)
	return Result{User: u, Token: sessionToken}, nil
}
