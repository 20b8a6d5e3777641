package signup

import (
	"context"
	"errors"
	c "signon/internal/core/domain/common"
	e "signon/internal/core/domain/errors"
	"signon/internal/core/domain/logging"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
	"time"
)

type Input struct {
	Name     string
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
	now                func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	sessionTokenIssuer user.SessionTokenIssuer,
	now func() time.Time,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		userRepository:     userRepository,
		passwordHasher:     passwordHasher,
		sessionTokenIssuer: sessionTokenIssuer,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	createdUser, err := s.userRepository.Create(ctx, user.CreateUserInput{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		s.log.Info(
			ctx,
			"User with the email already exists.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	sessionToken, err := s.sessionTokenIssuer.Issue(createdUser.ID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue session token for the new user.",
			logging.Entry("userID", createdUser.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New user has been created.", logging.Entry("userID", createdUser.ID))
	return Result{User: createdUser, Token: sessionToken}, nil
}
