package getuserbysessiontoken

import (
	"context"
	"errors"
	e "signon/internal/core/domain/errors"
	"signon/internal/core/domain/logging"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
)

type Input struct {
	Token user.SessionToken
}

type Result struct {
	User user.User
}

type service struct {
	log                logging.Logger
	userRepository     user.UserRepository
	sessionTokenIssuer user.SessionTokenIssuer
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionTokenIssuer user.SessionTokenIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	return &service{
		log:                log,
		userRepository:     userRepository,
		sessionTokenIssuer: sessionTokenIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.sessionTokenIssuer.Verify(input.Token)
	if err != nil {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by ID from session token.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}
	return Result{User: u}, nil
}
