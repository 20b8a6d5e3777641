package getuserbysessiontoken

import (
	"context"
	"errors"
	c "signon/internal/core/domain/common"
	"signon/internal/core/domain/logging"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	Logger             *logging.FakeLogger
	UserRepository     *user.FakeUserRepository
	SessionTokenIssuer *user.FakeSessionTokenIssuer
	Service            services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionTokenIssuer = user.NewFakeSessionTokenIssuer()
	suite.Service = New(suite.Logger, suite.UserRepository, suite.SessionTokenIssuer)
}

func TestGetUserBySessionTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	u, err := suite.UserRepository.Create(ctx, user.CreateUserInput{
		Name:         "Test",
		Email:        c.Email("test@test.test"),
		PasswordHash: user.PasswordHash("hash"),
		CreatedAt:    time.Now().UTC(),
	})
	suite.Require().Nil(err)
	token, err := suite.SessionTokenIssuer.Issue(u.ID)
	suite.Require().Nil(err)

	result, err := suite.Service.Run(ctx, Input{Token: token})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(u.ID, result.User.ID)
}

func (suite *testSuite) TestInvalidToken() {
	_, err := suite.Service.Run(context.Background(), Input{Token: user.SessionToken("garbage")})

	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestTokenForDeletedUser() {
	token, err := suite.SessionTokenIssuer.Issue(user.ID(42))
	suite.Require().Nil(err)

	_, err = suite.Service.Run(context.Background(), Input{Token: token})

	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}
