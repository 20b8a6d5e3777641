package services

import (
	"signon/internal/app/deps"
	"signon/internal/core/services"
	getuserbysessiontoken "signon/internal/core/services/get_user_by_session_token"
	login "signon/internal/core/services/log_in"
	resetpassword "signon/internal/core/services/reset_password"
	sendpasswordresettoken "signon/internal/core/services/send_password_reset_token"
	signup "signon/internal/core/services/sign_up"
)

type Services struct {
	SignUp                 services.Service[signup.Input, signup.Result]
	LogIn                  services.Service[login.Input, login.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.SessionTokenIssuer,
		deps.Now,
	)
	s.LogIn = login.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.SessionTokenIssuer,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenGenerator,
		deps.PasswordResetTokenSender,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenGenerator,
		deps.PasswordHasher,
		deps.Now,
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.SessionTokenIssuer,
	)

	return s
}
