package app

import (
	"fmt"
	"net/http"
	"signon/internal/app/deps"
	"signon/internal/app/services"
	forgotpassword "signon/internal/http/handlers/auth/forgot_password"
	login "signon/internal/http/handlers/auth/log_in"
	me "signon/internal/http/handlers/auth/me"
	register "signon/internal/http/handlers/auth/register"
	resetpassword "signon/internal/http/handlers/auth/reset_password"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/register", register.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/forgot-password", forgotpassword.New(s.SendPasswordResetToken, isTestMode))
	authRouter.Method(http.MethodPut, "/reset-password/{resetToken}", resetpassword.New(s.ResetPassword))
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
