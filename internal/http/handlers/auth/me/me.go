package me

import (
	"errors"
	"net/http"
	e "signon/internal/core/domain/errors"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
	service "signon/internal/core/services/get_user_by_session_token"
	"signon/internal/http/handlers/auth"
	"signon/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Token: token},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
