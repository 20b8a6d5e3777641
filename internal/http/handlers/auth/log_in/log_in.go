package login

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "signon/internal/core/domain/common"
	e "signon/internal/core/domain/errors"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
	login "signon/internal/core/services/log_in"
	"signon/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const INVALID_CREDENTIALS_MESSAGE = "Invalid email or password"

type Handler struct {
	service services.Service[login.Input, login.Result]
}

func New(
	service services.Service[login.Input, login.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Result struct {
	Token string        `json:"token"`
	User  response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		login.Input{Email: c.NewEmail(input.Email), Password: user.RawPassword(input.Password)},
	)
	if errors.Is(err, user.ErrInvalidCredentials) {
		response.RenderError(rw, INVALID_CREDENTIALS_MESSAGE, http.StatusUnauthorized)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{Token: string(result.Token), User: u}, http.StatusOK)
}
