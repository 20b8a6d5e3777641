package forgotpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "signon/internal/core/domain/common"
	e "signon/internal/core/domain/errors"
	"signon/internal/core/domain/user"
	"signon/internal/core/services"
	service "signon/internal/core/services/send_password_reset_token"
	"signon/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SUCCESS_MESSAGE is returned whether or not the email is registered so
// that the endpoint cannot be used to probe for accounts.
const SUCCESS_MESSAGE = "If an account with that email exists, a reset link has been sent"

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
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
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if errors.Is(err, user.ErrResetTokenDeliveryFailed) {
		response.RenderError(rw, "could not send password reset email", http.StatusInternalServerError)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode && result.Token != "" {
		rw.Header().Set("x-test-password-reset-token", string(result.Token))
	}
	response.RenderMessage(rw, SUCCESS_MESSAGE, http.StatusOK)
}
