package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"signon/internal/core/domain/user"
	resetpassword "signon/internal/core/services/reset_password"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *resetpassword.Input
}

func (s *stubService) Run(ctx context.Context, input resetpassword.Input) (result resetpassword.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return result, nil
}

func newTestRouter(service *stubService) *chi.Mux {
	router := chi.NewRouter()
	router.Put("/reset-password/{resetToken}", New(service).ServeHTTP)
	return router
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *resetpassword.Input
	}{
		{
			id:             "success",
			url:            "/reset-password/test-reset-token",
			body:           `{"password": "new-secret-password"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &resetpassword.Input{
				Token:       user.PasswordResetToken("test-reset-token"),
				NewPassword: user.RawPassword("new-secret-password"),
			},
		},
		{
			id:             "invalid json",
			url:            "/reset-password/test-reset-token",
			body:           `{"password": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			url:            "/reset-password/test-reset-token",
			body:           `{"password": "abc"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid or expired token",
			url:            "/reset-password/spent-token",
			body:           `{"password": "new-secret-password"}`,
			serviceErr:     user.ErrInvalidResetToken,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := &stubService{err: testcase.serviceErr}
			router := newTestRouter(service)

			request := httptest.NewRequest(http.MethodPut, testcase.url, strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, service.input)
			}
		})
	}
}

func TestResetPasswordInvalidAndWeakPasswordStatusesMatch(t *testing.T) {
	invalidToken := httptest.NewRecorder()
	newTestRouter(&stubService{err: user.ErrInvalidResetToken}).ServeHTTP(
		invalidToken,
		httptest.NewRequest(
			http.MethodPut,
			"/reset-password/spent-token",
			strings.NewReader(`{"password": "new-secret-password"}`),
		),
	)

	weakPassword := httptest.NewRecorder()
	newTestRouter(&stubService{}).ServeHTTP(
		weakPassword,
		httptest.NewRequest(
			http.MethodPut,
			"/reset-password/test-reset-token",
			strings.NewReader(`{"password": "abc"}`),
		),
	)

	assert.Equal(t, http.StatusBadRequest, invalidToken.Code)
	assert.Equal(t, invalidToken.Code, weakPassword.Code)
}
