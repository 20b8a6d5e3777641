package register

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	c "signon/internal/core/domain/common"
	"signon/internal/core/domain/user"
	signup "signon/internal/core/services/sign_up"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *signup.Input
}

func (s *stubService) Run(ctx context.Context, input signup.Input) (result signup.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.User = user.User{
		ID:        1,
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	result.Token = user.SessionToken("test-session-token")
	return result, nil
}

func TestRegisterHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *signup.Input
	}{
		{
			id:             "success",
			body:           `{"name": "John", "email": "John@Example.com", "password": "secret-password"}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &signup.Input{
				Name:     "John",
				Email:    c.NewEmail("John@Example.com"),
				Password: user.RawPassword("secret-password"),
			},
		},
		{
			id:             "invalid json",
			body:           `{"name": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing name",
			body:           `{"email": "john@example.com", "password": "secret-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid email",
			body:           `{"name": "John", "email": "not-an-email", "password": "secret-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"name": "John", "email": "john@example.com", "password": "abc"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "email already exists",
			body:           `{"name": "John", "email": "john@example.com", "password": "secret-password"}`,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := &stubService{err: testcase.serviceErr}
			handler := New(service)

			request := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, service.input)
			}
		})
	}
}

func TestRegisterHandlerResponseBody(t *testing.T) {
	handler := New(&stubService{})

	body := `{"name": "John", "email": "John@Example.com", "password": "secret-password"}`
	request := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	result := Result{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, "test-session-token", result.Token)
	assert.Equal(t, int64(1), result.User.ID)
	assert.Equal(t, "john@example.com", result.User.Email)
}
