package me

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"signon/internal/core/domain/user"
	service "signon/internal/core/services/get_user_by_session_token"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.User = user.User{
		ID:        7,
		Name:      "John",
		Email:     "john@example.com",
		CreatedAt: time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	return result, nil
}

func TestMeHandler(t *testing.T) {
	cases := []struct {
		id             string
		authHeader     string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			authHeader:     "Bearer test-session-token",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{Token: user.SessionToken("test-session-token")},
		},
		{
			id:             "no authorization header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			id:             "malformed authorization header",
			authHeader:     "test-session-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			id:             "invalid token",
			authHeader:     "Bearer garbage",
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := &stubService{err: testcase.serviceErr}
			handler := New(service)

			request := httptest.NewRequest(http.MethodGet, "/me", nil)
			if testcase.authHeader != "" {
				request.Header.Set("authorization", testcase.authHeader)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, service.input)
			}
		})
	}
}

func TestMeHandlerResponseBody(t *testing.T) {
	handler := New(&stubService{})

	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.Header.Set("authorization", "Bearer test-session-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	result := Result{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, int64(7), result.User.ID)
	assert.Equal(t, "John", result.User.Name)
	assert.Equal(t, "john@example.com", result.User.Email)
}
