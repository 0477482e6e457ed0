package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/course-api/internal/models"
	"github.com/sbilibin2017/course-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := &models.UserDB{UserID: 3, EmailAddress: "ann@x.com"}

	tests := []struct {
		name             string
		withCredentials  bool
		mockSetup        func(m *MockAuthenticator)
		expectedStatus   int
		expectedBody     string
		expectChallenge  bool
		expectNextCalled bool
	}{
		{
			name:             "NoCredentials",
			mockSetup:        func(m *MockAuthenticator) {},
			expectedStatus:   http.StatusUnauthorized,
			expectedBody:     `{"message":"Access Denied"}`,
			expectChallenge:  true,
			expectNextCalled: false,
		},
		{
			name:            "UnknownUser",
			withCredentials: true,
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "ann@x.com", "secret").
					Return(nil, services.ErrUserDoesNotExist)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectedBody:     `{"message":"Access Denied"}`,
			expectChallenge:  true,
			expectNextCalled: false,
		},
		{
			name:            "WrongPassword",
			withCredentials: true,
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "ann@x.com", "secret").
					Return(nil, services.ErrInvalidCredentials)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectedBody:     `{"message":"Access Denied"}`,
			expectChallenge:  true,
			expectNextCalled: false,
		},
		{
			name:            "StoreFailure",
			withCredentials: true,
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "ann@x.com", "secret").
					Return(nil, errors.New("db down"))
			},
			expectedStatus:   http.StatusInternalServerError,
			expectedBody:     `{"error":{"message":"db down"}}`,
			expectNextCalled: false,
		},
		{
			name:            "ValidCredentials",
			withCredentials: true,
			mockSetup: func(m *MockAuthenticator) {
				m.EXPECT().Authenticate(gomock.Any(), "ann@x.com", "secret").
					Return(user, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := NewMockAuthenticator(ctrl)
			tt.mockSetup(mockAuth)

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got, ok := UserFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, user, got)
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockAuth)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.withCredentials {
				req.SetBasicAuth("ann@x.com", "secret")
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
			if tt.expectChallenge {
				assert.Equal(t, `Basic realm="course-api"`, rr.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	user, ok := UserFromContext(req.Context())
	assert.False(t, ok)
	assert.Nil(t, user)

	user, ok = UserFromContext(SetUserToContext(req.Context(), nil))
	assert.False(t, ok)
	assert.Nil(t, user)
}
