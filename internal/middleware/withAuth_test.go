package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/pranav06082004/Authen-X/internal/app/service"
	"github.com/pranav06082004/Authen-X/internal/mocks"
)

func TestWithBearerAuth(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		claims       *service.Claims
		resolveErr   error
		expectCall   bool
		expectedCode int
		expectedUser string
	}{
		{
			name:         "valid token",
			header:       "Bearer good-token",
			claims:       &service.Claims{UserID: "user-1", Role: "user"},
			expectCall:   true,
			expectedCode: http.StatusOK,
			expectedUser: "user-1",
		},
		{
			name:         "missing header",
			header:       "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "not a bearer header",
			header:       "Basic dXNlcjpwYXNz",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "unresolvable token",
			header:       "Bearer bad-token",
			resolveErr:   errors.New("signature invalid"),
			expectCall:   true,
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockAuth := mocks.NewMockAuthIface(ctrl)

			if tt.expectCall {
				mockAuth.EXPECT().
					ResolveToken(gomock.Any()).
					Return(tt.claims, tt.resolveErr).
					Times(1)
			}

			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserIDFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rr := httptest.NewRecorder()
			WithBearerAuth(mockAuth)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedUser, gotUser)

			if tt.expectedCode == http.StatusUnauthorized {
				assert.Contains(t, rr.Body.String(), "error")
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req = InjectUser(req, "admin-1", "admin")

		rr := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req = InjectUser(req, "user-1", "user")

		rr := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("no identity forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)

		rr := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
