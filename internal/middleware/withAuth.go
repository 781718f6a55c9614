package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pranav06082004/Authen-X/internal/app/service"
	"github.com/pranav06082004/Authen-X/internal/models"
	"github.com/pranav06082004/Authen-X/internal/storage"
)

// ContextKey is a custom type used for keys in the context.
// It helps prevent collisions in context keys.
type ContextKey string

// UserIDKey is the key used to store and retrieve the user ID from the context.
const UserIDKey ContextKey = "userID"

// UserRoleKey is the key used to store and retrieve the user role from the context.
const UserRoleKey ContextKey = "userRole"

// InjectUser adds the user identity to the request context, making it
// accessible for downstream handlers.
func InjectUser(req *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	return req.WithContext(ctx)
}

// UserIDFrom extracts the authenticated user ID from the context.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// WithBearerAuth requires an "Authorization: Bearer <token>" header and
// resolves it to a user identity. A missing or unresolvable token is a
// distinct 401, never a generic server error.
func WithBearerAuth(auth service.AuthIface) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header || tokenString == "" {
				writeAuthError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := auth.ResolveToken(tokenString)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, InjectUser(r, claims.UserID, claims.Role))
		})
	}
}

// RequireAdmin rejects non-admin callers. It must run after WithBearerAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(UserRoleKey).(string)
		if role != storage.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
