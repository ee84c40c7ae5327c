package middleware

import (
	"context"
	"net/http"
	"strings"

	"fern-and-paper/logger"
	"fern-and-paper/models"
	"fern-and-paper/repository"
	"fern-and-paper/service"
)

type contextKey string

// userKey carries the authenticated user through the request context.
const userKey contextKey = "user"

// AuthMiddleware verifies bearer tokens and loads the calling user.
type AuthMiddleware struct {
	tokens *service.TokenService
	users  repository.UserRepositoryInterface
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens *service.TokenService, users repository.UserRepositoryInterface) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// ContextWithUser returns a context carrying the authenticated user.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, or nil on public routes.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// Protect requires a valid bearer token and attaches the user to the
// request context.
func (m *AuthMiddleware) Protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Not authorized, no token", http.StatusUnauthorized)
			return
		}

		userID, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.L.Infof("❌ Rejected token: %v", err)
			http.Error(w, "Not authorized, token failed", http.StatusUnauthorized)
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			http.Error(w, "Not authorized, token failed", http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(ContextWithUser(r.Context(), user)))
	}
}

// AdminOnly requires an authenticated admin account.
func (m *AuthMiddleware) AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return m.Protect(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			http.Error(w, "Not authorized as an admin", http.StatusForbidden)
			return
		}
		next(w, r)
	})
}
