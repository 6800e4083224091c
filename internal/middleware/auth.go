package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/agrifield/agridir-be/internal/auth"
	"github.com/agrifield/agridir-be/internal/http/respond"
	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/storage"
)

type contextKey string

const identityKey contextKey = "identity"

// Session authenticates requests via the session cookie. The token's signature
// and expiry are checked, then the user is re-loaded from storage so a deleted
// account cannot keep using a still-signed cookie.
type Session struct {
	tokens *auth.TokenManager
	users  storage.UserStore
}

// NewSession builds the session middleware.
func NewSession(tokens *auth.TokenManager, users storage.UserStore) *Session {
	return &Session{tokens: tokens, users: users}
}

// Protect wraps next so it only runs with a fully-resolved identity in context.
func (s *Session) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookieName)
		if err != nil || cookie.Value == "" {
			respond.Error(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		claims, err := s.tokens.Parse(cookie.Value)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		user, err := s.users.FindUserByID(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respond.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}
			slog.Error("session: user lookup failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Server error")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin runs after Protect and rejects callers whose role cannot manage
// the directory. The denial message does not reveal the caller's actual role.
func (s *Session) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := Identity(r.Context())
		if !ok || !user.Role().CanManageDirectory() {
			respond.Error(w, http.StatusForbidden, "Access denied: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Identity returns the authenticated user attached by Protect.
func Identity(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(identityKey).(models.User)
	return user, ok
}
