package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrifield/agridir-be/internal/auth"
	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/storage/memory"
)

func newSessionWithUser(t *testing.T, isAdmin bool) (*Session, *memory.Store, models.User, string) {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", "agridir-test", time.Hour)

	user, err := store.CreateUser(context.Background(), models.User{
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "irrelevant",
		IsAdmin:      isAdmin,
	})
	require.NoError(t, err)

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	return NewSession(tokens, store), store, user, token
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	return req
}

func TestProtectNoCookie(t *testing.T) {
	session, _, _, _ := newSessionWithUser(t, false)

	called := false
	handler := session.Protect(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(""))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestProtectAttachesIdentity(t *testing.T) {
	session, _, user, token := newSessionWithUser(t, false)

	var got models.User
	handler := session.Protect(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		identity, ok := Identity(r.Context())
		require.True(t, ok)
		got = identity
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(token))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, user.Email, got.Email)
}

func TestProtectRejectsBadToken(t *testing.T) {
	session, _, _, token := newSessionWithUser(t, false)

	handler := session.Protect(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with a tampered token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(token+"x"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsDeletedUser(t *testing.T) {
	session, store, user, token := newSessionWithUser(t, false)
	store.RemoveUser(user.ID)

	handler := session.Protect(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for a deleted user")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(token))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminGate(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    bool
		wantStatus int
	}{
		{name: "admin passes", isAdmin: true, wantStatus: http.StatusOK},
		{name: "non-admin forbidden", isAdmin: false, wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, _, _, token := newSessionWithUser(t, tt.isAdmin)

			handler := session.Protect(session.RequireAdmin(http.HandlerFunc(
				func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithToken(token))
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdminWithoutProtect(t *testing.T) {
	session, _, _, _ := newSessionWithUser(t, true)

	handler := session.RequireAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without an identity in context")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
