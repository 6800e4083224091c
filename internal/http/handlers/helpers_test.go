package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrifield/agridir-be/internal/auth"
	"github.com/agrifield/agridir-be/internal/middleware"
	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/models/dto"
	"github.com/agrifield/agridir-be/internal/storage/memory"
)

// testEnv runs the full route table against an in-memory store.
type testEnv struct {
	store  *memory.Store
	tokens *auth.TokenManager
	ts     *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", "agridir-test", time.Hour)
	session := middleware.NewSession(tokens, store)

	mux := http.NewServeMux()
	NewHealthHandler(time.Now()).Register(mux)
	NewAuthHandler(store, store, tokens, false).Register(mux, session)
	NewSoilHandler(store, store).Register(mux, session)
	NewDistributorHandler(store, store).Register(mux, session)
	NewLogsHandler(store).Register(mux, session)
	NewMediaHandler(nil).Register(mux, session)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &testEnv{store: store, tokens: tokens, ts: ts}
}

func (e *testEnv) createUser(t *testing.T, name, email, password string, isAdmin bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user, err := e.store.CreateUser(context.Background(), models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// login posts credentials and returns the response plus the session cookie, if set.
func (e *testEnv) login(t *testing.T, path, email, password string) (*http.Response, *http.Cookie) {
	t.Helper()
	resp := e.do(t, http.MethodPost, path, dto.LoginRequest{Email: email, Password: password}, nil)
	return resp, sessionCookie(resp)
}

func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	e.createUser(t, "Admin", "admin@example.com", "adminpass1", true)
	resp, cookie := e.login(t, "/admin/login", "admin@example.com", "adminpass1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, cookie)
	return cookie
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
