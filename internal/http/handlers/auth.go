package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/agrifield/agridir-be/internal/auth"
	"github.com/agrifield/agridir-be/internal/http/respond"
	"github.com/agrifield/agridir-be/internal/middleware"
	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/models/dto"
	"github.com/agrifield/agridir-be/internal/storage"
)

// AuthHandler owns register, login, admin login, logout, and session endpoints.
type AuthHandler struct {
	users        storage.UserStore
	activity     storage.ActivityStore
	tokens       *auth.TokenManager
	cookieSecure bool
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, activity storage.ActivityStore, tokens *auth.TokenManager, cookieSecure bool) *AuthHandler {
	return &AuthHandler{users: users, activity: activity, tokens: tokens, cookieSecure: cookieSecure}
}

// Register attaches auth routes to the mux. GET /user goes through the session
// middleware so a deleted user's cookie stops working immediately.
func (h *AuthHandler) Register(mux *http.ServeMux, session *middleware.Session) {
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("POST /admin/login", h.handleAdminLogin)
	mux.HandleFunc("GET /logout", h.handleLogout)
	mux.Handle("GET /user", session.Protect(http.HandlerFunc(h.handleCurrentUser)))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Please fill all fields")
		return
	}
	if len(req.Password) < 8 {
		respond.Error(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, err := h.users.CreateUser(r.Context(), models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "User already exists")
			return
		}
		slog.Error("register: create user failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.recordActivity(r, "user registered", user, "")
	respond.Message(w, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	h.startSession(w, r, user, "user login")
}

// handleAdminLogin verifies credentials first and checks the role second, so a
// non-admin with a correct password gets "access denied", not "invalid
// credentials". No cookie is set on denial.
func (h *AuthHandler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	if !user.Role().CanManageDirectory() {
		respond.Error(w, http.StatusForbidden, "Access denied: Admins only")
		return
	}
	h.startSession(w, r, user, "admin login")
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cookieSecure)
	respond.Message(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.SessionResponse{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		Name:    user.Name,
		Email:   user.Email,
	})
}

// authenticate checks email and password. Both an unknown email and a wrong
// password produce the identical response, so the endpoint cannot be used to
// enumerate accounts. On failure the response has already been written.
func (h *AuthHandler) authenticate(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return models.User{}, false
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Please fill all fields")
		return models.User{}, false
	}

	user, err := h.users.FindUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusBadRequest, "Invalid credentials")
			return models.User{}, false
		}
		slog.Error("login: fetch user failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return models.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid credentials")
		return models.User{}, false
	}
	return user, true
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user models.User, action string) {
	token, err := h.tokens.Generate(user)
	if err != nil {
		slog.Error("login: generate token failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	auth.SetSessionCookie(w, token, h.tokens.TTL(), h.cookieSecure)
	h.recordActivity(r, action, user, "")
	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User: dto.UserInfo{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		},
	})
}

func (h *AuthHandler) recordActivity(r *http.Request, action string, user models.User, details string) {
	_, err := h.activity.AppendActivity(r.Context(), models.ActivityLog{
		Action:  action,
		UserID:  user.ID,
		Email:   user.Email,
		Details: details,
	})
	if err != nil {
		slog.Warn("record activity failed", "action", action, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
