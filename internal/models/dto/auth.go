package dto

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo is the identity subset returned to clients. The password hash and
// the raw session token never appear in a response body.
type UserInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type LoginResponse struct {
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
}

// SessionResponse mirrors the server-side session state back to the client on
// GET /user.
type SessionResponse struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}
