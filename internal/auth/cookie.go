package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "authToken"

// SetSessionCookie attaches the session token to the response. SameSite=None
// lets the separately hosted frontend send it cross-site, which requires
// Secure on real deployments.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSessionCookie overwrites the cookie with an already-expired one covering
// the same path and attributes so the browser actually drops it. There is no
// server-side revocation: a copied token stays valid until its expiry.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteNoneMode,
	})
}
