package models

import "time"

// User captures application-facing fields for an authenticated identity.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Role maps the stored admin flag onto the closed role set.
func (u User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
