package models

import "time"

// ActivityLog records one user-visible action for the admin audit view.
// UserID, Email, and Details are optional depending on the action.
type ActivityLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	UserID    string    `json:"userId,omitempty"`
	Email     string    `json:"email,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}
