package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/agrifield/agridir-be/internal/models"
)

// AppendActivity writes one audit entry. Optional fields are stored as NULL.
func (s *Store) AppendActivity(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO activity_logs (id, action, user_id, email, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err := s.db.QueryRowContext(ctx, query,
		entry.ID, entry.Action, nullIfEmpty(entry.UserID), nullIfEmpty(entry.Email),
		nullIfEmpty(entry.Details)).Scan(&entry.CreatedAt)
	if err != nil {
		return models.ActivityLog{}, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// ListActivity returns up to limit entries, newest first.
func (s *Store) ListActivity(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	const query = `
		SELECT id, action, user_id, email, details, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.ActivityLog{}
	for rows.Next() {
		var entry models.ActivityLog
		var userID, email, details sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Action, &userID, &email, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entry.UserID = userID.String
		entry.Email = email.String
		entry.Details = details.String
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
