package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/storage"
)

// CreateDistributor inserts a new distributor directory entry.
func (s *Store) CreateDistributor(ctx context.Context, d models.Distributor) (models.Distributor, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO distributors
			(id, name, address, supported_crops, contact, region, state, city, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`
	err := s.db.QueryRowContext(ctx, query,
		d.ID, d.Name, d.Address, d.SupportedCrops, d.Contact, d.Region, d.State, d.City, d.Image,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return models.Distributor{}, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// ListDistributors returns all distributor entries, oldest first.
func (s *Store) ListDistributors(ctx context.Context) ([]models.Distributor, error) {
	const query = `
		SELECT id, name, address, supported_crops, contact, region, state, city, image,
		       created_at, updated_at
		FROM distributors
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Distributor{}
	for rows.Next() {
		var d models.Distributor
		if err := rows.Scan(&d.ID, &d.Name, &d.Address, &d.SupportedCrops, &d.Contact,
			&d.Region, &d.State, &d.City, &d.Image, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// GetDistributor fetches one distributor entry by id.
func (s *Store) GetDistributor(ctx context.Context, id string) (models.Distributor, error) {
	const query = `
		SELECT id, name, address, supported_crops, contact, region, state, city, image,
		       created_at, updated_at
		FROM distributors
		WHERE id = $1`
	var d models.Distributor
	err := s.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Address,
		&d.SupportedCrops, &d.Contact, &d.Region, &d.State, &d.City, &d.Image,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Distributor{}, storage.ErrNotFound
		}
		return models.Distributor{}, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// UpdateDistributor replaces every mutable field of the entry with the given id.
func (s *Store) UpdateDistributor(ctx context.Context, d models.Distributor) (models.Distributor, error) {
	const query = `
		UPDATE distributors
		SET name = $2, address = $3, supported_crops = $4, contact = $5, region = $6,
		    state = $7, city = $8, image = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := s.db.QueryRowContext(ctx, query,
		d.ID, d.Name, d.Address, d.SupportedCrops, d.Contact, d.Region, d.State, d.City, d.Image,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Distributor{}, storage.ErrNotFound
		}
		return models.Distributor{}, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// DeleteDistributor removes the entry with the given id.
func (s *Store) DeleteDistributor(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM distributors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
