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

// CreateSoilType inserts a new soil directory entry.
func (s *Store) CreateSoilType(ctx context.Context, soil models.SoilType) (models.SoilType, error) {
	if soil.ID == "" {
		soil.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO soil_types
			(id, type, characteristics, suitable_crops, region, image, ph,
			 nutrient_content, water_retention, cultivation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`
	err := s.db.QueryRowContext(ctx, query,
		soil.ID, soil.Type, soil.Characteristics, soil.SuitableCrops, soil.Region,
		soil.Image, soil.PH, soil.NutrientContent, soil.WaterRetention, soil.Cultivation,
	).Scan(&soil.CreatedAt, &soil.UpdatedAt)
	if err != nil {
		return models.SoilType{}, fmt.Errorf("db error: %w", err)
	}
	return soil, nil
}

// ListSoilTypes returns all soil entries, oldest first.
func (s *Store) ListSoilTypes(ctx context.Context) ([]models.SoilType, error) {
	const query = `
		SELECT id, type, characteristics, suitable_crops, region, image, ph,
		       nutrient_content, water_retention, cultivation, created_at, updated_at
		FROM soil_types
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.SoilType{}
	for rows.Next() {
		var soil models.SoilType
		if err := rows.Scan(&soil.ID, &soil.Type, &soil.Characteristics, &soil.SuitableCrops,
			&soil.Region, &soil.Image, &soil.PH, &soil.NutrientContent, &soil.WaterRetention,
			&soil.Cultivation, &soil.CreatedAt, &soil.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, soil)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// GetSoilType fetches one soil entry by id.
func (s *Store) GetSoilType(ctx context.Context, id string) (models.SoilType, error) {
	const query = `
		SELECT id, type, characteristics, suitable_crops, region, image, ph,
		       nutrient_content, water_retention, cultivation, created_at, updated_at
		FROM soil_types
		WHERE id = $1`
	var soil models.SoilType
	err := s.db.QueryRowContext(ctx, query, id).Scan(&soil.ID, &soil.Type, &soil.Characteristics,
		&soil.SuitableCrops, &soil.Region, &soil.Image, &soil.PH, &soil.NutrientContent,
		&soil.WaterRetention, &soil.Cultivation, &soil.CreatedAt, &soil.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SoilType{}, storage.ErrNotFound
		}
		return models.SoilType{}, fmt.Errorf("db error: %w", err)
	}
	return soil, nil
}

// UpdateSoilType replaces every mutable field of the entry with the given id.
func (s *Store) UpdateSoilType(ctx context.Context, soil models.SoilType) (models.SoilType, error) {
	const query = `
		UPDATE soil_types
		SET type = $2, characteristics = $3, suitable_crops = $4, region = $5,
		    image = $6, ph = $7, nutrient_content = $8, water_retention = $9,
		    cultivation = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := s.db.QueryRowContext(ctx, query,
		soil.ID, soil.Type, soil.Characteristics, soil.SuitableCrops, soil.Region,
		soil.Image, soil.PH, soil.NutrientContent, soil.WaterRetention, soil.Cultivation,
	).Scan(&soil.CreatedAt, &soil.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SoilType{}, storage.ErrNotFound
		}
		return models.SoilType{}, fmt.Errorf("db error: %w", err)
	}
	return soil, nil
}

// DeleteSoilType removes the entry with the given id.
func (s *Store) DeleteSoilType(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM soil_types WHERE id = $1`, id)
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
