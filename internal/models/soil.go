package models

import "time"

// SoilType is one entry in the public soil directory.
type SoilType struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Characteristics string    `json:"characteristics"`
	SuitableCrops   string    `json:"suitableCrops"`
	Region          string    `json:"region"`
	Image           string    `json:"image"`
	PH              string    `json:"ph"`
	NutrientContent string    `json:"nutrientContent"`
	WaterRetention  string    `json:"waterRetention"`
	Cultivation     string    `json:"cultivation"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
