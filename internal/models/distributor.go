package models

import "time"

// Distributor is one entry in the public input-distributor directory.
type Distributor struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	SupportedCrops string    `json:"supportedCrops"`
	Contact        string    `json:"contact"`
	Region         string    `json:"region"`
	State          string    `json:"state"`
	City           string    `json:"city"`
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
