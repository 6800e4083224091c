package dto

import (
	"fmt"
	"strings"
)

// SoilTypeInput is the create/update payload for a soil directory entry.
// Every field is required; validation happens here, at the boundary, rather
// than relying on database constraint errors.
type SoilTypeInput struct {
	Type            string `json:"type"`
	Characteristics string `json:"characteristics"`
	SuitableCrops   string `json:"suitableCrops"`
	Region          string `json:"region"`
	Image           string `json:"image"`
	PH              string `json:"ph"`
	NutrientContent string `json:"nutrientContent"`
	WaterRetention  string `json:"waterRetention"`
	Cultivation     string `json:"cultivation"`
}

// Validate reports every missing field at once.
func (in SoilTypeInput) Validate() error {
	return requireFields(
		field{"type", in.Type},
		field{"characteristics", in.Characteristics},
		field{"suitableCrops", in.SuitableCrops},
		field{"region", in.Region},
		field{"image", in.Image},
		field{"ph", in.PH},
		field{"nutrientContent", in.NutrientContent},
		field{"waterRetention", in.WaterRetention},
		field{"cultivation", in.Cultivation},
	)
}

// DistributorInput is the create/update payload for a distributor entry.
type DistributorInput struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	SupportedCrops string `json:"supportedCrops"`
	Contact        string `json:"contact"`
	Region         string `json:"region"`
	State          string `json:"state"`
	City           string `json:"city"`
	Image          string `json:"image"`
}

// Validate reports every missing field at once.
func (in DistributorInput) Validate() error {
	return requireFields(
		field{"name", in.Name},
		field{"address", in.Address},
		field{"supportedCrops", in.SupportedCrops},
		field{"contact", in.Contact},
		field{"region", in.Region},
		field{"state", in.State},
		field{"city", in.City},
		field{"image", in.Image},
	)
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
