package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// JSONB types for complex fields
type JSONBTiers []PriceTier

// Service is a detailing service offered by the store, e.g. a full interior
// detail or a ceramic coating. Size-aware services carry one tier row per
// vehicle size class; the base price covers the remaining pricing models and
// doubles as the fallback when no vehicle has been selected yet.
type Service struct {
	ID string `db:"id" json:"id"`

	Name string `db:"name" json:"name"`

	Description string `db:"description" json:"description"`

	// PricingModel determines how the unit price is resolved
	PricingModel types.PricingModel `db:"pricing_model" json:"pricing_model"`

	// BasePrice in main currency units (dollars, not cents)
	BasePrice decimal.Decimal `db:"base_price" json:"base_price"`

	// Taxable controls whether line items created from this service accrue sales tax
	Taxable bool `db:"taxable" json:"taxable"`

	// Tiers are the per-size price rows when PricingModel is vehicle_size
	Tiers JSONBTiers `db:"tiers" json:"tiers"`

	types.BaseModel
}

// PriceTier is a single vehicle-size price row of a size-aware service
type PriceTier struct {
	// SizeClass is the vehicle size bucket this row prices
	SizeClass types.VehicleSizeClass `json:"size_class"`

	// Label is the human-facing tier name shown on tickets, e.g. "SUV / Crossover"
	Label string `json:"label"`

	// UnitPrice in main currency units for this size class
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Product is a retail item sold at the register, priced flat per unit
type Product struct {
	ID string `db:"id" json:"id"`

	Name string `db:"name" json:"name"`

	Description string `db:"description" json:"description"`

	// Price in main currency units
	Price decimal.Decimal `db:"price" json:"price"`

	// Taxable controls whether line items created from this product accrue sales tax
	Taxable bool `db:"taxable" json:"taxable"`

	types.BaseModel
}

// Validate checks the service definition is internally consistent
func (s *Service) Validate() error {
	if err := s.PricingModel.Validate(); err != nil {
		return err
	}
	if s.BasePrice.LessThan(decimal.Zero) {
		return fmt.Errorf("base price must not be negative")
	}
	for _, tier := range s.Tiers {
		if err := tier.SizeClass.Validate(); err != nil {
			return err
		}
		if tier.UnitPrice.LessThan(decimal.Zero) {
			return fmt.Errorf("tier unit price must not be negative")
		}
	}
	return nil
}

// TierFor returns the tier row matching the given size class, if any
func (s *Service) TierFor(size types.VehicleSizeClass) (PriceTier, bool) {
	for _, tier := range s.Tiers {
		if tier.SizeClass == size {
			return tier, true
		}
	}
	return PriceTier{}, false
}

// Value implements driver.Valuer for JSONB storage
func (t JSONBTiers) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB storage
func (t *JSONBTiers) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("invalid type for jsonb tiers")
	}
	return json.Unmarshal(b, t)
}
