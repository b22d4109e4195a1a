package catalog

import (
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// PriceResolution is the outcome of resolving a service price against a
// vehicle size class.
type PriceResolution struct {
	// UnitPrice is the resolved price in main currency units
	UnitPrice decimal.Decimal `json:"unit_price"`

	// TierLabel is the human-facing tier name, empty for non-tiered models
	TierLabel string `json:"tier_label"`

	// Incomplete is set when a size-aware service was priced without a
	// vehicle and fell back to its base price. The caller decides how to
	// warn; the resolved price is still usable.
	Incomplete bool `json:"incomplete"`
}

// ResolvePrice resolves the unit price and tier label for a service given an
// optional vehicle size class. Pure function: no I/O, no side effects.
//
// Size-aware services pick the tier row matching the size class and fall back
// to the base price with the Incomplete flag when no size is supplied (or no
// tier row covers it). Flat, per-unit and custom services ignore the vehicle
// entirely.
func ResolvePrice(svc *Service, size types.VehicleSizeClass) PriceResolution {
	if svc.PricingModel != types.PricingModelVehicleSize {
		return PriceResolution{UnitPrice: svc.BasePrice}
	}

	if size != "" {
		if tier, ok := svc.TierFor(size); ok {
			return PriceResolution{
				UnitPrice: tier.UnitPrice,
				TierLabel: tier.Label,
			}
		}
	}

	return PriceResolution{
		UnitPrice:  svc.BasePrice,
		Incomplete: true,
	}
}
