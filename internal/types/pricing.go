package types

import (
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/samber/lo"
)

// PricingModel determines how a catalog service resolves its unit price
type PricingModel string

const (
	// PricingModelVehicleSize prices per vehicle size class via tier rows
	PricingModelVehicleSize PricingModel = "vehicle_size"
	// PricingModelFlat is a single price regardless of vehicle
	PricingModelFlat PricingModel = "flat"
	// PricingModelPerUnit is a per-unit price, e.g. per panel or per stain
	PricingModelPerUnit PricingModel = "per_unit"
	// PricingModelCustom is quoted by staff at the register
	PricingModelCustom PricingModel = "custom"
)

func (m PricingModel) String() string {
	return string(m)
}

func (m PricingModel) Validate() error {
	allowed := []PricingModel{
		PricingModelVehicleSize,
		PricingModelFlat,
		PricingModelPerUnit,
		PricingModelCustom,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid pricing model").
			WithHint("Please provide a valid pricing model").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// VehicleSizeClass buckets vehicles for size-aware pricing
type VehicleSizeClass string

const (
	VehicleSizeCompact  VehicleSizeClass = "compact"
	VehicleSizeSedan    VehicleSizeClass = "sedan"
	VehicleSizeSUV      VehicleSizeClass = "suv"
	VehicleSizeTruckVan VehicleSizeClass = "truck_van"
	VehicleSizeOversize VehicleSizeClass = "oversize"
)

func (c VehicleSizeClass) String() string {
	return string(c)
}

func (c VehicleSizeClass) Validate() error {
	allowed := []VehicleSizeClass{
		VehicleSizeCompact,
		VehicleSizeSedan,
		VehicleSizeSUV,
		VehicleSizeTruckVan,
		VehicleSizeOversize,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid vehicle size class").
			WithHint("Please provide a valid vehicle size class").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
