package dto

import (
	"github.com/detailpos/detailpos/internal/domain/catalog"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest represents the request to create a catalog service
type CreateServiceRequest struct {
	Name         string             `json:"name" validate:"required"`
	Description  string             `json:"description,omitempty"`
	PricingModel types.PricingModel `json:"pricing_model" validate:"required,oneof=vehicle_size flat per_unit custom"`
	BasePrice    decimal.Decimal    `json:"base_price"`
	Taxable      bool               `json:"taxable"`
	Tiers        []PriceTierRequest `json:"tiers,omitempty"`
}

// PriceTierRequest is one vehicle-size tier row of a service request
type PriceTierRequest struct {
	SizeClass types.VehicleSizeClass `json:"size_class" validate:"required"`
	Label     string                 `json:"label" validate:"required"`
	UnitPrice decimal.Decimal        `json:"unit_price"`
}

// UpdateServiceRequest represents the request to update a catalog service
type UpdateServiceRequest struct {
	Name         *string             `json:"name,omitempty"`
	Description  *string             `json:"description,omitempty"`
	PricingModel *types.PricingModel `json:"pricing_model,omitempty" validate:"omitempty,oneof=vehicle_size flat per_unit custom"`
	BasePrice    *decimal.Decimal    `json:"base_price,omitempty"`
	Taxable      *bool               `json:"taxable,omitempty"`
	Tiers        *[]PriceTierRequest `json:"tiers,omitempty"`
}

// Validate validates the CreateServiceRequest
func (r *CreateServiceRequest) Validate() error {
	if err := r.PricingModel.Validate(); err != nil {
		return err
	}
	if r.BasePrice.LessThan(decimal.Zero) {
		return ierr.NewError("base_price must not be negative").
			WithHint("Please provide a valid base price").
			Mark(ierr.ErrValidation)
	}
	if r.PricingModel == types.PricingModelVehicleSize && len(r.Tiers) == 0 {
		return ierr.NewError("vehicle_size pricing requires at least one tier").
			WithHint("Please provide tier rows for size-aware pricing").
			Mark(ierr.ErrValidation)
	}
	seen := make(map[types.VehicleSizeClass]bool)
	for _, tier := range r.Tiers {
		if err := tier.SizeClass.Validate(); err != nil {
			return err
		}
		if tier.UnitPrice.LessThan(decimal.Zero) {
			return ierr.NewError("tier unit_price must not be negative").
				WithHint("Please provide valid tier prices").
				Mark(ierr.ErrValidation)
		}
		if seen[tier.SizeClass] {
			return ierr.NewError("duplicate tier size class").
				WithHintf("Size class %s appears more than once", tier.SizeClass).
				Mark(ierr.ErrValidation)
		}
		seen[tier.SizeClass] = true
	}
	return nil
}

// ToService converts the request into a domain service
func (r *CreateServiceRequest) ToService(id string, base types.BaseModel) *catalog.Service {
	tiers := make(catalog.JSONBTiers, 0, len(r.Tiers))
	for _, tier := range r.Tiers {
		tiers = append(tiers, catalog.PriceTier{
			SizeClass: tier.SizeClass,
			Label:     tier.Label,
			UnitPrice: tier.UnitPrice,
		})
	}
	return &catalog.Service{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		PricingModel: r.PricingModel,
		BasePrice:    r.BasePrice,
		Taxable:      r.Taxable,
		Tiers:        tiers,
		BaseModel:    base,
	}
}

// ServiceResponse represents a catalog service in API responses
type ServiceResponse struct {
	*catalog.Service
}

// CreateProductRequest represents the request to create a retail product
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Taxable     bool            `json:"taxable"`
}

// Validate validates the CreateProductRequest
func (r *CreateProductRequest) Validate() error {
	if r.Price.LessThan(decimal.Zero) {
		return ierr.NewError("price must not be negative").
			WithHint("Please provide a valid price").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToProduct converts the request into a domain product
func (r *CreateProductRequest) ToProduct(id string, base types.BaseModel) *catalog.Product {
	return &catalog.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Taxable:     r.Taxable,
		BaseModel:   base,
	}
}

// ProductResponse represents a retail product in API responses
type ProductResponse struct {
	*catalog.Product
}

// ResolvePriceRequest asks for the resolved price of a service against an
// optional vehicle size class
type ResolvePriceRequest struct {
	ServiceID   string                 `json:"service_id" validate:"required"`
	VehicleSize types.VehicleSizeClass `json:"vehicle_size,omitempty"`
}

// ResolvePriceResponse carries the pricing resolver's outcome
type ResolvePriceResponse struct {
	ServiceID  string          `json:"service_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TierLabel  string          `json:"tier_label,omitempty"`
	Incomplete bool            `json:"incomplete"`
}
