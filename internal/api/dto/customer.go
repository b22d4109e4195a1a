package dto

import (
	"github.com/detailpos/detailpos/internal/domain/customer"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents the request to create a customer
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// ToCustomer converts the request into a domain customer
func (r *CreateCustomerRequest) ToCustomer(id string, base types.BaseModel) *customer.Customer {
	return &customer.Customer{
		ID:        id,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		BaseModel: base,
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	*customer.Customer
}

// CreateVehicleRequest represents the request to register a vehicle
type CreateVehicleRequest struct {
	CustomerID string                 `json:"customer_id" validate:"required"`
	Make       string                 `json:"make" validate:"required"`
	Model      string                 `json:"model" validate:"required"`
	Year       int                    `json:"year,omitempty"`
	Color      string                 `json:"color,omitempty"`
	SizeClass  types.VehicleSizeClass `json:"size_class" validate:"required"`
}

// Validate validates the CreateVehicleRequest
func (r *CreateVehicleRequest) Validate() error {
	return r.SizeClass.Validate()
}

// ToVehicle converts the request into a domain vehicle
func (r *CreateVehicleRequest) ToVehicle(id string, base types.BaseModel) *customer.Vehicle {
	return &customer.Vehicle{
		ID:         id,
		CustomerID: r.CustomerID,
		Make:       r.Make,
		Model:      r.Model,
		Year:       r.Year,
		Color:      r.Color,
		SizeClass:  r.SizeClass,
		BaseModel:  base,
	}
}

// VehicleResponse represents a vehicle in API responses
type VehicleResponse struct {
	*customer.Vehicle
}

// LoyaltyQuoteRequest asks for the dollar value of redeeming a customer's
// full loyalty balance
type LoyaltyQuoteRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
}

// LoyaltyQuoteResponse carries the all-or-nothing redemption quote
type LoyaltyQuoteResponse struct {
	CustomerID     string          `json:"customer_id"`
	PointsToRedeem int64           `json:"points_to_redeem"`
	Discount       decimal.Decimal `json:"discount"`
}

// Validate validates the LoyaltyQuoteRequest
func (r *LoyaltyQuoteRequest) Validate() error {
	if r.CustomerID == "" {
		return ierr.NewError("customer_id is required").
			WithHint("Please provide a customer").
			Mark(ierr.ErrValidation)
	}
	return nil
}
