package customer

import (
	"github.com/detailpos/detailpos/internal/types"
)

// Customer represents a customer of the store
type Customer struct {
	ID string `db:"id" json:"id"`

	Name string `db:"name" json:"name"`

	Phone string `db:"phone" json:"phone"`

	Email string `db:"email" json:"email"`

	// LoyaltyPoints is the customer's accumulated points balance.
	// Points convert to dollars at the store's configured rate and are
	// redeemed all-or-nothing per ticket.
	LoyaltyPoints int64 `db:"loyalty_points" json:"loyalty_points"`

	types.BaseModel
}

// Vehicle is a customer's vehicle. The size class drives tier selection for
// size-aware service pricing.
type Vehicle struct {
	ID string `db:"id" json:"id"`

	CustomerID string `db:"customer_id" json:"customer_id"`

	Make string `db:"make" json:"make"`

	Model string `db:"model" json:"model"`

	Year int `db:"year" json:"year"`

	Color string `db:"color" json:"color"`

	SizeClass types.VehicleSizeClass `db:"size_class" json:"size_class"`

	types.BaseModel
}
