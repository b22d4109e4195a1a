package customer

import (
	"context"
)

// Repository defines the interface for customer data access
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id string) error
	// AdjustLoyaltyPoints adds delta (which may be negative) to the
	// customer's points balance
	AdjustLoyaltyPoints(ctx context.Context, id string, delta int64) error
}

// VehicleRepository defines the interface for vehicle data access
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	Get(ctx context.Context, id string) (*Vehicle, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Vehicle, error)
	Update(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id string) error
}
