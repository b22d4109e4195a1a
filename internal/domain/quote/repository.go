package quote

import (
	"context"
)

// Repository defines the interface for quote data access
type Repository interface {
	Create(ctx context.Context, quote *Quote) error
	Get(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context) ([]*Quote, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Quote, error)
	Update(ctx context.Context, quote *Quote) error
	Delete(ctx context.Context, id string) error
}
