package ticket

import (
	"context"
)

// Repository defines the interface for ticket data access
type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	Get(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context) ([]*Ticket, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Ticket, error)
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, id string) error
}
