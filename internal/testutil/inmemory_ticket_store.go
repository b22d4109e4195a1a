package testutil

import (
	"context"

	"github.com/detailpos/detailpos/internal/domain/quote"
	"github.com/detailpos/detailpos/internal/domain/ticket"
	ierr "github.com/detailpos/detailpos/internal/errors"
)

// InMemoryTicketStore implements ticket.Repository
type InMemoryTicketStore struct {
	*InMemoryStore[*ticket.Ticket]
}

// NewInMemoryTicketStore creates a new in-memory ticket store
func NewInMemoryTicketStore() *InMemoryTicketStore {
	return &InMemoryTicketStore{
		InMemoryStore: NewInMemoryStore[*ticket.Ticket](),
	}
}

func copyTicket(t *ticket.Ticket) *ticket.Ticket {
	if t == nil {
		return nil
	}
	copied := *t
	copied.Items = make(quote.JSONBItems, len(t.Items))
	copy(copied.Items, t.Items)
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		copied.CompletedAt = &completed
	}
	return &copied
}

func (s *InMemoryTicketStore) Create(ctx context.Context, t *ticket.Ticket) error {
	if t == nil {
		return ierr.NewError("ticket cannot be nil").
			WithHint("Ticket cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, t.ID, copyTicket(t))
}

func (s *InMemoryTicketStore) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("ticket not found").
			WithHintf("Ticket %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyTicket(t), nil
}

func (s *InMemoryTicketStore) List(ctx context.Context) ([]*ticket.Ticket, error) {
	tickets, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *ticket.Ticket) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	result := make([]*ticket.Ticket, len(tickets))
	for i, t := range tickets {
		result[i] = copyTicket(t)
	}
	return result, nil
}

func (s *InMemoryTicketStore) ListByCustomer(ctx context.Context, customerID string) ([]*ticket.Ticket, error) {
	tickets, err := s.InMemoryStore.List(ctx, customerID,
		func(_ context.Context, t *ticket.Ticket, filter interface{}) bool {
			return t.CustomerID == filter.(string)
		},
		func(i, j *ticket.Ticket) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
	if err != nil {
		return nil, err
	}
	result := make([]*ticket.Ticket, len(tickets))
	for i, t := range tickets {
		result[i] = copyTicket(t)
	}
	return result, nil
}

func (s *InMemoryTicketStore) Update(ctx context.Context, t *ticket.Ticket) error {
	if err := s.InMemoryStore.Update(ctx, t.ID, copyTicket(t)); err != nil {
		return ierr.NewError("ticket not found").
			WithHintf("Ticket %s was not found", t.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryTicketStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError("ticket not found").
			WithHintf("Ticket %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
