package testutil

import (
	"context"

	"github.com/detailpos/detailpos/internal/domain/quote"
	ierr "github.com/detailpos/detailpos/internal/errors"
)

// InMemoryQuoteStore implements quote.Repository
type InMemoryQuoteStore struct {
	*InMemoryStore[*quote.Quote]
}

// NewInMemoryQuoteStore creates a new in-memory quote store
func NewInMemoryQuoteStore() *InMemoryQuoteStore {
	return &InMemoryQuoteStore{
		InMemoryStore: NewInMemoryStore[*quote.Quote](),
	}
}

func copyQuote(q *quote.Quote) *quote.Quote {
	if q == nil {
		return nil
	}
	copied := *q
	copied.Items = make(quote.JSONBItems, len(q.Items))
	copy(copied.Items, q.Items)
	if q.ValidUntil != nil {
		until := *q.ValidUntil
		copied.ValidUntil = &until
	}
	return &copied
}

func (s *InMemoryQuoteStore) Create(ctx context.Context, q *quote.Quote) error {
	if q == nil {
		return ierr.NewError("quote cannot be nil").
			WithHint("Quote cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, q.ID, copyQuote(q))
}

func (s *InMemoryQuoteStore) Get(ctx context.Context, id string) (*quote.Quote, error) {
	q, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("quote not found").
			WithHintf("Quote %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyQuote(q), nil
}

func (s *InMemoryQuoteStore) List(ctx context.Context) ([]*quote.Quote, error) {
	quotes, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *quote.Quote) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	result := make([]*quote.Quote, len(quotes))
	for i, q := range quotes {
		result[i] = copyQuote(q)
	}
	return result, nil
}

func (s *InMemoryQuoteStore) ListByCustomer(ctx context.Context, customerID string) ([]*quote.Quote, error) {
	quotes, err := s.InMemoryStore.List(ctx, customerID,
		func(_ context.Context, q *quote.Quote, filter interface{}) bool {
			return q.CustomerID == filter.(string)
		},
		func(i, j *quote.Quote) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
	if err != nil {
		return nil, err
	}
	result := make([]*quote.Quote, len(quotes))
	for i, q := range quotes {
		result[i] = copyQuote(q)
	}
	return result, nil
}

func (s *InMemoryQuoteStore) Update(ctx context.Context, q *quote.Quote) error {
	if err := s.InMemoryStore.Update(ctx, q.ID, copyQuote(q)); err != nil {
		return ierr.NewError("quote not found").
			WithHintf("Quote %s was not found", q.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryQuoteStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError("quote not found").
			WithHintf("Quote %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
