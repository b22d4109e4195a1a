package testutil

import (
	"context"

	"github.com/detailpos/detailpos/internal/domain/customer"
	ierr "github.com/detailpos/detailpos/internal/errors"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ierr.NewError("customer cannot be nil").
			WithHint("Customer cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context) ([]*customer.Customer, error) {
	customers, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *customer.Customer) bool {
		return i.Name < j.Name
	})
	if err != nil {
		return nil, err
	}
	result := make([]*customer.Customer, len(customers))
	for i, c := range customers {
		result[i] = copyCustomer(c)
	}
	return result, nil
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if err := s.InMemoryStore.Update(ctx, c.ID, copyCustomer(c)); err != nil {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryCustomerStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryCustomerStore) AdjustLoyaltyPoints(ctx context.Context, id string, delta int64) error {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if c.LoyaltyPoints+delta < 0 {
		return ierr.NewError("loyalty adjustment rejected").
			WithHintf("Customer %s has insufficient points", id).
			Mark(ierr.ErrInvalidOperation)
	}

	updated := copyCustomer(c)
	updated.LoyaltyPoints += delta
	return s.InMemoryStore.Update(ctx, id, updated)
}

// InMemoryVehicleStore implements customer.VehicleRepository
type InMemoryVehicleStore struct {
	*InMemoryStore[*customer.Vehicle]
}

// NewInMemoryVehicleStore creates a new in-memory vehicle store
func NewInMemoryVehicleStore() *InMemoryVehicleStore {
	return &InMemoryVehicleStore{
		InMemoryStore: NewInMemoryStore[*customer.Vehicle](),
	}
}

func copyVehicle(v *customer.Vehicle) *customer.Vehicle {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func (s *InMemoryVehicleStore) Create(ctx context.Context, v *customer.Vehicle) error {
	if v == nil {
		return ierr.NewError("vehicle cannot be nil").
			WithHint("Vehicle cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, v.ID, copyVehicle(v))
}

func (s *InMemoryVehicleStore) Get(ctx context.Context, id string) (*customer.Vehicle, error) {
	v, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("vehicle not found").
			WithHintf("Vehicle %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyVehicle(v), nil
}

func (s *InMemoryVehicleStore) ListByCustomer(ctx context.Context, customerID string) ([]*customer.Vehicle, error) {
	vehicles, err := s.InMemoryStore.List(ctx, customerID,
		func(_ context.Context, v *customer.Vehicle, filter interface{}) bool {
			return v.CustomerID == filter.(string)
		},
		func(i, j *customer.Vehicle) bool {
			return i.CreatedAt.Before(j.CreatedAt)
		})
	if err != nil {
		return nil, err
	}
	result := make([]*customer.Vehicle, len(vehicles))
	for i, v := range vehicles {
		result[i] = copyVehicle(v)
	}
	return result, nil
}

func (s *InMemoryVehicleStore) Update(ctx context.Context, v *customer.Vehicle) error {
	if err := s.InMemoryStore.Update(ctx, v.ID, copyVehicle(v)); err != nil {
		return ierr.NewError("vehicle not found").
			WithHintf("Vehicle %s was not found", v.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryVehicleStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError("vehicle not found").
			WithHintf("Vehicle %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
