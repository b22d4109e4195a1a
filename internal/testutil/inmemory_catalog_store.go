package testutil

import (
	"context"

	"github.com/detailpos/detailpos/internal/domain/catalog"
	ierr "github.com/detailpos/detailpos/internal/errors"
)

// InMemoryServiceStore implements catalog.ServiceRepository
type InMemoryServiceStore struct {
	*InMemoryStore[*catalog.Service]
}

// NewInMemoryServiceStore creates a new in-memory service store
func NewInMemoryServiceStore() *InMemoryServiceStore {
	return &InMemoryServiceStore{
		InMemoryStore: NewInMemoryStore[*catalog.Service](),
	}
}

func copyService(svc *catalog.Service) *catalog.Service {
	if svc == nil {
		return nil
	}
	copied := *svc
	copied.Tiers = make(catalog.JSONBTiers, len(svc.Tiers))
	copy(copied.Tiers, svc.Tiers)
	return &copied
}

func (s *InMemoryServiceStore) Create(ctx context.Context, svc *catalog.Service) error {
	if svc == nil {
		return ierr.NewError("service cannot be nil").
			WithHint("Service cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, svc.ID, copyService(svc))
}

func (s *InMemoryServiceStore) Get(ctx context.Context, id string) (*catalog.Service, error) {
	svc, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("service not found").
			WithHintf("Service %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyService(svc), nil
}

func (s *InMemoryServiceStore) List(ctx context.Context) ([]*catalog.Service, error) {
	services, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *catalog.Service) bool {
		return i.Name < j.Name
	})
	if err != nil {
		return nil, err
	}
	result := make([]*catalog.Service, len(services))
	for i, svc := range services {
		result[i] = copyService(svc)
	}
	return result, nil
}

func (s *InMemoryServiceStore) Update(ctx context.Context, svc *catalog.Service) error {
	if err := s.InMemoryStore.Update(ctx, svc.ID, copyService(svc)); err != nil {
		return ierr.NewError("service not found").
			WithHintf("Service %s was not found", svc.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryServiceStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError("service not found").
			WithHintf("Service %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// InMemoryProductStore implements catalog.ProductRepository
type InMemoryProductStore struct {
	*InMemoryStore[*catalog.Product]
}

// NewInMemoryProductStore creates a new in-memory product store
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*catalog.Product](),
	}
}

func copyProduct(p *catalog.Product) *catalog.Product {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *catalog.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").
			WithHint("Product cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*catalog.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("product not found").
			WithHintf("Product %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) List(ctx context.Context) ([]*catalog.Product, error) {
	products, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *catalog.Product) bool {
		return i.Name < j.Name
	})
	if err != nil {
		return nil, err
	}
	result := make([]*catalog.Product, len(products))
	for i, p := range products {
		result[i] = copyProduct(p)
	}
	return result, nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *catalog.Product) error {
	if err := s.InMemoryStore.Update(ctx, p.ID, copyProduct(p)); err != nil {
		return ierr.NewError("product not found").
			WithHintf("Product %s was not found", p.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryProductStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError("product not found").
			WithHintf("Product %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
