package catalog

import (
	"context"
)

// ServiceRepository defines the interface for service catalog data access
type ServiceRepository interface {
	Create(ctx context.Context, service *Service) error
	Get(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context) ([]*Service, error)
	Update(ctx context.Context, service *Service) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines the interface for product catalog data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
}
