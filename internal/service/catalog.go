package service

import (
	"context"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/cache"
	"github.com/detailpos/detailpos/internal/domain/catalog"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
)

// CatalogService defines the interface for catalog operations
type CatalogService interface {
	CreateService(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetService(ctx context.Context, id string) (*dto.ServiceResponse, error)
	ListServices(ctx context.Context) ([]*dto.ServiceResponse, error)
	UpdateService(ctx context.Context, id string, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
}

type catalogService struct {
	ServiceParams
}

// NewCatalogService creates a new catalog service
func NewCatalogService(params ServiceParams) CatalogService {
	return &catalogService{
		ServiceParams: params,
	}
}

// CreateService creates a new catalog service
func (s *catalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	svc := req.ToService(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SERVICE),
		types.GetDefaultBaseModel(ctx),
	)

	if err := s.ServiceRepo.Create(ctx, svc); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create service").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("created catalog service",
		"service_id", svc.ID,
		"pricing_model", svc.PricingModel)

	return &dto.ServiceResponse{Service: svc}, nil
}

// GetService retrieves a service by ID, read-through cached
func (s *catalogService) GetService(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	key := cache.GenerateKey(cache.PrefixService, id)
	if cached, found := s.Cache.Get(ctx, key); found {
		if svc, ok := cached.(*catalog.Service); ok {
			return &dto.ServiceResponse{Service: svc}, nil
		}
	}

	svc, err := s.ServiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, svc, cache.DefaultExpiration)
	return &dto.ServiceResponse{Service: svc}, nil
}

// ListServices lists all catalog services
func (s *catalogService) ListServices(ctx context.Context) ([]*dto.ServiceResponse, error) {
	services, err := s.ServiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ServiceResponse, len(services))
	for i, svc := range services {
		responses[i] = &dto.ServiceResponse{Service: svc}
	}
	return responses, nil
}

// UpdateService updates an existing catalog service
func (s *catalogService) UpdateService(ctx context.Context, id string, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := s.ServiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.PricingModel != nil {
		svc.PricingModel = *req.PricingModel
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.Taxable != nil {
		svc.Taxable = *req.Taxable
	}
	if req.Tiers != nil {
		tiers := make(catalog.JSONBTiers, 0, len(*req.Tiers))
		for _, tier := range *req.Tiers {
			tiers = append(tiers, catalog.PriceTier{
				SizeClass: tier.SizeClass,
				Label:     tier.Label,
				UnitPrice: tier.UnitPrice,
			})
		}
		svc.Tiers = tiers
	}

	if err := svc.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Service definition is invalid").
			Mark(ierr.ErrValidation)
	}

	if err := s.ServiceRepo.Update(ctx, svc); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update service").
			Mark(ierr.ErrDatabase)
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixService, id))
	return &dto.ServiceResponse{Service: svc}, nil
}

// DeleteService deletes a catalog service
func (s *catalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.ServiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixService, id))
	return nil
}

// CreateProduct creates a new retail product
func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product := req.ToProduct(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		types.GetDefaultBaseModel(ctx),
	)

	if err := s.ProductRepo.Create(ctx, product); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}

	return &dto.ProductResponse{Product: product}, nil
}

// GetProduct retrieves a product by ID, read-through cached
func (s *catalogService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	key := cache.GenerateKey(cache.PrefixProduct, id)
	if cached, found := s.Cache.Get(ctx, key); found {
		if product, ok := cached.(*catalog.Product); ok {
			return &dto.ProductResponse{Product: product}, nil
		}
	}

	product, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, product, cache.DefaultExpiration)
	return &dto.ProductResponse{Product: product}, nil
}

// ListProducts lists all retail products
func (s *catalogService) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := s.ProductRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ProductResponse, len(products))
	for i, product := range products {
		responses[i] = &dto.ProductResponse{Product: product}
	}
	return responses, nil
}

// DeleteProduct deletes a retail product
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.ProductRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixProduct, id))
	return nil
}
