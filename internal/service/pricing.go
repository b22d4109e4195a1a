package service

import (
	"context"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/domain/catalog"
	"github.com/detailpos/detailpos/internal/validator"
)

// PricingService resolves catalog services to unit prices. The resolution
// rules themselves live in the catalog domain as a pure function; this
// service only fetches the record and reports the outcome.
type PricingService interface {
	ResolvePrice(ctx context.Context, req dto.ResolvePriceRequest) (*dto.ResolvePriceResponse, error)
}

type pricingService struct {
	ServiceParams
}

// NewPricingService creates a new pricing service
func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{
		ServiceParams: params,
	}
}

// ResolvePrice resolves a service's unit price against an optional vehicle
// size class
func (s *pricingService) ResolvePrice(ctx context.Context, req dto.ResolvePriceRequest) (*dto.ResolvePriceResponse, error) {
	if err := validator.ValidateRequest(&req); err != nil {
		return nil, err
	}

	svc, err := s.ServiceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	resolution := catalog.ResolvePrice(svc, req.VehicleSize)

	if resolution.Incomplete {
		s.Logger.Warnw("price resolution fell back to base price",
			"service_id", svc.ID,
			"vehicle_size", req.VehicleSize)
	}

	return &dto.ResolvePriceResponse{
		ServiceID:  svc.ID,
		UnitPrice:  resolution.UnitPrice,
		TierLabel:  resolution.TierLabel,
		Incomplete: resolution.Incomplete,
	}, nil
}
