package service

import (
	"context"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/cache"
	"github.com/detailpos/detailpos/internal/domain/customer"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// CustomerService defines the interface for customer and vehicle operations
type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context) ([]*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error

	CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest) (*dto.VehicleResponse, error)
	GetVehicle(ctx context.Context, id string) (*dto.VehicleResponse, error)
	ListVehicles(ctx context.Context, customerID string) ([]*dto.VehicleResponse, error)

	// QuoteLoyaltyRedemption quotes the dollar value of redeeming the
	// customer's full points balance. Redemption is all-or-nothing.
	QuoteLoyaltyRedemption(ctx context.Context, req dto.LoyaltyQuoteRequest) (*dto.LoyaltyQuoteResponse, error)
}

type customerService struct {
	ServiceParams
}

// NewCustomerService creates a new customer service
func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		ServiceParams: params,
	}
}

// CreateCustomer creates a new customer
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if req.Name == "" {
		return nil, ierr.NewError("name is required").
			WithHint("Please provide a customer name").
			Mark(ierr.ErrValidation)
	}

	c := req.ToCustomer(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		types.GetDefaultBaseModel(ctx),
	)

	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("created customer", "customer_id", c.ID)
	return &dto.CustomerResponse{Customer: c}, nil
}

// GetCustomer retrieves a customer by ID, read-through cached
func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	key := cache.GenerateKey(cache.PrefixCustomer, id)
	if cached, found := s.Cache.Get(ctx, key); found {
		if c, ok := cached.(*customer.Customer); ok {
			return &dto.CustomerResponse{Customer: c}, nil
		}
	}

	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, c, cache.DefaultExpiration)
	return &dto.CustomerResponse{Customer: c}, nil
}

// ListCustomers lists all customers
func (s *customerService) ListCustomers(ctx context.Context) ([]*dto.CustomerResponse, error) {
	customers, err := s.CustomerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = &dto.CustomerResponse{Customer: c}
	}
	return responses, nil
}

// DeleteCustomer deletes a customer
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.CustomerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixCustomer, id))
	return nil
}

// CreateVehicle registers a vehicle against an existing customer
func (s *customerService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// owner must exist
	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	v := req.ToVehicle(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VEHICLE),
		types.GetDefaultBaseModel(ctx),
	)

	if err := s.VehicleRepo.Create(ctx, v); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create vehicle").
			Mark(ierr.ErrDatabase)
	}

	return &dto.VehicleResponse{Vehicle: v}, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *customerService) GetVehicle(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	v, err := s.VehicleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.VehicleResponse{Vehicle: v}, nil
}

// ListVehicles lists a customer's vehicles
func (s *customerService) ListVehicles(ctx context.Context, customerID string) ([]*dto.VehicleResponse, error) {
	vehicles, err := s.VehicleRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = &dto.VehicleResponse{Vehicle: v}
	}
	return responses, nil
}

// QuoteLoyaltyRedemption converts the customer's full points balance into a
// dollar discount at the configured rate per point
func (s *customerService) QuoteLoyaltyRedemption(ctx context.Context, req dto.LoyaltyQuoteRequest) (*dto.LoyaltyQuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CustomerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	discount := decimal.NewFromInt(c.LoyaltyPoints).Mul(s.Config.LoyaltyRateDecimal())

	return &dto.LoyaltyQuoteResponse{
		CustomerID:     c.ID,
		PointsToRedeem: c.LoyaltyPoints,
		Discount:       discount,
	}, nil
}
