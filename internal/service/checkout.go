package service

import (
	"context"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/domain/catalog"
	"github.com/detailpos/detailpos/internal/domain/checkout"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// CheckoutService hosts checkout sessions. The session itself is a pure
// in-memory engine; this service is the surface that fetches catalog records,
// resolves coupons and loyalty balances, and dispatches actions carrying the
// results as plain data.
type CheckoutService interface {
	// NewSession opens an empty session of the given kind at the configured
	// tax rate
	NewSession(ctx context.Context, kind types.SessionKind) *checkout.Session

	// AddCatalogService resolves a catalog service against the session's
	// vehicle and adds it as a line
	AddCatalogService(ctx context.Context, session *checkout.Session, serviceID string, quantity int) error

	// AddProduct adds a retail product line
	AddProduct(ctx context.Context, session *checkout.Session, productID string, quantity int) error

	// AddCustomItem adds a free-form charge line
	AddCustomItem(ctx context.Context, session *checkout.Session, name string, unitPrice decimal.Decimal, quantity int, taxable bool) error

	// AssignCustomer attaches or clears the session's customer
	AssignCustomer(ctx context.Context, session *checkout.Session, customerID string) error

	// AssignVehicle attaches a vehicle and re-prices existing service lines
	// for its size class
	AssignVehicle(ctx context.Context, session *checkout.Session, vehicleID string) error

	// ApplyCouponCode validates a typed code and attaches the resolved
	// discount
	ApplyCouponCode(ctx context.Context, session *checkout.Session, code string) error

	// ApplyAutoCoupons attaches the best qualifying auto-apply campaign
	// coupon, if any, without displacing a manually entered one
	ApplyAutoCoupons(ctx context.Context, session *checkout.Session) error

	// RemoveCoupon detaches the current coupon
	RemoveCoupon(ctx context.Context, session *checkout.Session) error

	// RedeemLoyalty attaches the customer's full points balance as a
	// discount; redemption is all-or-nothing
	RedeemLoyalty(ctx context.Context, session *checkout.Session) error

	// ClearLoyalty drops the pending loyalty redemption
	ClearLoyalty(ctx context.Context, session *checkout.Session) error

	// Dispatch applies a raw action to the session
	Dispatch(ctx context.Context, session *checkout.Session, action checkout.Action) error

	// Render returns the session with freshly derived totals
	Render(ctx context.Context, session *checkout.Session) *dto.SessionResponse
}

type checkoutService struct {
	ServiceParams
	couponValidation CouponValidationService
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(params ServiceParams) CheckoutService {
	return &checkoutService{
		ServiceParams:    params,
		couponValidation: NewCouponValidationService(params),
	}
}

// NewSession opens an empty session at the configured tax rate
func (s *checkoutService) NewSession(_ context.Context, kind types.SessionKind) *checkout.Session {
	return checkout.NewSession(kind, s.Config.TaxRateDecimal())
}

// AddCatalogService resolves a service's price against the session's vehicle
// size and dispatches the add
func (s *checkoutService) AddCatalogService(ctx context.Context, session *checkout.Session, serviceID string, quantity int) error {
	svc, err := s.ServiceRepo.Get(ctx, serviceID)
	if err != nil {
		return err
	}

	resolution := catalog.ResolvePrice(svc, session.VehicleSize)
	if resolution.Incomplete {
		s.Logger.Warnw("adding size-aware service without a vehicle",
			"service_id", svc.ID)
	}

	return session.Apply(checkout.Action{
		Type: checkout.ActionAddItem,
		Item: &checkout.LineItemCandidate{
			ItemType:   types.LineItemTypeService,
			CatalogRef: svc.ID,
			ItemName:   svc.Name,
			TierName:   resolution.TierLabel,
			UnitPrice:  resolution.UnitPrice,
			Quantity:   quantity,
			IsTaxable:  svc.Taxable,

			PricingIncomplete: resolution.Incomplete,
		},
	})
}

// AddProduct dispatches a retail product line
func (s *checkoutService) AddProduct(ctx context.Context, session *checkout.Session, productID string, quantity int) error {
	product, err := s.ProductRepo.Get(ctx, productID)
	if err != nil {
		return err
	}

	return session.Apply(checkout.Action{
		Type: checkout.ActionAddItem,
		Item: &checkout.LineItemCandidate{
			ItemType:   types.LineItemTypeProduct,
			CatalogRef: product.ID,
			ItemName:   product.Name,
			UnitPrice:  product.Price,
			Quantity:   quantity,
			IsTaxable:  product.Taxable,
		},
	})
}

// AddCustomItem dispatches a free-form charge line
func (s *checkoutService) AddCustomItem(_ context.Context, session *checkout.Session, name string, unitPrice decimal.Decimal, quantity int, taxable bool) error {
	return session.Apply(checkout.Action{
		Type: checkout.ActionAddItem,
		Item: &checkout.LineItemCandidate{
			ItemType:  types.LineItemTypeCustom,
			ItemName:  name,
			UnitPrice: unitPrice,
			Quantity:  quantity,
			IsTaxable: taxable,
		},
	})
}

// AssignCustomer attaches or clears the customer reference. The customer must
// exist when attaching; clearing cascades inside the engine and re-prices
// service lines back to their default tiers when a vehicle was dropped.
func (s *checkoutService) AssignCustomer(ctx context.Context, session *checkout.Session, customerID string) error {
	if customerID != "" {
		if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
			return err
		}
	}

	hadVehicle := session.VehicleID != "" || session.VehicleSize != ""
	if err := session.Apply(checkout.Action{
		Type:       checkout.ActionSetCustomer,
		CustomerID: customerID,
	}); err != nil {
		return err
	}

	if customerID == "" && hadVehicle {
		return s.recalculateForSession(ctx, session)
	}
	return nil
}

// AssignVehicle attaches a vehicle and re-prices service lines for its size.
// The vehicle must belong to the session's customer.
func (s *checkoutService) AssignVehicle(ctx context.Context, session *checkout.Session, vehicleID string) error {
	if vehicleID == "" {
		if err := session.Apply(checkout.Action{Type: checkout.ActionSetVehicle}); err != nil {
			return err
		}
		return s.recalculateForSession(ctx, session)
	}

	vehicle, err := s.VehicleRepo.Get(ctx, vehicleID)
	if err != nil {
		return err
	}
	if session.CustomerID == "" || vehicle.CustomerID != session.CustomerID {
		return ierr.NewError("vehicle does not belong to the session customer").
			WithHint("Attach the vehicle's owner to the session first").
			Mark(ierr.ErrInvalidOperation)
	}

	if err := session.Apply(checkout.Action{
		Type:        checkout.ActionSetVehicle,
		VehicleID:   vehicle.ID,
		VehicleSize: vehicle.SizeClass,
	}); err != nil {
		return err
	}

	services, err := s.catalogForSession(ctx, session)
	if err != nil {
		return err
	}
	return session.Apply(checkout.Action{
		Type:        checkout.ActionRecalculateForVehicle,
		VehicleSize: vehicle.SizeClass,
		Services:    services,
	})
}

// recalculateForSession re-prices service lines against the session's current
// vehicle size, which may be empty after a clear
func (s *checkoutService) recalculateForSession(ctx context.Context, session *checkout.Session) error {
	services, err := s.catalogForSession(ctx, session)
	if err != nil {
		return err
	}
	return session.Apply(checkout.Action{
		Type:        checkout.ActionRecalculateForVehicle,
		VehicleSize: session.VehicleSize,
		Services:    services,
	})
}

// catalogForSession fetches the catalog records for every service line in the
// session, keyed by id. Lines whose service has since been deleted are simply
// absent; the recalculation pass leaves them at their current price.
func (s *checkoutService) catalogForSession(ctx context.Context, session *checkout.Session) (map[string]*catalog.Service, error) {
	services := make(map[string]*catalog.Service)
	for _, item := range session.Items {
		if item.ItemType != types.LineItemTypeService || item.CatalogRef == "" {
			continue
		}
		if _, ok := services[item.CatalogRef]; ok {
			continue
		}
		svc, err := s.ServiceRepo.Get(ctx, item.CatalogRef)
		if err != nil {
			if ierr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		services[item.CatalogRef] = svc
	}
	return services, nil
}

// ApplyCouponCode validates a typed code against the current subtotal and
// attaches the resolved discount
func (s *checkoutService) ApplyCouponCode(ctx context.Context, session *checkout.Session, code string) error {
	totals := session.Totals()
	resolved, err := s.couponValidation.ValidateCoupon(ctx, dto.ValidateCouponRequest{
		Code:       code,
		Subtotal:   totals.Subtotal,
		CustomerID: session.CustomerID,
	})
	if err != nil {
		return err
	}

	return session.Apply(checkout.Action{
		Type: checkout.ActionSetCoupon,
		Coupon: &checkout.AppliedCoupon{
			ID:       resolved.CouponID,
			Code:     resolved.Code,
			Discount: resolved.TotalDiscount,
		},
	})
}

// ApplyAutoCoupons attaches the best qualifying campaign coupon. A manually
// entered coupon always wins over auto-apply.
func (s *checkoutService) ApplyAutoCoupons(ctx context.Context, session *checkout.Session) error {
	if session.Coupon != nil && !session.Coupon.IsAutoApplied {
		return nil
	}

	totals := session.Totals()
	best, err := s.couponValidation.BestAutoApplyCoupon(ctx, dto.ValidateCouponRequest{
		Subtotal:   totals.Subtotal,
		CustomerID: session.CustomerID,
	})
	if err != nil {
		return err
	}
	if best == nil {
		if session.Coupon != nil && session.Coupon.IsAutoApplied {
			return session.Apply(checkout.Action{Type: checkout.ActionSetCoupon})
		}
		return nil
	}

	return session.Apply(checkout.Action{
		Type: checkout.ActionSetCoupon,
		Coupon: &checkout.AppliedCoupon{
			ID:            best.CouponID,
			Code:          best.Code,
			Discount:      best.TotalDiscount,
			IsAutoApplied: true,
		},
	})
}

// RemoveCoupon detaches the current coupon
func (s *checkoutService) RemoveCoupon(_ context.Context, session *checkout.Session) error {
	return session.Apply(checkout.Action{Type: checkout.ActionSetCoupon})
}

// RedeemLoyalty quotes the customer's full balance and attaches it as a
// pending discount. Points are deducted only when the ticket completes.
func (s *checkoutService) RedeemLoyalty(ctx context.Context, session *checkout.Session) error {
	if session.CustomerID == "" {
		return ierr.NewError("loyalty redemption requires a customer").
			WithHint("Attach a customer before redeeming points").
			Mark(ierr.ErrInvalidOperation)
	}

	c, err := s.CustomerRepo.Get(ctx, session.CustomerID)
	if err != nil {
		return err
	}
	if c.LoyaltyPoints <= 0 {
		return ierr.NewError("customer has no loyalty points").
			WithHint("The customer has no points to redeem").
			Mark(ierr.ErrValidation)
	}

	discount := decimal.NewFromInt(c.LoyaltyPoints).Mul(s.Config.LoyaltyRateDecimal())

	return session.Apply(checkout.Action{
		Type:            checkout.ActionSetLoyaltyRedeem,
		LoyaltyPoints:   c.LoyaltyPoints,
		LoyaltyDiscount: discount,
	})
}

// ClearLoyalty drops the pending loyalty redemption
func (s *checkoutService) ClearLoyalty(_ context.Context, session *checkout.Session) error {
	return session.Apply(checkout.Action{
		Type:            checkout.ActionSetLoyaltyRedeem,
		LoyaltyDiscount: decimal.Zero,
	})
}

// Dispatch applies a raw action to the session
func (s *checkoutService) Dispatch(_ context.Context, session *checkout.Session, action checkout.Action) error {
	return session.Apply(action)
}

// Render returns the session with freshly derived totals
func (s *checkoutService) Render(_ context.Context, session *checkout.Session) *dto.SessionResponse {
	return dto.NewSessionResponse(session, s.Config.Pricing.Currency)
}
