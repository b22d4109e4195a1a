package service

import (
	"context"
	"strings"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/domain/coupon"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
)

// CouponValidationService resolves coupon codes into dollar discounts. It is
// the only place coupon applicability rules live; the checkout session stores
// the resolved amount and never re-derives it.
type CouponValidationService interface {
	// ValidateCoupon resolves a code against the given subtotal, returning
	// the discount the coupon is worth right now
	ValidateCoupon(ctx context.Context, req dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error)

	// BestAutoApplyCoupon picks the auto-apply coupon worth the most against
	// the given subtotal, or nil when none qualifies
	BestAutoApplyCoupon(ctx context.Context, req dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error)
}

type couponValidationService struct {
	ServiceParams
}

// NewCouponValidationService creates a new coupon validation service
func NewCouponValidationService(params ServiceParams) CouponValidationService {
	return &couponValidationService{
		ServiceParams: params,
	}
}

// ValidateCoupon resolves a coupon code against the current session subtotal
func (s *couponValidationService) ValidateCoupon(ctx context.Context, req dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	c, err := s.CouponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Coupon %s was not found", code).
			Mark(ierr.ErrNotFound)
	}

	return s.resolve(ctx, c, req)
}

// BestAutoApplyCoupon resolves every auto-apply coupon against the subtotal
// and returns the richest one. Coupons that fail validation are skipped, not
// reported; auto-apply never blocks a checkout.
func (s *couponValidationService) BestAutoApplyCoupon(ctx context.Context, req dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	coupons, err := s.CouponRepo.ListAutoApply(ctx)
	if err != nil {
		return nil, err
	}

	var best *dto.ValidateCouponResponse
	for _, c := range coupons {
		resolved, err := s.resolve(ctx, c, req)
		if err != nil {
			continue
		}
		if best == nil || resolved.TotalDiscount.GreaterThan(best.TotalDiscount) {
			best = resolved
		}
	}
	return best, nil
}

func (s *couponValidationService) resolve(ctx context.Context, c *coupon.Coupon, req dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	if c.Status != types.StatusPublished {
		return nil, ierr.NewError("coupon is not active").
			WithHintf("Coupon %s is no longer active", c.Code).
			Mark(ierr.ErrValidation)
	}

	if !c.IsValid() {
		return nil, ierr.NewError("coupon is not redeemable").
			WithHintf("Coupon %s is outside its redemption window or fully redeemed", c.Code).
			Mark(ierr.ErrValidation)
	}

	if req.Subtotal.LessThan(c.MinSubtotal) {
		return nil, ierr.NewError("subtotal below coupon minimum").
			WithHintf("Coupon %s requires a subtotal of at least %s", c.Code, c.MinSubtotal.String()).
			WithReportableDetails(map[string]any{
				"min_subtotal": c.MinSubtotal,
				"subtotal":     req.Subtotal,
			}).
			Mark(ierr.ErrValidation)
	}

	discount := c.CalculateDiscount(req.Subtotal)

	resp := &dto.ValidateCouponResponse{
		CouponID:      c.ID,
		Code:          c.Code,
		TotalDiscount: discount,
		Description:   c.Description,
	}
	if discount.GreaterThan(req.Subtotal) {
		resp.Warning = "discount exceeds the pre-tax subtotal; the balance will be clamped to zero"
	}

	s.Logger.Debugw("resolved coupon",
		"coupon_id", c.ID,
		"code", c.Code,
		"discount", discount,
		"subtotal", req.Subtotal)

	return resp, nil
}
