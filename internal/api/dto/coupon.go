package dto

import (
	"time"

	"github.com/detailpos/detailpos/internal/domain/coupon"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest represents the request to create a new coupon
type CreateCouponRequest struct {
	Code           string           `json:"code" validate:"required"`
	Description    string           `json:"description,omitempty"`
	Type           types.CouponType `json:"type" validate:"required,oneof=fixed percentage"`
	AmountOff      decimal.Decimal  `json:"amount_off"`
	PercentageOff  decimal.Decimal  `json:"percentage_off"`
	MinSubtotal    decimal.Decimal  `json:"min_subtotal"`
	RedeemAfter    *time.Time       `json:"redeem_after,omitempty"`
	RedeemBefore   *time.Time       `json:"redeem_before,omitempty"`
	MaxRedemptions *int             `json:"max_redemptions,omitempty"`
	AutoApply      bool             `json:"auto_apply"`
}

// Validate validates the CreateCouponRequest
func (r *CreateCouponRequest) Validate() error {
	if r.Code == "" {
		return ierr.NewError("code is required").
			WithHint("Please provide a coupon code").
			Mark(ierr.ErrValidation)
	}

	switch r.Type {
	case types.CouponTypeFixed:
		if r.AmountOff.LessThanOrEqual(decimal.Zero) {
			return ierr.NewError("amount_off must be greater than zero for fixed discount").
				WithHint("Please provide a valid discount amount").
				Mark(ierr.ErrValidation)
		}
	case types.CouponTypePercentage:
		if r.PercentageOff.LessThanOrEqual(decimal.Zero) || r.PercentageOff.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("percentage_off must be between 0 and 100 for percentage discount").
				WithHint("Please provide a valid percentage between 0 and 100").
				Mark(ierr.ErrValidation)
		}
	default:
		return r.Type.Validate()
	}

	if r.MinSubtotal.LessThan(decimal.Zero) {
		return ierr.NewError("min_subtotal must not be negative").
			WithHint("Please provide a valid minimum subtotal").
			Mark(ierr.ErrValidation)
	}

	if r.RedeemAfter != nil && r.RedeemBefore != nil {
		if r.RedeemAfter.After(*r.RedeemBefore) {
			return ierr.NewError("redeem_after must be before redeem_before").
				WithHint("Please provide a valid date range").
				Mark(ierr.ErrValidation)
		}
	}

	if r.MaxRedemptions != nil && *r.MaxRedemptions <= 0 {
		return ierr.NewError("max_redemptions must be greater than zero").
			WithHint("Please provide a valid redemption limit").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	*coupon.Coupon
}

// ValidateCouponRequest asks the validation service to resolve a coupon code
// against the current session. This is the boundary of spec note: the engine
// never sees the code, only the resolved discount handed back.
type ValidateCouponRequest struct {
	Code       string          `json:"code" validate:"required"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	CustomerID string          `json:"customer_id,omitempty"`
}

// Validate validates the ValidateCouponRequest
func (r *ValidateCouponRequest) Validate() error {
	if r.Code == "" {
		return ierr.NewError("code is required").
			WithHint("Please provide a coupon code").
			Mark(ierr.ErrValidation)
	}
	if r.Subtotal.LessThan(decimal.Zero) {
		return ierr.NewError("subtotal must not be negative").
			WithHint("Subtotal must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ValidateCouponResponse carries the resolved discount for a valid coupon
type ValidateCouponResponse struct {
	CouponID      string          `json:"id"`
	Code          string          `json:"code"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	Description   string          `json:"description,omitempty"`
	Warning       string          `json:"warning,omitempty"`
}
