package types

import (
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/samber/lo"
)

// CouponType represents the type of coupon discount (fixed or percentage)
type CouponType string

const (
	// CouponTypeFixed represents a fixed amount coupon discount
	CouponTypeFixed CouponType = "fixed"
	// CouponTypePercentage represents a percentage-based coupon discount
	CouponTypePercentage CouponType = "percentage"
)

func (t CouponType) String() string {
	return string(t)
}

func (t CouponType) Validate() error {
	allowed := []CouponType{
		CouponTypeFixed,
		CouponTypePercentage,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid coupon type").
			WithHint("Please provide a valid coupon type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ManualDiscountType represents a staff-entered discount unit
type ManualDiscountType string

const (
	// ManualDiscountTypeDollar subtracts a fixed dollar amount
	ManualDiscountTypeDollar ManualDiscountType = "dollar"
	// ManualDiscountTypePercent subtracts a percentage of the subtotal
	ManualDiscountTypePercent ManualDiscountType = "percent"
)

func (t ManualDiscountType) String() string {
	return string(t)
}

func (t ManualDiscountType) Validate() error {
	allowed := []ManualDiscountType{
		ManualDiscountTypeDollar,
		ManualDiscountTypePercent,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid manual discount type").
			WithHint("Please provide a valid manual discount type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
