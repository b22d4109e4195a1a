package checkout

import (
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// AppliedCoupon is a coupon attached to a session. The discount is the
// already-resolved dollar amount handed over by the coupon validation
// service; the engine treats it as an opaque authoritative value and performs
// no eligibility logic of its own.
type AppliedCoupon struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Discount      decimal.Decimal `json:"discount"`
	IsAutoApplied bool            `json:"is_auto_applied"`
}

// ManualDiscount is a discretionary, staff-entered discount. At most one is
// active per session; applying a new one overwrites the previous.
type ManualDiscount struct {
	Type types.ManualDiscountType `json:"type"`

	// Value is a dollar amount for dollar discounts or a percentage in
	// (0, 100] for percent discounts
	Value decimal.Decimal `json:"value"`

	// Label is the staff-entered reason, kept for the audit trail. The
	// engine does not enforce it non-empty.
	Label string `json:"label"`
}

// Validate reports user-correctable problems with the discount
func (d ManualDiscount) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if d.Value.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("discount value must be greater than 0").
			WithHint("Discount value must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if d.Type == types.ManualDiscountTypePercent && d.Value.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("percent discount cannot exceed 100").
			WithHint("Percent discounts cannot exceed 100").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Amount resolves the dollar effect of the discount. Percent discounts are
// anchored to the undiscounted subtotal, not a running total, so the labeled
// savings always match the stated percentage of the original price.
func (d ManualDiscount) Amount(subtotal decimal.Decimal) decimal.Decimal {
	if d.Type == types.ManualDiscountTypePercent {
		return subtotal.Mul(d.Value).Div(decimal.NewFromInt(100))
	}
	return d.Value
}
