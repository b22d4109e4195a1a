package coupon

import (
	"time"

	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// Coupon represents a discount coupon entity. Coupons are validated and
// resolved to a dollar amount by the coupon validation service before the
// checkout engine ever sees them; the engine consumes only the resolved
// amount.
type Coupon struct {
	ID string `db:"id" json:"id"`

	// Code is the human-facing redemption code, stored uppercase
	Code string `db:"code" json:"code"`

	Description string `db:"description" json:"description"`

	Type types.CouponType `db:"type" json:"type"`

	// AmountOff in main currency units when Type is fixed
	AmountOff decimal.Decimal `db:"amount_off" json:"amount_off"`

	// PercentageOff in whole percents when Type is percentage
	PercentageOff decimal.Decimal `db:"percentage_off" json:"percentage_off"`

	// MinSubtotal gates redemption to tickets at or above this subtotal
	MinSubtotal decimal.Decimal `db:"min_subtotal" json:"min_subtotal"`

	RedeemAfter  *time.Time `db:"redeem_after" json:"redeem_after"`
	RedeemBefore *time.Time `db:"redeem_before" json:"redeem_before"`

	MaxRedemptions   *int `db:"max_redemptions" json:"max_redemptions"`
	TotalRedemptions int  `db:"total_redemptions" json:"total_redemptions"`

	// AutoApply marks campaign coupons attached without a code being typed
	AutoApply bool `db:"auto_apply" json:"auto_apply"`

	types.BaseModel
}

// IsValid checks if the coupon is currently redeemable
func (c *Coupon) IsValid() bool {
	now := time.Now()

	if c.RedeemAfter != nil && now.Before(*c.RedeemAfter) {
		return false
	}

	if c.RedeemBefore != nil && now.After(*c.RedeemBefore) {
		return false
	}

	if c.MaxRedemptions != nil && c.TotalRedemptions >= *c.MaxRedemptions {
		return false
	}

	return true
}

// CalculateDiscount calculates the discount amount for a given subtotal
func (c *Coupon) CalculateDiscount(subtotal decimal.Decimal) decimal.Decimal {
	switch c.Type {
	case types.CouponTypeFixed:
		return c.AmountOff
	case types.CouponTypePercentage:
		return subtotal.Mul(c.PercentageOff).Div(decimal.NewFromInt(100))
	default:
		return decimal.Zero
	}
}
