package checkout

import (
	"github.com/shopspring/decimal"
)

// Totals is the derived money breakdown of a session. It is recomputed from
// scratch on every read rather than cached incrementally, so it can never
// drift from the items and discounts it was derived from.
type Totals struct {
	// Subtotal is the sum of pre-discount row totals
	Subtotal decimal.Decimal `json:"subtotal"`

	// TaxAmount is the sum of per-item tax at pre-discount prices.
	// Discounts do not reduce the taxable base.
	TaxAmount decimal.Decimal `json:"tax_amount"`

	// CouponDiscount is the attached coupon's resolved dollar effect
	CouponDiscount decimal.Decimal `json:"coupon_discount"`

	// LoyaltyDiscount is the dollar value of the points being redeemed
	LoyaltyDiscount decimal.Decimal `json:"loyalty_discount"`

	// ManualDiscountAmount is the manual discount's dollar effect; percent
	// discounts are anchored to the subtotal, not the running balance
	ManualDiscountAmount decimal.Decimal `json:"manual_discount_amount"`

	// Total is the grand total after all discounts plus tax
	Total decimal.Decimal `json:"total"`
}

// Totals derives the money breakdown in a fixed, deterministic order:
//
//  1. subtotal = sum of row totals
//  2. tax = sum of per-item tax at pre-discount prices
//  3. balance -= coupon discount
//  4. balance -= loyalty discount
//  5. balance -= manual discount (percent anchored to subtotal)
//  6. total = max(0, balance) + tax
//
// The pre-tax balance is clamped to zero at the final step only, never per
// discount, so stacked discounts may nominally exceed the subtotal without
// ever producing a negative total. The manual percent anchor and the single
// final clamp are deliberate ordering decisions; tests pin both.
func (s *Session) Totals() Totals {
	totals := Totals{
		Subtotal:             decimal.Zero,
		TaxAmount:            decimal.Zero,
		CouponDiscount:       decimal.Zero,
		LoyaltyDiscount:      s.LoyaltyDiscount,
		ManualDiscountAmount: decimal.Zero,
	}

	for _, item := range s.Items {
		totals.Subtotal = totals.Subtotal.Add(item.TotalPrice())
		totals.TaxAmount = totals.TaxAmount.Add(item.TaxAmount(s.TaxRate))
	}

	if s.Coupon != nil {
		totals.CouponDiscount = s.Coupon.Discount
	}
	if s.ManualDiscount != nil {
		totals.ManualDiscountAmount = s.ManualDiscount.Amount(totals.Subtotal)
	}

	balance := totals.Subtotal.
		Sub(totals.CouponDiscount).
		Sub(totals.LoyaltyDiscount).
		Sub(totals.ManualDiscountAmount)
	if balance.LessThan(decimal.Zero) {
		balance = decimal.Zero
	}

	totals.Total = balance.Add(totals.TaxAmount)
	return totals
}
