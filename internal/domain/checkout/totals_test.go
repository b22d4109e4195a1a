package checkout

import (
	"testing"

	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(types.SessionKindTicket, decimal.NewFromFloat(0.08))
}

func addLine(t *testing.T, s *Session, name string, unitPrice float64, quantity int, taxable bool) string {
	t.Helper()
	id, err := s.AddItem(LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  name,
		UnitPrice: decimal.NewFromFloat(unitPrice),
		Quantity:  quantity,
		IsTaxable: taxable,
	})
	require.NoError(t, err)
	return id
}

func TestTotalsEmptySession(t *testing.T) {
	s := newTestSession(t)
	totals := s.Totals()

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestTotalsSubtotalAndTax(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, "Full Detail", 50, 2, true)

	totals := s.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(8)), "tax %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(108)), "total %s", totals.Total)
}

func TestTotalsNonTaxableLine(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, "Gift Card", 25, 1, false)
	addLine(t, s, "Wax", 10, 1, true)

	totals := s.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(35)))
	assert.True(t, totals.TaxAmount.Equal(decimal.NewFromFloat(0.8)), "tax %s", totals.TaxAmount)
}

func TestTotalsCouponThenManualPercent(t *testing.T) {
	// $100 subtotal, $10 coupon, 20% manual discount anchored to the
	// subtotal (not the post-coupon balance): 100 - 10 - 20 = 70, plus $8 tax.
	s := newTestSession(t)
	addLine(t, s, "Full Detail", 100, 1, true)

	require.NoError(t, s.SetCoupon(&AppliedCoupon{
		ID:       "coupon-1",
		Code:     "SAVE10",
		Discount: decimal.NewFromInt(10),
	}))
	require.NoError(t, s.ApplyManualDiscount(types.ManualDiscountTypePercent, decimal.NewFromInt(20), "manager"))

	totals := s.Totals()
	assert.True(t, totals.CouponDiscount.Equal(decimal.NewFromInt(10)))
	assert.True(t, totals.ManualDiscountAmount.Equal(decimal.NewFromInt(20)), "manual %s", totals.ManualDiscountAmount)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(78)), "total %s", totals.Total)
}

func TestTotalsLoyaltyDiscount(t *testing.T) {
	// 500 points at $0.01 per point is a $5.00 discount
	s := newTestSession(t)
	addLine(t, s, "Wash", 30, 1, true)

	require.NoError(t, s.SetLoyaltyRedemption(500, decimal.NewFromFloat(5.00)))

	totals := s.Totals()
	assert.True(t, totals.LoyaltyDiscount.Equal(decimal.NewFromInt(5)))
	expected := decimal.NewFromInt(25).Add(decimal.NewFromFloat(2.4))
	assert.True(t, totals.Total.Equal(expected), "total %s", totals.Total)
}

func TestTotalsTaxUnaffectedByDiscounts(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, "Full Detail", 100, 1, true)

	before := s.Totals().TaxAmount

	require.NoError(t, s.SetCoupon(&AppliedCoupon{ID: "c", Code: "HALF", Discount: decimal.NewFromInt(50)}))
	require.NoError(t, s.SetLoyaltyRedemption(100, decimal.NewFromInt(1)))
	require.NoError(t, s.ApplyManualDiscount(types.ManualDiscountTypeDollar, decimal.NewFromInt(5), ""))

	assert.True(t, s.Totals().TaxAmount.Equal(before))
}

func TestTotalsClampedAtZeroOnceAfterAllDiscounts(t *testing.T) {
	// Discounts stack past the subtotal; the pre-tax balance clamps to zero
	// once at the end, so the tax still applies and the total never goes
	// negative.
	s := newTestSession(t)
	addLine(t, s, "Wash", 20, 1, true)

	require.NoError(t, s.SetCoupon(&AppliedCoupon{ID: "c", Code: "BIG", Discount: decimal.NewFromInt(15)}))
	require.NoError(t, s.SetLoyaltyRedemption(1000, decimal.NewFromInt(10)))

	totals := s.Totals()
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(1.6)), "total %s", totals.Total)
}

func TestTotalsNoPerDiscountClamp(t *testing.T) {
	// A coupon larger than the subtotal does not zero the balance before the
	// remaining discounts are subtracted; the reported discount amounts stay
	// nominal.
	s := newTestSession(t)
	addLine(t, s, "Wash", 20, 1, false)

	require.NoError(t, s.SetCoupon(&AppliedCoupon{ID: "c", Code: "MEGA", Discount: decimal.NewFromInt(30)}))
	require.NoError(t, s.ApplyManualDiscount(types.ManualDiscountTypeDollar, decimal.NewFromInt(5), ""))

	totals := s.Totals()
	assert.True(t, totals.CouponDiscount.Equal(decimal.NewFromInt(30)))
	assert.True(t, totals.ManualDiscountAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, totals.Total.IsZero())
}

func TestTotalsManualDollarDiscount(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, "Wash", 40, 1, true)

	require.NoError(t, s.ApplyManualDiscount(types.ManualDiscountTypeDollar, decimal.NewFromInt(15), "loyal regular"))

	totals := s.Totals()
	expected := decimal.NewFromInt(25).Add(decimal.NewFromFloat(3.2))
	assert.True(t, totals.Total.Equal(expected), "total %s", totals.Total)
}

func TestTotalsRecomputedFromScratch(t *testing.T) {
	s := newTestSession(t)
	id := addLine(t, s, "Wash", 40, 1, true)

	first := s.Totals()
	require.NoError(t, s.UpdateQuantity(id, 3))
	second := s.Totals()

	assert.True(t, first.Subtotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, second.Subtotal.Equal(decimal.NewFromInt(120)))

	// Reading twice with no mutation yields identical results
	assert.True(t, s.Totals().Total.Equal(second.Total))
}

func TestTotalsManualPercentUnchangedByLoyaltyChanges(t *testing.T) {
	// The percent anchor is the subtotal, so swapping the loyalty redemption
	// in and out never moves the manual discount's dollar amount
	s := newTestSession(t)
	addLine(t, s, "Full Detail", 200, 1, true)
	require.NoError(t, s.ApplyManualDiscount(types.ManualDiscountTypePercent, decimal.NewFromInt(25), "manager"))

	anchored := s.Totals().ManualDiscountAmount
	assert.True(t, anchored.Equal(decimal.NewFromInt(50)), "manual %s", anchored)

	require.NoError(t, s.SetLoyaltyRedemption(1000, decimal.NewFromInt(10)))
	assert.True(t, s.Totals().ManualDiscountAmount.Equal(anchored))
	assert.True(t, s.Totals().LoyaltyDiscount.Equal(decimal.NewFromInt(10)))

	require.NoError(t, s.SetLoyaltyRedemption(2000, decimal.NewFromInt(20)))
	assert.True(t, s.Totals().ManualDiscountAmount.Equal(anchored))

	require.NoError(t, s.SetLoyaltyRedemption(0, decimal.Zero))
	assert.True(t, s.Totals().ManualDiscountAmount.Equal(anchored))
}
