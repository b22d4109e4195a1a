package coupon

import (
	"testing"
	"time"

	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidDateWindow(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	open := &Coupon{}
	assert.True(t, open.IsValid())

	notYet := &Coupon{RedeemAfter: &future}
	assert.False(t, notYet.IsValid())

	expired := &Coupon{RedeemBefore: &past}
	assert.False(t, expired.IsValid())

	inWindow := &Coupon{RedeemAfter: &past, RedeemBefore: &future}
	assert.True(t, inWindow.IsValid())
}

func TestIsValidRedemptionCap(t *testing.T) {
	max := 10

	capped := &Coupon{MaxRedemptions: &max, TotalRedemptions: 10}
	assert.False(t, capped.IsValid())

	below := &Coupon{MaxRedemptions: &max, TotalRedemptions: 9}
	assert.True(t, below.IsValid())

	uncapped := &Coupon{TotalRedemptions: 1000}
	assert.True(t, uncapped.IsValid())
}

func TestCalculateDiscountFixed(t *testing.T) {
	c := &Coupon{Type: types.CouponTypeFixed, AmountOff: decimal.NewFromInt(10)}

	// Fixed coupons ignore the subtotal entirely
	assert.True(t, c.CalculateDiscount(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(10)))
	assert.True(t, c.CalculateDiscount(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(10)))
}

func TestCalculateDiscountPercentage(t *testing.T) {
	c := &Coupon{Type: types.CouponTypePercentage, PercentageOff: decimal.NewFromInt(15)}

	assert.True(t, c.CalculateDiscount(decimal.NewFromInt(200)).Equal(decimal.NewFromInt(30)))
	assert.True(t, c.CalculateDiscount(decimal.Zero).IsZero())
}

func TestCalculateDiscountUnknownType(t *testing.T) {
	c := &Coupon{Type: types.CouponType("mystery"), AmountOff: decimal.NewFromInt(10)}
	assert.True(t, c.CalculateDiscount(decimal.NewFromInt(100)).IsZero())
}
