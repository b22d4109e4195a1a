package checkout

import (
	"testing"
	"time"

	"github.com/detailpos/detailpos/internal/domain/catalog"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionQuoteStartsDraft(t *testing.T) {
	s := NewSession(types.SessionKindQuote, decimal.NewFromFloat(0.08))
	assert.Equal(t, types.QuoteStatusDraft, s.QuoteStatus)
	assert.True(t, s.IsEmpty())

	s = NewSession(types.SessionKindTicket, decimal.NewFromFloat(0.08))
	assert.Empty(t, s.QuoteStatus)
}

func TestAddItemMergesSameCatalogRow(t *testing.T) {
	s := newTestSession(t)

	candidate := LineItemCandidate{
		ItemType:   types.LineItemTypeService,
		CatalogRef: "svc_1",
		ItemName:   "Interior Detail",
		TierName:   "Sedan",
		UnitPrice:  decimal.NewFromInt(80),
		Quantity:   1,
		IsTaxable:  true,
	}

	first, err := s.AddItem(candidate)
	require.NoError(t, err)
	second, err := s.AddItem(candidate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].Quantity)
}

func TestAddItemNoMergeAcrossTierOrPrice(t *testing.T) {
	s := newTestSession(t)

	base := LineItemCandidate{
		ItemType:   types.LineItemTypeService,
		CatalogRef: "svc_1",
		ItemName:   "Interior Detail",
		TierName:   "Sedan",
		UnitPrice:  decimal.NewFromInt(80),
		Quantity:   1,
		IsTaxable:  true,
	}
	_, err := s.AddItem(base)
	require.NoError(t, err)

	other := base
	other.TierName = "SUV"
	other.UnitPrice = decimal.NewFromInt(95)
	_, err = s.AddItem(other)
	require.NoError(t, err)

	assert.Len(t, s.Items, 2)
}

func TestAddItemCustomChargesNeverMerge(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, "Pet hair removal", 25, 1, true)
	addLine(t, s, "Pet hair removal", 25, 1, true)

	assert.Len(t, s.Items, 2)
}

func TestAddItemValidation(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddItem(LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  "",
		UnitPrice: decimal.NewFromInt(10),
		Quantity:  1,
	})
	assert.True(t, ierr.IsValidation(err))

	_, err = s.AddItem(LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  "Thing",
		UnitPrice: decimal.NewFromInt(10),
		Quantity:  0,
	})
	assert.True(t, ierr.IsValidation(err))

	_, err = s.AddItem(LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  "Thing",
		UnitPrice: decimal.NewFromInt(-1),
		Quantity:  1,
	})
	assert.True(t, ierr.IsValidation(err))
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := newTestSession(t)
	id := addLine(t, s, "Wash", 20, 2, true)

	require.NoError(t, s.UpdateQuantity(id, 0))
	assert.Empty(t, s.Items)
}

func TestUpdateQuantityUnknownIDIsNoOp(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, "Wash", 20, 2, true)

	require.NoError(t, s.UpdateQuantity("line_missing", 5))
	assert.Equal(t, 2, s.Items[0].Quantity)
}

func TestUpdateNoteTrimsAndCaps(t *testing.T) {
	s := newTestSession(t)
	id := addLine(t, s, "Wash", 20, 1, true)

	require.NoError(t, s.UpdateNote(id, "  scratch on rear panel  "))
	assert.Equal(t, "scratch on rear panel", s.Items[0].Notes)

	long := make([]byte, types.MaxLineItemNoteLength+1)
	for i := range long {
		long[i] = 'x'
	}
	err := s.UpdateNote(id, string(long))
	assert.True(t, ierr.IsValidation(err))
}

func TestSetCustomerClearCascades(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SetCustomer("cust_1"))
	require.NoError(t, s.SetVehicle("veh_1", types.VehicleSizeSUV))
	require.NoError(t, s.SetLoyaltyRedemption(200, decimal.NewFromInt(2)))

	require.NoError(t, s.SetCustomer(""))

	assert.Empty(t, s.CustomerID)
	assert.Empty(t, s.VehicleID)
	assert.Empty(t, s.VehicleSize)
	assert.Zero(t, s.LoyaltyPointsToRedeem)
	assert.True(t, s.LoyaltyDiscount.IsZero())
}

func TestSetVehicleRequiresValidSize(t *testing.T) {
	s := newTestSession(t)
	err := s.SetVehicle("veh_1", "gigantic")
	assert.True(t, ierr.IsValidation(err))

	require.NoError(t, s.SetVehicle("veh_1", types.VehicleSizeCompact))
	require.NoError(t, s.SetVehicle("", ""))
	assert.Empty(t, s.VehicleID)
}

func TestSetCouponRejectsNegativeDiscount(t *testing.T) {
	s := newTestSession(t)
	err := s.SetCoupon(&AppliedCoupon{ID: "c", Code: "BAD", Discount: decimal.NewFromInt(-5)})
	assert.True(t, ierr.IsValidation(err))

	require.NoError(t, s.SetCoupon(&AppliedCoupon{ID: "c", Code: "OK", Discount: decimal.NewFromInt(5)}))
	require.NoError(t, s.SetCoupon(nil))
	assert.Nil(t, s.Coupon)
}

func TestRecalculateForVehicleIdempotent(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddItem(LineItemCandidate{
		ItemType:   types.LineItemTypeService,
		CatalogRef: "svc_1",
		ItemName:   "Exterior Detail",
		TierName:   "Sedan",
		UnitPrice:  decimal.NewFromInt(100),
		Quantity:   2,
		IsTaxable:  true,
		Notes:      "extra buffing",
	})
	require.NoError(t, err)
	addLine(t, s, "Air freshener", 5, 1, true)

	services := map[string]*catalog.Service{
		"svc_1": {
			ID:           "svc_1",
			Name:         "Exterior Detail",
			PricingModel: types.PricingModelVehicleSize,
			BasePrice:    decimal.NewFromInt(100),
			Tiers: catalog.JSONBTiers{
				{SizeClass: types.VehicleSizeSUV, Label: "SUV / Crossover", UnitPrice: decimal.NewFromInt(130)},
			},
		},
	}

	require.NoError(t, s.RecalculateForVehicle(types.VehicleSizeSUV, services))
	require.NoError(t, s.RecalculateForVehicle(types.VehicleSizeSUV, services))

	svc := s.Items[0]
	assert.True(t, svc.UnitPrice.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, "SUV / Crossover", svc.TierName)
	assert.Equal(t, 2, svc.Quantity)
	assert.Equal(t, "extra buffing", svc.Notes)

	// Non-service lines are untouched
	assert.True(t, s.Items[1].UnitPrice.Equal(decimal.NewFromInt(5)))
}

func TestRecalculateForVehicleUnknownServiceKeepsPrice(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddItem(LineItemCandidate{
		ItemType:   types.LineItemTypeService,
		CatalogRef: "svc_gone",
		ItemName:   "Retired Service",
		UnitPrice:  decimal.NewFromInt(60),
		Quantity:   1,
		IsTaxable:  true,
	})
	require.NoError(t, err)

	require.NoError(t, s.RecalculateForVehicle(types.VehicleSizeSUV, map[string]*catalog.Service{}))
	assert.True(t, s.Items[0].UnitPrice.Equal(decimal.NewFromInt(60)))
}

func TestTerminalQuoteRejectsEdits(t *testing.T) {
	for _, status := range []types.QuoteStatus{
		types.QuoteStatusSent,
		types.QuoteStatusAccepted,
		types.QuoteStatusConverted,
		types.QuoteStatusExpired,
	} {
		s := NewSession(types.SessionKindQuote, decimal.NewFromFloat(0.08))
		s.QuoteStatus = status

		_, err := s.AddItem(LineItemCandidate{
			ItemType:  types.LineItemTypeCustom,
			ItemName:  "Wash",
			UnitPrice: decimal.NewFromInt(20),
			Quantity:  1,
		})
		assert.True(t, ierr.IsInvalidOperation(err), "status %s", status)
		assert.True(t, ierr.IsInvalidOperation(s.SetCustomer("cust_1")), "status %s", status)
		assert.True(t, ierr.IsInvalidOperation(s.SetCoupon(nil)), "status %s", status)
	}
}

func TestDraftQuoteRemainsEditable(t *testing.T) {
	s := NewSession(types.SessionKindQuote, decimal.NewFromFloat(0.08))
	_, err := s.AddItem(LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  "Wash",
		UnitPrice: decimal.NewFromInt(20),
		Quantity:  1,
	})
	assert.NoError(t, err)
}

func TestSetValidUntilQuoteOnly(t *testing.T) {
	until := time.Now().Add(14 * 24 * time.Hour)

	q := NewSession(types.SessionKindQuote, decimal.NewFromFloat(0.08))
	require.NoError(t, q.SetValidUntil(&until))
	assert.Equal(t, &until, q.ValidUntil)

	tk := newTestSession(t)
	assert.True(t, ierr.IsInvalidOperation(tk.SetValidUntil(&until)))
}

func TestClearPreservesKindAndTaxRate(t *testing.T) {
	s := NewSession(types.SessionKindQuote, decimal.NewFromFloat(0.095))
	_, err := s.AddItem(LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  "Wash",
		UnitPrice: decimal.NewFromInt(20),
		Quantity:  1,
	})
	require.NoError(t, err)
	require.NoError(t, s.SetCustomer("cust_1"))

	require.NoError(t, s.Clear())

	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.CustomerID)
	assert.Equal(t, types.SessionKindQuote, s.Kind)
	assert.Equal(t, types.QuoteStatusDraft, s.QuoteStatus)
	assert.True(t, s.TaxRate.Equal(decimal.NewFromFloat(0.095)))
}

func TestLoadReplacesWholesale(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, "Stale edit", 99, 1, true)

	loaded := NewSession(types.SessionKindQuote, decimal.NewFromFloat(0.08))
	loaded.PersistedID = "quote_1"
	loaded.Number = "Q-AB12CD"
	loaded.CustomerID = "cust_2"
	_, err := loaded.AddItem(LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  "Persisted line",
		UnitPrice: decimal.NewFromInt(45),
		Quantity:  1,
	})
	require.NoError(t, err)

	require.NoError(t, s.Load(loaded))

	assert.Equal(t, "quote_1", s.PersistedID)
	assert.Equal(t, "cust_2", s.CustomerID)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "Persisted line", s.Items[0].ItemName)

	assert.True(t, ierr.IsValidation(s.Load(nil)))
}

func TestApplyUnknownActionRejected(t *testing.T) {
	s := newTestSession(t)
	err := s.Apply(Action{Type: ActionType("TIME_TRAVEL")})
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestApplyDispatchesAddAndRemove(t *testing.T) {
	s := newTestSession(t)

	err := s.Apply(Action{
		Type: ActionAddItem,
		Item: &LineItemCandidate{
			ItemType:  types.LineItemTypeCustom,
			ItemName:  "Wash",
			UnitPrice: decimal.NewFromInt(20),
			Quantity:  1,
		},
	})
	require.NoError(t, err)
	require.Len(t, s.Items, 1)

	err = s.Apply(Action{Type: ActionAddItem})
	assert.True(t, ierr.IsValidation(err))

	err = s.Apply(Action{Type: ActionRemoveItem, ItemID: s.Items[0].ID})
	require.NoError(t, err)
	assert.Empty(t, s.Items)
}

func TestManualDiscountValidation(t *testing.T) {
	s := newTestSession(t)

	assert.True(t, ierr.IsValidation(
		s.ApplyManualDiscount(types.ManualDiscountTypePercent, decimal.NewFromInt(101), "")))
	assert.True(t, ierr.IsValidation(
		s.ApplyManualDiscount(types.ManualDiscountTypeDollar, decimal.Zero, "")))

	require.NoError(t, s.ApplyManualDiscount(types.ManualDiscountTypePercent, decimal.NewFromInt(10), "first"))
	require.NoError(t, s.ApplyManualDiscount(types.ManualDiscountTypeDollar, decimal.NewFromInt(5), "second"))
	assert.Equal(t, "second", s.ManualDiscount.Label)

	require.NoError(t, s.RemoveManualDiscount())
	assert.Nil(t, s.ManualDiscount)
}
