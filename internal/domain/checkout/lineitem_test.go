package checkout

import (
	"testing"

	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineItemTotalPrice(t *testing.T) {
	li := &LineItem{UnitPrice: decimal.NewFromFloat(12.50), Quantity: 3}
	assert.True(t, li.TotalPrice().Equal(decimal.NewFromFloat(37.50)))
}

func TestLineItemTaxAmount(t *testing.T) {
	rate := decimal.NewFromFloat(0.08)

	taxable := &LineItem{UnitPrice: decimal.NewFromInt(50), Quantity: 2, IsTaxable: true}
	assert.True(t, taxable.TaxAmount(rate).Equal(decimal.NewFromInt(8)))

	exempt := &LineItem{UnitPrice: decimal.NewFromInt(50), Quantity: 2, IsTaxable: false}
	assert.True(t, exempt.TaxAmount(rate).IsZero())
}

func TestCandidateMatches(t *testing.T) {
	existing := &LineItem{
		CatalogRef: "svc_1",
		TierName:   "Sedan",
		UnitPrice:  decimal.NewFromInt(80),
	}

	same := LineItemCandidate{CatalogRef: "svc_1", TierName: "Sedan", UnitPrice: decimal.NewFromInt(80)}
	assert.True(t, same.matches(existing))

	differentTier := same
	differentTier.TierName = "SUV"
	assert.False(t, differentTier.matches(existing))

	differentPrice := same
	differentPrice.UnitPrice = decimal.NewFromInt(90)
	assert.False(t, differentPrice.matches(existing))

	custom := LineItemCandidate{CatalogRef: "", UnitPrice: decimal.NewFromInt(80)}
	assert.False(t, custom.matches(existing))
	assert.False(t, same.matches(&LineItem{CatalogRef: ""}))
}

func TestCandidateValidateNoteLength(t *testing.T) {
	long := make([]byte, types.MaxLineItemNoteLength+1)
	for i := range long {
		long[i] = 'x'
	}

	c := LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  "Wash",
		UnitPrice: decimal.NewFromInt(20),
		Quantity:  1,
		Notes:     string(long),
	}
	assert.Error(t, c.Validate())

	c.Notes = string(long[:types.MaxLineItemNoteLength])
	assert.NoError(t, c.Validate())
}
