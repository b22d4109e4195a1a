package checkout

import (
	"strings"

	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem is one priced row of a checkout session: a service, a product, or
// a custom charge. Items are mutated in place for quantity and note edits and
// never re-parented to another session.
type LineItem struct {
	// ID is opaque and unique within the session
	ID string `json:"id"`

	ItemType types.LineItemType `json:"item_type"`

	// CatalogRef is the service or product id this row was created from,
	// empty for custom charges
	CatalogRef string `json:"catalog_ref,omitempty"`

	ItemName string `json:"item_name"`

	// TierName is the vehicle-size tier label, empty for non-tiered pricing
	TierName string `json:"tier_name,omitempty"`

	// UnitPrice in main currency units
	UnitPrice decimal.Decimal `json:"unit_price"`

	Quantity int `json:"quantity"`

	IsTaxable bool `json:"is_taxable"`

	Notes string `json:"notes,omitempty"`

	// PricingIncomplete marks a size-aware service priced at its default
	// tier because no vehicle was attached; the register warns, the row
	// still totals normally
	PricingIncomplete bool `json:"pricing_incomplete,omitempty"`
}

// TotalPrice is the pre-discount row total
func (li *LineItem) TotalPrice() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// TaxAmount is the row tax at the pre-discount price. Discounts never reduce
// the taxable base in this model.
func (li *LineItem) TaxAmount(taxRate decimal.Decimal) decimal.Decimal {
	if !li.IsTaxable {
		return decimal.Zero
	}
	return li.TotalPrice().Mul(taxRate)
}

// LineItemCandidate is the plain-data input for adding a row to a session.
// The hosting surface resolves prices (via the catalog and pricing resolver)
// before building a candidate; the engine never fetches anything itself.
type LineItemCandidate struct {
	ItemType   types.LineItemType `json:"item_type"`
	CatalogRef string             `json:"catalog_ref,omitempty"`
	ItemName   string             `json:"item_name"`
	TierName   string             `json:"tier_name,omitempty"`
	UnitPrice  decimal.Decimal    `json:"unit_price"`
	Quantity   int                `json:"quantity"`
	IsTaxable  bool               `json:"is_taxable"`
	Notes      string             `json:"notes,omitempty"`

	PricingIncomplete bool `json:"pricing_incomplete,omitempty"`
}

// Validate reports user-correctable problems with the candidate
func (c LineItemCandidate) Validate() error {
	if err := c.ItemType.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.ItemName) == "" {
		return ierr.NewError("item name is required").
			WithHint("Please provide an item name").
			Mark(ierr.ErrValidation)
	}
	if c.Quantity < 1 {
		return ierr.NewError("quantity must be at least 1").
			WithHint("Quantity must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if c.UnitPrice.LessThan(decimal.Zero) {
		return ierr.NewError("unit price must not be negative").
			WithHint("Unit price must not be negative").
			Mark(ierr.ErrValidation)
	}
	if len(c.Notes) > types.MaxLineItemNoteLength {
		return ierr.NewError("note exceeds maximum length").
			WithHintf("Notes are limited to %d characters", types.MaxLineItemNoteLength).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// matches reports whether the candidate is the same catalog row as an
// existing item, in which case adding it should bump the quantity instead of
// creating a duplicate line. Custom charges never merge.
func (c LineItemCandidate) matches(li *LineItem) bool {
	if c.CatalogRef == "" || li.CatalogRef == "" {
		return false
	}
	return c.CatalogRef == li.CatalogRef &&
		c.TierName == li.TierName &&
		c.UnitPrice.Equal(li.UnitPrice)
}
