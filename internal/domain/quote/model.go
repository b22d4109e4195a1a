package quote

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/detailpos/detailpos/internal/domain/checkout"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// JSONB types for complex fields
type JSONBItems []QuoteItem

// Quote is a persisted estimate. The line items mirror the checkout session
// they were built from; money totals are snapshotted at save time for listing
// screens, while a loaded quote always recomputes totals from its items.
type Quote struct {
	ID string `db:"id" json:"id"`

	// Number is the human-facing quote number, e.g. Q-8XK2A1
	Number string `db:"number" json:"number"`

	CustomerID string `db:"customer_id" json:"customer_id"`
	VehicleID  string `db:"vehicle_id" json:"vehicle_id"`

	QuoteStatus types.QuoteStatus `db:"quote_status" json:"quote_status"`

	Notes string `db:"notes" json:"notes"`

	ValidUntil *time.Time `db:"valid_until" json:"valid_until"`

	Items JSONBItems `db:"items" json:"items"`

	// Snapshot totals at save time
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxAmount decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	Total     decimal.Decimal `db:"total" json:"total"`

	// TaxRate the snapshot was computed with
	TaxRate decimal.Decimal `db:"tax_rate" json:"tax_rate"`

	// ConvertedTicketID is set once the quote has been converted
	ConvertedTicketID string `db:"converted_ticket_id" json:"converted_ticket_id,omitempty"`

	types.BaseModel
}

// QuoteItem is one persisted line of a quote
type QuoteItem struct {
	ServiceID string          `json:"service_id,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
	ItemName  string          `json:"item_name"`
	TierName  string          `json:"tier_name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	IsTaxable bool            `json:"is_taxable"`
	Notes     string          `json:"notes,omitempty"`
}

// ItemFromLine converts a session line item into its persisted form
func ItemFromLine(line *checkout.LineItem) QuoteItem {
	item := QuoteItem{
		ItemName:  line.ItemName,
		TierName:  line.TierName,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
		IsTaxable: line.IsTaxable,
		Notes:     line.Notes,
	}
	switch line.ItemType {
	case types.LineItemTypeService:
		item.ServiceID = line.CatalogRef
	case types.LineItemTypeProduct:
		item.ProductID = line.CatalogRef
	}
	return item
}

// ToCandidate converts a persisted item back into a session candidate
func (i QuoteItem) ToCandidate() checkout.LineItemCandidate {
	candidate := checkout.LineItemCandidate{
		ItemType:  types.LineItemTypeCustom,
		ItemName:  i.ItemName,
		TierName:  i.TierName,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		IsTaxable: i.IsTaxable,
		Notes:     i.Notes,
	}
	switch {
	case i.ServiceID != "":
		candidate.ItemType = types.LineItemTypeService
		candidate.CatalogRef = i.ServiceID
	case i.ProductID != "":
		candidate.ItemType = types.LineItemTypeProduct
		candidate.CatalogRef = i.ProductID
	}
	return candidate
}

// Value implements driver.Valuer for JSONB storage
func (items JSONBItems) Value() (driver.Value, error) {
	if items == nil {
		return nil, nil
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner for JSONB storage
func (items *JSONBItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("invalid type for jsonb items")
	}
	return json.Unmarshal(b, items)
}
