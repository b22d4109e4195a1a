package dto

import (
	"time"

	"github.com/detailpos/detailpos/internal/domain/quote"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/shopspring/decimal"
)

// QuoteItemRequest is one line of a quote or ticket save request. Exactly one
// of service_id / product_id is set for catalog rows; both empty means a
// custom charge.
type QuoteItemRequest struct {
	ServiceID string          `json:"service_id,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
	ItemName  string          `json:"item_name" validate:"required"`
	TierName  string          `json:"tier_name,omitempty"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	IsTaxable bool            `json:"is_taxable"`
	Notes     string          `json:"notes,omitempty"`
}

// Validate validates a single item row
func (r *QuoteItemRequest) Validate() error {
	if r.ServiceID != "" && r.ProductID != "" {
		return ierr.NewError("item cannot reference both a service and a product").
			WithHint("Provide either service_id or product_id, not both").
			Mark(ierr.ErrValidation)
	}
	if r.Quantity < 1 {
		return ierr.NewError("quantity must be at least 1").
			WithHint("Quantity must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if r.UnitPrice.LessThan(decimal.Zero) {
		return ierr.NewError("unit_price must not be negative").
			WithHint("Unit price must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToItem converts the row into its persisted form
func (r *QuoteItemRequest) ToItem() quote.QuoteItem {
	return quote.QuoteItem{
		ServiceID: r.ServiceID,
		ProductID: r.ProductID,
		ItemName:  r.ItemName,
		TierName:  r.TierName,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		IsTaxable: r.IsTaxable,
		Notes:     r.Notes,
	}
}

// CreateQuoteRequest is the persistence boundary shape for saving a quote
type CreateQuoteRequest struct {
	CustomerID string             `json:"customer_id,omitempty"`
	VehicleID  string             `json:"vehicle_id,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	ValidUntil *time.Time         `json:"valid_until,omitempty"`
	Items      []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the CreateQuoteRequest
func (r *CreateQuoteRequest) Validate() error {
	if len(r.Items) == 0 {
		return ierr.NewError("a quote requires at least one item").
			WithHint("Add at least one item before saving").
			Mark(ierr.ErrValidation)
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateQuoteRequest replaces the editable fields of a draft quote wholesale.
// Partial merges are not supported so stale edits cannot mix with persisted
// state.
type UpdateQuoteRequest struct {
	CustomerID string             `json:"customer_id,omitempty"`
	VehicleID  string             `json:"vehicle_id,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	ValidUntil *time.Time         `json:"valid_until,omitempty"`
	Items      []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the UpdateQuoteRequest
func (r *UpdateQuoteRequest) Validate() error {
	create := CreateQuoteRequest{Items: r.Items}
	return create.Validate()
}

// QuoteResponse represents a persisted quote in API responses
type QuoteResponse struct {
	*quote.Quote
}
