package dto

import (
	"github.com/detailpos/detailpos/internal/domain/checkout"
	"github.com/detailpos/detailpos/internal/domain/ticket"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CreateTicketRequest is the persistence boundary shape for saving a ticket.
// It extends the quote shape with the settled discount stack.
type CreateTicketRequest struct {
	CustomerID string             `json:"customer_id,omitempty"`
	VehicleID  string             `json:"vehicle_id,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	Items      []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`

	CouponID              string          `json:"coupon_id,omitempty"`
	CouponCode            string          `json:"coupon_code,omitempty"`
	CouponDiscount        decimal.Decimal `json:"coupon_discount"`
	LoyaltyPointsRedeemed int64           `json:"loyalty_points_redeemed"`
	LoyaltyDiscount       decimal.Decimal `json:"loyalty_discount"`
	ManualDiscountType    string          `json:"manual_discount_type,omitempty"`
	ManualDiscountValue   decimal.Decimal `json:"manual_discount_value"`
	ManualDiscountLabel   string          `json:"manual_discount_label,omitempty"`
}

// Validate validates the CreateTicketRequest
func (r *CreateTicketRequest) Validate() error {
	if len(r.Items) == 0 {
		return ierr.NewError("a ticket requires at least one item").
			WithHint("Add at least one item before saving").
			Mark(ierr.ErrValidation)
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return err
		}
	}
	if r.LoyaltyPointsRedeemed < 0 || r.LoyaltyDiscount.LessThan(decimal.Zero) {
		return ierr.NewError("loyalty redemption must not be negative").
			WithHint("Loyalty redemption must not be negative").
			Mark(ierr.ErrValidation)
	}
	if r.ManualDiscountType != "" {
		discount := checkout.ManualDiscount{
			Type:  types.ManualDiscountType(r.ManualDiscountType),
			Value: r.ManualDiscountValue,
			Label: r.ManualDiscountLabel,
		}
		if err := discount.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TicketResponse represents a persisted ticket in API responses
type TicketResponse struct {
	*ticket.Ticket
}

// SessionResponse is the rendered state of an in-memory checkout session:
// its contents plus the freshly recomputed totals and display strings.
type SessionResponse struct {
	Session *checkout.Session `json:"session"`
	Totals  checkout.Totals   `json:"totals"`

	// DisplayTotal is the grand total rounded to currency precision
	DisplayTotal string `json:"display_total"`

	// IncompletePricing is set when any service line was priced at its
	// default tier because no vehicle is attached; the register decides
	// how to warn
	IncompletePricing bool `json:"incomplete_pricing"`
}

// NewSessionResponse renders a session with its derived totals
func NewSessionResponse(session *checkout.Session, currency string) *SessionResponse {
	totals := session.Totals()
	return &SessionResponse{
		Session:      session,
		Totals:       totals,
		DisplayTotal: types.GetDisplayAmountWithPrecision(totals.Total, currency),
		IncompletePricing: lo.SomeBy(session.Items, func(item *checkout.LineItem) bool {
			return item.PricingIncomplete
		}),
	}
}
