package dto

import (
	"time"

	"github.com/detailpos/detailpos/internal/domain/checkout"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// CreateSessionRequest opens a new checkout session. When QuoteID is set the
// session is hydrated from that persisted quote instead of starting empty.
type CreateSessionRequest struct {
	Kind    string `json:"kind,omitempty"`
	QuoteID string `json:"quote_id,omitempty"`
}

// Validate validates the CreateSessionRequest
func (r *CreateSessionRequest) Validate() error {
	if r.QuoteID != "" {
		if r.Kind != "" && types.SessionKind(r.Kind) != types.SessionKindQuote {
			return ierr.NewError("a hydrated session is always a quote session").
				WithHint("Omit kind when loading from a quote").
				Mark(ierr.ErrValidation)
		}
		return nil
	}
	kind := types.SessionKind(r.Kind)
	if kind != types.SessionKindTicket && kind != types.SessionKindQuote {
		return ierr.NewError("invalid session kind").
			WithHintf("Session kind must be %s or %s", types.SessionKindTicket, types.SessionKindQuote).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AddSessionItemRequest adds a line to a session. Type selects which of the
// remaining fields are read: a service or product line carries its catalog
// ID, a custom line carries its own name and unit price.
type AddSessionItemRequest struct {
	Type     string `json:"type" validate:"required"`
	ID       string `json:"id,omitempty"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`

	Name      string          `json:"name,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Taxable   bool            `json:"taxable"`
}

// Validate validates the AddSessionItemRequest
func (r *AddSessionItemRequest) Validate() error {
	if r.Quantity <= 0 {
		return ierr.NewError("quantity must be positive").
			WithHint("Quantity must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	switch types.LineItemType(r.Type) {
	case types.LineItemTypeService, types.LineItemTypeProduct:
		if r.ID == "" {
			return ierr.NewError("catalog item ID is required").
				WithHint("Provide the service or product ID").
				Mark(ierr.ErrValidation)
		}
	case types.LineItemTypeCustom:
		if r.Name == "" {
			return ierr.NewError("custom item name is required").
				WithHint("Provide a name for the custom charge").
				Mark(ierr.ErrValidation)
		}
	default:
		return ierr.NewError("invalid line item type").
			WithHintf("Line item type %s is not supported", r.Type).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// UpdateSessionItemRequest changes an existing line. A quantity of zero
// removes the line; a nil field leaves that attribute untouched.
type UpdateSessionItemRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// Validate validates the UpdateSessionItemRequest
func (r *UpdateSessionItemRequest) Validate() error {
	if r.Quantity == nil && r.Note == nil {
		return ierr.NewError("nothing to update").
			WithHint("Provide a quantity or a note").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AssignCustomerRequest attaches a customer to a session; an empty ID clears
// the customer along with the vehicle and loyalty redemption
type AssignCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// AssignVehicleRequest attaches a vehicle and re-prices service lines; an
// empty ID clears the vehicle and drops service lines back to base prices
type AssignVehicleRequest struct {
	VehicleID string `json:"vehicle_id"`
}

// ApplySessionCouponRequest attaches a typed coupon code
type ApplySessionCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// ManualDiscountRequest applies a register-level discount
type ManualDiscountRequest struct {
	Type  string          `json:"type" validate:"required"`
	Value decimal.Decimal `json:"value"`
	Label string          `json:"label,omitempty"`
}

// SessionNotesRequest sets the session's free-form notes
type SessionNotesRequest struct {
	Notes string `json:"notes"`
}

// SessionValidUntilRequest sets or clears a quote session's expiry date
type SessionValidUntilRequest struct {
	ValidUntil *time.Time `json:"valid_until"`
}

// CheckoutSessionResponse wraps a rendered session with its registry handle
type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	*SessionResponse
}

// NewCheckoutSessionResponse renders a registered session
func NewCheckoutSessionResponse(sessionID string, session *checkout.Session, currency string) *CheckoutSessionResponse {
	return &CheckoutSessionResponse{
		SessionID:       sessionID,
		SessionResponse: NewSessionResponse(session, currency),
	}
}

func sessionItemRequests(session *checkout.Session) []QuoteItemRequest {
	items := make([]QuoteItemRequest, 0, len(session.Items))
	for _, li := range session.Items {
		item := QuoteItemRequest{
			ItemName:  li.ItemName,
			TierName:  li.TierName,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			IsTaxable: li.IsTaxable,
			Notes:     li.Notes,
		}
		switch li.ItemType {
		case types.LineItemTypeService:
			item.ServiceID = li.CatalogRef
		case types.LineItemTypeProduct:
			item.ProductID = li.CatalogRef
		}
		items = append(items, item)
	}
	return items
}

// NewQuoteRequestFromSession converts a quote session into its save request
func NewQuoteRequestFromSession(session *checkout.Session) CreateQuoteRequest {
	return CreateQuoteRequest{
		CustomerID: session.CustomerID,
		VehicleID:  session.VehicleID,
		Notes:      session.Notes,
		ValidUntil: session.ValidUntil,
		Items:      sessionItemRequests(session),
	}
}

// NewTicketRequestFromSession converts a ticket session, with its settled
// discount stack, into its save request
func NewTicketRequestFromSession(session *checkout.Session) CreateTicketRequest {
	req := CreateTicketRequest{
		CustomerID:            session.CustomerID,
		VehicleID:             session.VehicleID,
		Notes:                 session.Notes,
		Items:                 sessionItemRequests(session),
		LoyaltyPointsRedeemed: session.LoyaltyPointsToRedeem,
		LoyaltyDiscount:       session.LoyaltyDiscount,
	}
	if session.Coupon != nil {
		req.CouponID = session.Coupon.ID
		req.CouponCode = session.Coupon.Code
		req.CouponDiscount = session.Coupon.Discount
	}
	if session.ManualDiscount != nil {
		req.ManualDiscountType = session.ManualDiscount.Type.String()
		req.ManualDiscountValue = session.ManualDiscount.Value
		req.ManualDiscountLabel = session.ManualDiscount.Label
	}
	return req
}
