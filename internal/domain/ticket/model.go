package ticket

import (
	"time"

	"github.com/detailpos/detailpos/internal/domain/quote"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// Ticket is a persisted point-of-sale ticket. Unlike a quote it carries the
// full discount stack, since discounts are settled at checkout: the coupon's
// resolved dollar amount, the loyalty redemption, and any manual discount,
// each snapshotted alongside the totals when the ticket completes.
type Ticket struct {
	ID string `db:"id" json:"id"`

	// Number is the human-facing ticket number, e.g. T-3FA9B2
	Number string `db:"number" json:"number"`

	CustomerID string `db:"customer_id" json:"customer_id"`
	VehicleID  string `db:"vehicle_id" json:"vehicle_id"`

	TicketStatus types.TicketStatus `db:"ticket_status" json:"ticket_status"`

	Notes string `db:"notes" json:"notes"`

	// Items reuse the quote item shape; the two surfaces persist identically
	Items quote.JSONBItems `db:"items" json:"items"`

	// Discount stack snapshot
	CouponID              string          `db:"coupon_id" json:"coupon_id,omitempty"`
	CouponCode            string          `db:"coupon_code" json:"coupon_code,omitempty"`
	CouponDiscount        decimal.Decimal `db:"coupon_discount" json:"coupon_discount"`
	LoyaltyPointsRedeemed int64           `db:"loyalty_points_redeemed" json:"loyalty_points_redeemed"`
	LoyaltyDiscount       decimal.Decimal `db:"loyalty_discount" json:"loyalty_discount"`
	ManualDiscountType    string          `db:"manual_discount_type" json:"manual_discount_type,omitempty"`
	ManualDiscountValue   decimal.Decimal `db:"manual_discount_value" json:"manual_discount_value"`
	ManualDiscountLabel   string          `db:"manual_discount_label" json:"manual_discount_label,omitempty"`

	// Totals snapshot
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxAmount decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	Total     decimal.Decimal `db:"total" json:"total"`
	TaxRate   decimal.Decimal `db:"tax_rate" json:"tax_rate"`

	// SourceQuoteID links a ticket created by converting a quote
	SourceQuoteID string `db:"source_quote_id" json:"source_quote_id,omitempty"`

	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`

	types.BaseModel
}
