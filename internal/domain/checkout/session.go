package checkout

import (
	"strings"
	"time"

	"github.com/detailpos/detailpos/internal/domain/catalog"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// Session is the in-memory representation of a single in-progress ticket or
// quote. It is owned exclusively by one register surface at a time; every
// transition is synchronous, in-memory and total, and no transition performs
// I/O. The hosting surface fetches whatever external data an action needs
// (catalog records, validated coupons, loyalty balances) before dispatching.
//
// State is implicit in field combinations: empty (no items), building (items
// present, PersistedID empty), saved (PersistedID set), and for quotes the
// terminal-ish sent/converted statuses which reject further edits.
type Session struct {
	Kind types.SessionKind `json:"kind"`

	// PersistedID is set once the session has been saved as a quote or ticket
	PersistedID string `json:"persisted_id,omitempty"`

	// Number is the human-facing quote/ticket number once persisted
	Number string `json:"number,omitempty"`

	// QuoteStatus is tracked for quote sessions only
	QuoteStatus types.QuoteStatus `json:"quote_status,omitempty"`

	CustomerID string `json:"customer_id,omitempty"`

	// VehicleID and VehicleSize travel together; both are cleared when the
	// customer reference is cleared
	VehicleID   string                 `json:"vehicle_id,omitempty"`
	VehicleSize types.VehicleSizeClass `json:"vehicle_size,omitempty"`

	Items []*LineItem `json:"items"`

	Coupon *AppliedCoupon `json:"coupon,omitempty"`

	LoyaltyPointsToRedeem int64           `json:"loyalty_points_to_redeem"`
	LoyaltyDiscount       decimal.Decimal `json:"loyalty_discount"`

	ManualDiscount *ManualDiscount `json:"manual_discount,omitempty"`

	Notes string `json:"notes,omitempty"`

	// ValidUntil applies to quote sessions only
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	// TaxRate is the store sales tax rate as a fraction, fixed at session
	// creation so an in-progress ticket survives a config change intact
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// NewSession creates an empty session of the given kind
func NewSession(kind types.SessionKind, taxRate decimal.Decimal) *Session {
	s := &Session{
		Kind:            kind,
		Items:           []*LineItem{},
		LoyaltyDiscount: decimal.Zero,
		TaxRate:         taxRate,
	}
	if kind == types.SessionKindQuote {
		s.QuoteStatus = types.QuoteStatusDraft
	}
	return s
}

// IsEmpty reports whether the session has no items
func (s *Session) IsEmpty() bool {
	return len(s.Items) == 0
}

// editable guards mutating actions on terminal quote statuses. Further edits
// to a sent or converted quote require an explicit new revision.
func (s *Session) editable() error {
	if s.Kind == types.SessionKindQuote && s.QuoteStatus.IsTerminal() {
		return ierr.NewError("quote is no longer editable").
			WithHintf("A %s quote cannot be edited; create a new revision instead", s.QuoteStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

// SetCustomer sets or clears the customer reference. Clearing the customer
// cascades: the vehicle reference and any loyalty redemption are dropped,
// since both are meaningless without a customer.
func (s *Session) SetCustomer(customerID string) error {
	if err := s.editable(); err != nil {
		return err
	}

	s.CustomerID = customerID
	if customerID == "" {
		s.VehicleID = ""
		s.VehicleSize = ""
		s.LoyaltyPointsToRedeem = 0
		s.LoyaltyDiscount = decimal.Zero
	}
	return nil
}

// SetVehicle sets or clears the vehicle reference. Existing service items
// are not re-priced here; the host dispatches RecalculateForVehicle with
// fresh catalog data after changing the vehicle.
func (s *Session) SetVehicle(vehicleID string, size types.VehicleSizeClass) error {
	if err := s.editable(); err != nil {
		return err
	}

	if vehicleID == "" {
		s.VehicleID = ""
		s.VehicleSize = ""
		return nil
	}
	if err := size.Validate(); err != nil {
		return err
	}
	s.VehicleID = vehicleID
	s.VehicleSize = size
	return nil
}

// SetCoupon replaces the attached coupon wholesale; nil clears it. The engine
// does not validate applicability -- that happened before this was dispatched.
func (s *Session) SetCoupon(coupon *AppliedCoupon) error {
	if err := s.editable(); err != nil {
		return err
	}

	if coupon != nil && coupon.Discount.LessThan(decimal.Zero) {
		return ierr.NewError("coupon discount must not be negative").
			WithHint("Coupon discount must not be negative").
			Mark(ierr.ErrValidation)
	}
	s.Coupon = coupon
	return nil
}

// SetLoyaltyRedemption sets or clears the loyalty redemption. Redemption is
// all-or-nothing per session; the caller decides the full-balance policy and
// passes 0/0 to clear. The discount is the dollar value already derived at
// the configured points rate.
func (s *Session) SetLoyaltyRedemption(points int64, discount decimal.Decimal) error {
	if err := s.editable(); err != nil {
		return err
	}

	if points < 0 || discount.LessThan(decimal.Zero) {
		return ierr.NewError("loyalty redemption must not be negative").
			WithHint("Loyalty redemption must not be negative").
			Mark(ierr.ErrValidation)
	}
	s.LoyaltyPointsToRedeem = points
	s.LoyaltyDiscount = discount
	return nil
}

// AddItem appends a new line item, or bumps the quantity of an existing row
// when the candidate is the same catalog entry at the same tier and price.
// Returns the id of the affected line.
func (s *Session) AddItem(candidate LineItemCandidate) (string, error) {
	if err := s.editable(); err != nil {
		return "", err
	}
	if err := candidate.Validate(); err != nil {
		return "", err
	}

	for _, item := range s.Items {
		if candidate.matches(item) {
			item.Quantity += candidate.Quantity
			return item.ID, nil
		}
	}

	item := &LineItem{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINE_ITEM),
		ItemType:   candidate.ItemType,
		CatalogRef: candidate.CatalogRef,
		ItemName:   candidate.ItemName,
		TierName:   candidate.TierName,
		UnitPrice:  candidate.UnitPrice,
		Quantity:   candidate.Quantity,
		IsTaxable:  candidate.IsTaxable,
		Notes:      strings.TrimSpace(candidate.Notes),

		PricingIncomplete: candidate.PricingIncomplete,
	}
	s.Items = append(s.Items, item)
	return item.ID, nil
}

// UpdateQuantity sets the quantity of a line; zero or negative removes it.
// Unknown ids are a no-op since the register may race a removal with an
// in-flight edit.
func (s *Session) UpdateQuantity(id string, quantity int) error {
	if err := s.editable(); err != nil {
		return err
	}

	if quantity <= 0 {
		s.removeItem(id)
		return nil
	}
	for _, item := range s.Items {
		if item.ID == id {
			item.Quantity = quantity
			return nil
		}
	}
	return nil
}

// UpdateNote trims and stores (or clears) the free-text note on a line.
// Unknown ids are a no-op.
func (s *Session) UpdateNote(id string, note string) error {
	if err := s.editable(); err != nil {
		return err
	}

	note = strings.TrimSpace(note)
	if len(note) > types.MaxLineItemNoteLength {
		return ierr.NewError("note exceeds maximum length").
			WithHintf("Notes are limited to %d characters", types.MaxLineItemNoteLength).
			Mark(ierr.ErrValidation)
	}
	for _, item := range s.Items {
		if item.ID == id {
			item.Notes = note
			return nil
		}
	}
	return nil
}

// RemoveItem deletes the line. Unknown ids are a no-op.
func (s *Session) RemoveItem(id string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.removeItem(id)
	return nil
}

func (s *Session) removeItem(id string) {
	for i, item := range s.Items {
		if item.ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}

// RecalculateForVehicle re-resolves the price of every service line against
// the given vehicle size, overwriting unit price and tier label in place and
// preserving quantity and notes. Non-service items are untouched. The catalog
// records are passed in as plain data; unknown services keep their current
// price. Dispatching this twice with the same inputs is idempotent.
func (s *Session) RecalculateForVehicle(size types.VehicleSizeClass, services map[string]*catalog.Service) error {
	if err := s.editable(); err != nil {
		return err
	}

	for _, item := range s.Items {
		if item.ItemType != types.LineItemTypeService || item.CatalogRef == "" {
			continue
		}
		svc, ok := services[item.CatalogRef]
		if !ok {
			continue
		}
		resolution := catalog.ResolvePrice(svc, size)
		item.UnitPrice = resolution.UnitPrice
		item.TierName = resolution.TierLabel
		item.PricingIncomplete = resolution.Incomplete
	}
	return nil
}

// ApplyManualDiscount sets the manual discount, overwriting any existing one
func (s *Session) ApplyManualDiscount(discountType types.ManualDiscountType, value decimal.Decimal, label string) error {
	if err := s.editable(); err != nil {
		return err
	}

	discount := ManualDiscount{
		Type:  discountType,
		Value: value,
		Label: strings.TrimSpace(label),
	}
	if err := discount.Validate(); err != nil {
		return err
	}
	s.ManualDiscount = &discount
	return nil
}

// RemoveManualDiscount clears the manual discount
func (s *Session) RemoveManualDiscount() error {
	if err := s.editable(); err != nil {
		return err
	}
	s.ManualDiscount = nil
	return nil
}

// SetNotes sets the session-level notes
func (s *Session) SetNotes(notes string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.Notes = strings.TrimSpace(notes)
	return nil
}

// SetValidUntil sets the quote expiry; quote sessions only
func (s *Session) SetValidUntil(validUntil *time.Time) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.Kind != types.SessionKindQuote {
		return ierr.NewError("valid until applies to quotes only").
			WithHint("Only quotes carry an expiry date").
			Mark(ierr.ErrInvalidOperation)
	}
	s.ValidUntil = validUntil
	return nil
}

// Clear resets the session to empty, preserving kind and tax rate
func (s *Session) Clear() error {
	*s = *NewSession(s.Kind, s.TaxRate)
	return nil
}

// Load replaces the entire session atomically with hydrated state. No partial
// merge happens, so stale client-side edits can never mix with freshly
// fetched persisted state.
func (s *Session) Load(loaded *Session) error {
	if loaded == nil {
		return ierr.NewError("loaded session cannot be nil").
			WithHint("Nothing to load").
			Mark(ierr.ErrValidation)
	}
	*s = *loaded
	if s.Items == nil {
		s.Items = []*LineItem{}
	}
	return nil
}
