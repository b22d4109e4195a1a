package checkout

import (
	"time"

	"github.com/detailpos/detailpos/internal/domain/catalog"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
)

// ActionType enumerates the session's action vocabulary. Every register
// surface (POS ticket, walk-in job, quote builder) drives the session through
// the same set of actions.
type ActionType string

const (
	ActionSetCustomer           ActionType = "SET_CUSTOMER"
	ActionSetVehicle            ActionType = "SET_VEHICLE"
	ActionSetCoupon             ActionType = "SET_COUPON"
	ActionSetLoyaltyRedeem      ActionType = "SET_LOYALTY_REDEEM"
	ActionApplyManualDiscount   ActionType = "APPLY_MANUAL_DISCOUNT"
	ActionRemoveManualDiscount  ActionType = "REMOVE_MANUAL_DISCOUNT"
	ActionAddItem               ActionType = "ADD_ITEM"
	ActionUpdateItemQuantity    ActionType = "UPDATE_ITEM_QUANTITY"
	ActionUpdateItemNote        ActionType = "UPDATE_ITEM_NOTE"
	ActionRemoveItem            ActionType = "REMOVE_ITEM"
	ActionRecalculateForVehicle ActionType = "RECALCULATE_VEHICLE_PRICES"
	ActionSetNotes              ActionType = "SET_NOTES"
	ActionSetValidUntil         ActionType = "SET_VALID_UNTIL"
	ActionClear                 ActionType = "CLEAR"
	ActionLoad                  ActionType = "LOAD"
)

// Action is a dispatchable command carrying plain data. Only the fields
// relevant to its type are read.
type Action struct {
	Type ActionType

	CustomerID string

	VehicleID   string
	VehicleSize types.VehicleSizeClass

	Coupon *AppliedCoupon

	LoyaltyPoints   int64
	LoyaltyDiscount decimal.Decimal

	DiscountType  types.ManualDiscountType
	DiscountValue decimal.Decimal
	DiscountLabel string

	Item     *LineItemCandidate
	ItemID   string
	Quantity int
	Note     string

	Notes      string
	ValidUntil *time.Time

	// Services carries the catalog records needed by a recalculation pass
	Services map[string]*catalog.Service

	// Session carries the hydrated state for a LOAD
	Session *Session
}

// Apply dispatches an action against the session. Every transition is
// synchronous and total: on error the session is unchanged, on success all
// invariants hold. Expected, user-correctable failures come back as
// validation errors; nothing here panics.
func (s *Session) Apply(action Action) error {
	switch action.Type {
	case ActionSetCustomer:
		return s.SetCustomer(action.CustomerID)
	case ActionSetVehicle:
		return s.SetVehicle(action.VehicleID, action.VehicleSize)
	case ActionSetCoupon:
		return s.SetCoupon(action.Coupon)
	case ActionSetLoyaltyRedeem:
		return s.SetLoyaltyRedemption(action.LoyaltyPoints, action.LoyaltyDiscount)
	case ActionApplyManualDiscount:
		return s.ApplyManualDiscount(action.DiscountType, action.DiscountValue, action.DiscountLabel)
	case ActionRemoveManualDiscount:
		return s.RemoveManualDiscount()
	case ActionAddItem:
		if action.Item == nil {
			return ierr.NewError("item is required").
				WithHint("An item is required to add").
				Mark(ierr.ErrValidation)
		}
		_, err := s.AddItem(*action.Item)
		return err
	case ActionUpdateItemQuantity:
		return s.UpdateQuantity(action.ItemID, action.Quantity)
	case ActionUpdateItemNote:
		return s.UpdateNote(action.ItemID, action.Note)
	case ActionRemoveItem:
		return s.RemoveItem(action.ItemID)
	case ActionRecalculateForVehicle:
		return s.RecalculateForVehicle(action.VehicleSize, action.Services)
	case ActionSetNotes:
		return s.SetNotes(action.Notes)
	case ActionSetValidUntil:
		return s.SetValidUntil(action.ValidUntil)
	case ActionClear:
		return s.Clear()
	case ActionLoad:
		return s.Load(action.Session)
	default:
		return ierr.NewError("unknown action type").
			WithHintf("Action %s is not part of the session vocabulary", action.Type).
			Mark(ierr.ErrInvalidOperation)
	}
}
