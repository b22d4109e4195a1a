package service

import (
	"context"
	"time"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/domain/checkout"
	"github.com/detailpos/detailpos/internal/domain/quote"
	"github.com/detailpos/detailpos/internal/domain/ticket"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
)

// TicketService defines the interface for ticket persistence and lifecycle
type TicketService interface {
	CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*dto.TicketResponse, error)
	GetTicket(ctx context.Context, id string) (*dto.TicketResponse, error)
	ListTickets(ctx context.Context, customerID string) ([]*dto.TicketResponse, error)

	// CompleteTicket checks an open ticket out: totals are snapshotted, the
	// coupon redemption is counted, and loyalty points settle
	CompleteTicket(ctx context.Context, id string) (*dto.TicketResponse, error)

	// VoidTicket voids an open ticket
	VoidTicket(ctx context.Context, id string) (*dto.TicketResponse, error)
}

type ticketService struct {
	ServiceParams
}

// NewTicketService creates a new ticket service
func NewTicketService(params ServiceParams) TicketService {
	return &ticketService{
		ServiceParams: params,
	}
}

// CreateTicket persists a new open ticket with its settled discount stack and
// snapshot totals
func (s *ticketService) CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &ticket.Ticket{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TICKET),
		Number:       types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_TICKET),
		CustomerID:   req.CustomerID,
		VehicleID:    req.VehicleID,
		TicketStatus: types.TicketStatusOpen,
		Notes:        req.Notes,

		CouponID:              req.CouponID,
		CouponCode:            req.CouponCode,
		CouponDiscount:        req.CouponDiscount,
		LoyaltyPointsRedeemed: req.LoyaltyPointsRedeemed,
		LoyaltyDiscount:       req.LoyaltyDiscount,
		ManualDiscountType:    req.ManualDiscountType,
		ManualDiscountValue:   req.ManualDiscountValue,
		ManualDiscountLabel:   req.ManualDiscountLabel,

		TaxRate:   s.Config.TaxRateDecimal(),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	t.Items = make(quote.JSONBItems, len(req.Items))
	for i := range req.Items {
		t.Items[i] = req.Items[i].ToItem()
	}
	s.snapshotTotals(t)

	if err := s.TicketRepo.Create(ctx, t); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create ticket").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("created ticket",
		"ticket_id", t.ID,
		"number", t.Number,
		"total", t.Total)

	return &dto.TicketResponse{Ticket: t}, nil
}

// snapshotTotals derives the ticket's money snapshot by replaying its items
// and discount stack through the checkout engine, so persisted totals can
// never disagree with session math.
func (s *ticketService) snapshotTotals(t *ticket.Ticket) {
	session := checkout.NewSession(types.SessionKindTicket, t.TaxRate)
	items := make([]*checkout.LineItem, len(t.Items))
	for i, item := range t.Items {
		candidate := item.ToCandidate()
		items[i] = &checkout.LineItem{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINE_ITEM),
			ItemType:   candidate.ItemType,
			CatalogRef: candidate.CatalogRef,
			ItemName:   candidate.ItemName,
			TierName:   candidate.TierName,
			UnitPrice:  candidate.UnitPrice,
			Quantity:   candidate.Quantity,
			IsTaxable:  candidate.IsTaxable,
			Notes:      candidate.Notes,
		}
	}
	session.Items = items

	if t.CouponID != "" {
		session.Coupon = &checkout.AppliedCoupon{
			ID:       t.CouponID,
			Code:     t.CouponCode,
			Discount: t.CouponDiscount,
		}
	}
	session.LoyaltyPointsToRedeem = t.LoyaltyPointsRedeemed
	session.LoyaltyDiscount = t.LoyaltyDiscount
	if t.ManualDiscountType != "" {
		session.ManualDiscount = &checkout.ManualDiscount{
			Type:  types.ManualDiscountType(t.ManualDiscountType),
			Value: t.ManualDiscountValue,
			Label: t.ManualDiscountLabel,
		}
	}

	totals := session.Totals()
	t.Subtotal = totals.Subtotal
	t.TaxAmount = totals.TaxAmount
	t.Total = totals.Total
	// manual percent resolves against the subtotal at snapshot time
	t.CouponDiscount = totals.CouponDiscount
	t.LoyaltyDiscount = totals.LoyaltyDiscount
}

// GetTicket retrieves a ticket by ID
func (s *ticketService) GetTicket(ctx context.Context, id string) (*dto.TicketResponse, error) {
	t, err := s.TicketRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TicketResponse{Ticket: t}, nil
}

// ListTickets lists tickets, optionally filtered by customer
func (s *ticketService) ListTickets(ctx context.Context, customerID string) ([]*dto.TicketResponse, error) {
	var (
		tickets []*ticket.Ticket
		err     error
	)
	if customerID != "" {
		tickets, err = s.TicketRepo.ListByCustomer(ctx, customerID)
	} else {
		tickets, err = s.TicketRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.TicketResponse, len(tickets))
	for i, t := range tickets {
		responses[i] = &dto.TicketResponse{Ticket: t}
	}
	return responses, nil
}

// CompleteTicket settles an open ticket: the coupon redemption counter is
// bumped, redeemed loyalty points are deducted, and points earned on the
// spend are credited. Settlement failures after the status flip are logged,
// not rolled back; reconciliation is an operational concern.
func (s *ticketService) CompleteTicket(ctx context.Context, id string) (*dto.TicketResponse, error) {
	t, err := s.TicketRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.TicketStatus != types.TicketStatusOpen {
		return nil, ierr.NewError("only open tickets can be completed").
			WithHintf("Ticket %s is already %s", t.Number, t.TicketStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	t.TicketStatus = types.TicketStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	t.UpdatedBy = types.GetUserID(ctx)

	if err := s.TicketRepo.Update(ctx, t); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to complete ticket").
			Mark(ierr.ErrDatabase)
	}

	if t.CouponID != "" {
		if err := s.CouponRepo.IncrementRedemptions(ctx, t.CouponID); err != nil {
			s.Logger.Errorw("failed to count coupon redemption",
				"ticket_id", t.ID,
				"coupon_id", t.CouponID,
				"error", err)
		}
	}

	if t.CustomerID != "" {
		delta := s.loyaltyDelta(t)
		if delta != 0 {
			if err := s.CustomerRepo.AdjustLoyaltyPoints(ctx, t.CustomerID, delta); err != nil {
				s.Logger.Errorw("failed to settle loyalty points",
					"ticket_id", t.ID,
					"customer_id", t.CustomerID,
					"delta", delta,
					"error", err)
			}
		}
	}

	s.Logger.Infow("completed ticket",
		"ticket_id", t.ID,
		"number", t.Number,
		"total", t.Total)

	return &dto.TicketResponse{Ticket: t}, nil
}

// loyaltyDelta nets the redeemed points against points earned on the final
// total, one point per whole dollar spent
func (s *ticketService) loyaltyDelta(t *ticket.Ticket) int64 {
	earned := t.Total.IntPart()
	if earned < 0 {
		earned = 0
	}
	return earned - t.LoyaltyPointsRedeemed
}

// VoidTicket voids an open ticket. Nothing settles: no redemption is counted
// and no points move.
func (s *ticketService) VoidTicket(ctx context.Context, id string) (*dto.TicketResponse, error) {
	t, err := s.TicketRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.TicketStatus != types.TicketStatusOpen {
		return nil, ierr.NewError("only open tickets can be voided").
			WithHintf("Ticket %s is already %s", t.Number, t.TicketStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	t.TicketStatus = types.TicketStatusVoided
	t.UpdatedAt = time.Now().UTC()
	t.UpdatedBy = types.GetUserID(ctx)

	if err := s.TicketRepo.Update(ctx, t); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to void ticket").
			Mark(ierr.ErrDatabase)
	}
	return &dto.TicketResponse{Ticket: t}, nil
}
