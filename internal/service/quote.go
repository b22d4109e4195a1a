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

// QuoteService defines the interface for quote persistence and lifecycle
type QuoteService interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error)
	GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error)
	ListQuotes(ctx context.Context, customerID string) ([]*dto.QuoteResponse, error)
	UpdateQuote(ctx context.Context, id string, req dto.UpdateQuoteRequest) (*dto.QuoteResponse, error)
	DeleteQuote(ctx context.Context, id string) error

	// SendQuote marks a draft as sent; further edits require a new revision
	SendQuote(ctx context.Context, id string) (*dto.QuoteResponse, error)

	// ConvertQuote turns an open quote into a new open ticket and marks the
	// quote converted
	ConvertQuote(ctx context.Context, id string) (*dto.TicketResponse, error)

	// HydrateSession rebuilds an editable checkout session from a persisted
	// quote, suitable for a LOAD dispatch
	HydrateSession(ctx context.Context, id string) (*checkout.Session, error)
}

type quoteService struct {
	ServiceParams
}

// NewQuoteService creates a new quote service
func NewQuoteService(params ServiceParams) QuoteService {
	return &quoteService{
		ServiceParams: params,
	}
}

// CreateQuote persists a new draft quote with snapshot totals
func (s *quoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := &quote.Quote{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		Number:      types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_QUOTE),
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		QuoteStatus: types.QuoteStatusDraft,
		Notes:       req.Notes,
		ValidUntil:  req.ValidUntil,
		TaxRate:     s.Config.TaxRateDecimal(),
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	s.applyItems(q, req.Items)

	if err := s.QuoteRepo.Create(ctx, q); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create quote").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("created quote",
		"quote_id", q.ID,
		"number", q.Number,
		"total", q.Total)

	return &dto.QuoteResponse{Quote: q}, nil
}

// applyItems replaces the quote's items and recomputes its snapshot totals.
// Quotes never carry a discount stack, so the snapshot is subtotal plus tax.
func (s *quoteService) applyItems(q *quote.Quote, items []dto.QuoteItemRequest) {
	q.Items = make(quote.JSONBItems, len(items))
	for i := range items {
		q.Items[i] = items[i].ToItem()
	}

	session := checkout.NewSession(types.SessionKindQuote, q.TaxRate)
	for _, item := range q.Items {
		// snapshot math only; merge effects are irrelevant here
		_, _ = session.AddItem(item.ToCandidate())
	}
	totals := session.Totals()
	q.Subtotal = totals.Subtotal
	q.TaxAmount = totals.TaxAmount
	q.Total = totals.Total
}

// GetQuote retrieves a quote by ID
func (s *quoteService) GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{Quote: q}, nil
}

// ListQuotes lists quotes, optionally filtered by customer
func (s *quoteService) ListQuotes(ctx context.Context, customerID string) ([]*dto.QuoteResponse, error) {
	var (
		quotes []*quote.Quote
		err    error
	)
	if customerID != "" {
		quotes, err = s.QuoteRepo.ListByCustomer(ctx, customerID)
	} else {
		quotes, err = s.QuoteRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.QuoteResponse, len(quotes))
	for i, q := range quotes {
		responses[i] = &dto.QuoteResponse{Quote: q}
	}
	return responses, nil
}

// UpdateQuote replaces a draft quote's contents wholesale. Quotes past draft
// reject edits; a sent quote is revised by creating a new quote.
func (s *quoteService) UpdateQuote(ctx context.Context, id string, req dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.QuoteStatus != types.QuoteStatusDraft {
		return nil, ierr.NewError("quote is no longer editable").
			WithHintf("A %s quote cannot be edited; create a new revision instead", q.QuoteStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	q.CustomerID = req.CustomerID
	q.VehicleID = req.VehicleID
	q.Notes = req.Notes
	q.ValidUntil = req.ValidUntil
	q.UpdatedAt = time.Now().UTC()
	q.UpdatedBy = types.GetUserID(ctx)
	s.applyItems(q, req.Items)

	if err := s.QuoteRepo.Update(ctx, q); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update quote").
			Mark(ierr.ErrDatabase)
	}
	return &dto.QuoteResponse{Quote: q}, nil
}

// DeleteQuote deletes a quote. Converted quotes are kept for the audit trail.
func (s *quoteService) DeleteQuote(ctx context.Context, id string) error {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if q.QuoteStatus == types.QuoteStatusConverted {
		return ierr.NewError("converted quotes cannot be deleted").
			WithHint("The quote has already been converted to a ticket").
			Mark(ierr.ErrInvalidOperation)
	}
	return s.QuoteRepo.Delete(ctx, id)
}

// SendQuote marks a draft quote as sent
func (s *quoteService) SendQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.QuoteStatus != types.QuoteStatusDraft {
		return nil, ierr.NewError("only draft quotes can be sent").
			WithHintf("Quote %s is already %s", q.Number, q.QuoteStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	q.QuoteStatus = types.QuoteStatusSent
	q.UpdatedAt = time.Now().UTC()
	q.UpdatedBy = types.GetUserID(ctx)

	if err := s.QuoteRepo.Update(ctx, q); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update quote").
			Mark(ierr.ErrDatabase)
	}
	return &dto.QuoteResponse{Quote: q}, nil
}

// ConvertQuote turns a quote into a new open ticket. The ticket starts with
// the quote's items and no discount stack; discounts are settled at checkout,
// not carried over from the estimate.
func (s *quoteService) ConvertQuote(ctx context.Context, id string) (*dto.TicketResponse, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch q.QuoteStatus {
	case types.QuoteStatusConverted:
		return nil, ierr.NewError("quote has already been converted").
			WithHintf("Quote %s was already converted to ticket %s", q.Number, q.ConvertedTicketID).
			Mark(ierr.ErrInvalidOperation)
	case types.QuoteStatusExpired:
		return nil, ierr.NewError("expired quotes cannot be converted").
			WithHintf("Quote %s has expired", q.Number).
			Mark(ierr.ErrInvalidOperation)
	}

	t := &ticket.Ticket{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TICKET),
		Number:        types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_TICKET),
		CustomerID:    q.CustomerID,
		VehicleID:     q.VehicleID,
		TicketStatus:  types.TicketStatusOpen,
		Notes:         q.Notes,
		Items:         q.Items,
		Subtotal:      q.Subtotal,
		TaxAmount:     q.TaxAmount,
		Total:         q.Total,
		TaxRate:       q.TaxRate,
		SourceQuoteID: q.ID,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	q.QuoteStatus = types.QuoteStatusConverted
	q.ConvertedTicketID = t.ID
	q.UpdatedAt = time.Now().UTC()
	q.UpdatedBy = types.GetUserID(ctx)

	// the ticket and the converted marker land together or not at all
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TicketRepo.Create(ctx, t); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create ticket from quote").
				Mark(ierr.ErrDatabase)
		}
		if err := s.QuoteRepo.Update(ctx, q); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to mark quote converted").
				Mark(ierr.ErrDatabase)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("converted quote to ticket",
		"quote_id", q.ID,
		"ticket_id", t.ID)

	return &dto.TicketResponse{Ticket: t}, nil
}

// HydrateSession rebuilds a checkout session from a persisted quote. Lines
// are rebuilt verbatim rather than re-added, so two identical persisted rows
// never merge into one.
func (s *quoteService) HydrateSession(ctx context.Context, id string) (*checkout.Session, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session := checkout.NewSession(types.SessionKindQuote, q.TaxRate)
	session.PersistedID = q.ID
	session.Number = q.Number
	session.QuoteStatus = q.QuoteStatus
	session.CustomerID = q.CustomerID
	session.VehicleID = q.VehicleID
	session.Notes = q.Notes
	session.ValidUntil = q.ValidUntil

	if q.VehicleID != "" {
		if v, err := s.VehicleRepo.Get(ctx, q.VehicleID); err == nil {
			session.VehicleSize = v.SizeClass
		}
	}

	items := make([]*checkout.LineItem, len(q.Items))
	for i, item := range q.Items {
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

	return session, nil
}
