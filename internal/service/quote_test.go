package service

import (
	"testing"
	"time"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/domain/customer"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/testutil"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QuoteServiceSuite struct {
	testutil.BaseServiceTestSuite
	quoteService QuoteService
}

func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceSuite))
}

func (s *QuoteServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.quoteService = NewQuoteService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           testutil.NoopTxRunner{},
		CustomerRepo: stores.CustomerRepo,
		VehicleRepo:  stores.VehicleRepo,
		QuoteRepo:    stores.QuoteRepo,
		TicketRepo:   stores.TicketRepo,
	})
}

func (s *QuoteServiceSuite) createQuoteRequest() dto.CreateQuoteRequest {
	return dto.CreateQuoteRequest{
		CustomerID: "cust_1",
		Notes:      "spring special",
		Items: []dto.QuoteItemRequest{
			{
				ServiceID: "svc_1",
				ItemName:  "Exterior Detail",
				TierName:  "Sedan",
				Quantity:  1,
				UnitPrice: decimal.NewFromInt(100),
				IsTaxable: true,
			},
			{
				ItemName:  "Pet hair removal",
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(25),
				IsTaxable: true,
			},
		},
	}
}

func (s *QuoteServiceSuite) TestCreateQuoteSnapshotsTotals() {
	resp, err := s.quoteService.CreateQuote(s.GetContext(), s.createQuoteRequest())
	s.NoError(err)

	s.Equal(types.QuoteStatusDraft, resp.QuoteStatus)
	s.NotEmpty(resp.ID)
	s.True(len(resp.Number) > 2 && resp.Number[:2] == "Q-", "number %s", resp.Number)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(150)), "subtotal %s", resp.Subtotal)
	s.True(resp.TaxAmount.Equal(decimal.NewFromInt(12)), "tax %s", resp.TaxAmount)
	s.True(resp.Total.Equal(decimal.NewFromInt(162)), "total %s", resp.Total)
}

func (s *QuoteServiceSuite) TestCreateQuoteRequiresItems() {
	_, err := s.quoteService.CreateQuote(s.GetContext(), dto.CreateQuoteRequest{})
	s.True(ierr.IsValidation(err))
}

func (s *QuoteServiceSuite) TestUpdateQuoteDraftOnly() {
	ctx := s.GetContext()
	created, err := s.quoteService.CreateQuote(ctx, s.createQuoteRequest())
	s.NoError(err)

	update := dto.UpdateQuoteRequest{
		CustomerID: "cust_1",
		Items: []dto.QuoteItemRequest{
			{ItemName: "Wash only", Quantity: 1, UnitPrice: decimal.NewFromInt(40), IsTaxable: true},
		},
	}
	updated, err := s.quoteService.UpdateQuote(ctx, created.ID, update)
	s.NoError(err)
	s.True(updated.Subtotal.Equal(decimal.NewFromInt(40)))

	_, err = s.quoteService.SendQuote(ctx, created.ID)
	s.NoError(err)

	_, err = s.quoteService.UpdateQuote(ctx, created.ID, update)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *QuoteServiceSuite) TestSendQuoteOnlyOnce() {
	ctx := s.GetContext()
	created, err := s.quoteService.CreateQuote(ctx, s.createQuoteRequest())
	s.NoError(err)

	sent, err := s.quoteService.SendQuote(ctx, created.ID)
	s.NoError(err)
	s.Equal(types.QuoteStatusSent, sent.QuoteStatus)

	_, err = s.quoteService.SendQuote(ctx, created.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *QuoteServiceSuite) TestConvertQuoteCreatesOpenTicket() {
	ctx := s.GetContext()
	created, err := s.quoteService.CreateQuote(ctx, s.createQuoteRequest())
	s.NoError(err)

	ticketResp, err := s.quoteService.ConvertQuote(ctx, created.ID)
	s.NoError(err)

	s.Equal(types.TicketStatusOpen, ticketResp.TicketStatus)
	s.Equal(created.ID, ticketResp.SourceQuoteID)
	s.Len(ticketResp.Items, 2)
	s.True(ticketResp.Total.Equal(created.Total))

	// No discount stack carries over from the estimate
	s.Empty(ticketResp.CouponID)
	s.Zero(ticketResp.LoyaltyPointsRedeemed)

	converted, err := s.quoteService.GetQuote(ctx, created.ID)
	s.NoError(err)
	s.Equal(types.QuoteStatusConverted, converted.QuoteStatus)
	s.Equal(ticketResp.ID, converted.ConvertedTicketID)
}

func (s *QuoteServiceSuite) TestConvertQuoteTwiceRejected() {
	ctx := s.GetContext()
	created, err := s.quoteService.CreateQuote(ctx, s.createQuoteRequest())
	s.NoError(err)

	_, err = s.quoteService.ConvertQuote(ctx, created.ID)
	s.NoError(err)

	_, err = s.quoteService.ConvertQuote(ctx, created.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *QuoteServiceSuite) TestDeleteQuoteBlocksConverted() {
	ctx := s.GetContext()
	created, err := s.quoteService.CreateQuote(ctx, s.createQuoteRequest())
	s.NoError(err)

	_, err = s.quoteService.ConvertQuote(ctx, created.ID)
	s.NoError(err)

	err = s.quoteService.DeleteQuote(ctx, created.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *QuoteServiceSuite) TestDeleteDraftQuote() {
	ctx := s.GetContext()
	created, err := s.quoteService.CreateQuote(ctx, s.createQuoteRequest())
	s.NoError(err)

	s.NoError(s.quoteService.DeleteQuote(ctx, created.ID))

	_, err = s.quoteService.GetQuote(ctx, created.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *QuoteServiceSuite) TestListQuotesByCustomer() {
	ctx := s.GetContext()

	_, err := s.quoteService.CreateQuote(ctx, s.createQuoteRequest())
	s.NoError(err)

	other := s.createQuoteRequest()
	other.CustomerID = "cust_2"
	_, err = s.quoteService.CreateQuote(ctx, other)
	s.NoError(err)

	all, err := s.quoteService.ListQuotes(ctx, "")
	s.NoError(err)
	s.Len(all, 2)

	mine, err := s.quoteService.ListQuotes(ctx, "cust_1")
	s.NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("cust_1", mine[0].CustomerID)
}

func (s *QuoteServiceSuite) TestHydrateSessionKeepsDuplicateRows() {
	ctx := s.GetContext()

	req := dto.CreateQuoteRequest{
		Items: []dto.QuoteItemRequest{
			{ServiceID: "svc_1", ItemName: "Exterior Detail", TierName: "Sedan", Quantity: 1, UnitPrice: decimal.NewFromInt(100), IsTaxable: true},
			{ServiceID: "svc_1", ItemName: "Exterior Detail", TierName: "Sedan", Quantity: 1, UnitPrice: decimal.NewFromInt(100), IsTaxable: true},
		},
	}
	created, err := s.quoteService.CreateQuote(ctx, req)
	s.NoError(err)

	session, err := s.quoteService.HydrateSession(ctx, created.ID)
	s.NoError(err)

	s.Equal(created.ID, session.PersistedID)
	s.Equal(types.SessionKindQuote, session.Kind)
	s.Len(session.Items, 2)
}

func (s *QuoteServiceSuite) TestHydrateSessionResolvesVehicleSize() {
	ctx := s.GetContext()

	veh := &customer.Vehicle{
		ID:         "veh_h",
		CustomerID: "cust_1",
		SizeClass:  types.VehicleSizeTruckVan,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().VehicleRepo.Create(ctx, veh))

	req := s.createQuoteRequest()
	req.VehicleID = veh.ID
	until := time.Now().Add(7 * 24 * time.Hour)
	req.ValidUntil = &until

	created, err := s.quoteService.CreateQuote(ctx, req)
	s.NoError(err)

	session, err := s.quoteService.HydrateSession(ctx, created.ID)
	s.NoError(err)
	s.Equal(types.VehicleSizeTruckVan, session.VehicleSize)
	s.NotNil(session.ValidUntil)
}
