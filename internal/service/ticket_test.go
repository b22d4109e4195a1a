package service

import (
	"testing"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/domain/coupon"
	"github.com/detailpos/detailpos/internal/domain/customer"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/testutil"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TicketServiceSuite struct {
	testutil.BaseServiceTestSuite
	ticketService TicketService
}

func TestTicketService(t *testing.T) {
	suite.Run(t, new(TicketServiceSuite))
}

func (s *TicketServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.ticketService = NewTicketService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		CustomerRepo: stores.CustomerRepo,
		CouponRepo:   stores.CouponRepo,
		QuoteRepo:    stores.QuoteRepo,
		TicketRepo:   stores.TicketRepo,
	})
}

func (s *TicketServiceSuite) seedCustomer(points int64) *customer.Customer {
	c := &customer.Customer{
		ID:            "cust_1",
		Name:          "Dana Whitfield",
		LoyaltyPoints: points,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), c))
	return c
}

func (s *TicketServiceSuite) seedCoupon() *coupon.Coupon {
	c := &coupon.Coupon{
		ID:          "coup_1",
		Code:        "SAVE10",
		Type:        types.CouponTypeFixed,
		AmountOff:   decimal.NewFromInt(10),
		MinSubtotal: decimal.Zero,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CouponRepo.Create(s.GetContext(), c))
	return c
}

func (s *TicketServiceSuite) createTicketRequest() dto.CreateTicketRequest {
	return dto.CreateTicketRequest{
		CustomerID: "cust_1",
		Items: []dto.QuoteItemRequest{
			{
				ServiceID: "svc_1",
				ItemName:  "Exterior Detail",
				TierName:  "Sedan",
				Quantity:  1,
				UnitPrice: decimal.NewFromInt(100),
				IsTaxable: true,
			},
		},
	}
}

func (s *TicketServiceSuite) TestCreateTicketSnapshotsTotals() {
	resp, err := s.ticketService.CreateTicket(s.GetContext(), s.createTicketRequest())
	s.NoError(err)

	s.Equal(types.TicketStatusOpen, resp.TicketStatus)
	s.True(len(resp.Number) > 2 && resp.Number[:2] == "T-", "number %s", resp.Number)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(100)))
	s.True(resp.TaxAmount.Equal(decimal.NewFromInt(8)))
	s.True(resp.Total.Equal(decimal.NewFromInt(108)))
}

func (s *TicketServiceSuite) TestCreateTicketReplaysDiscountStack() {
	req := s.createTicketRequest()
	req.CouponID = "coup_1"
	req.CouponCode = "SAVE10"
	req.CouponDiscount = decimal.NewFromInt(10)
	req.LoyaltyPointsRedeemed = 200
	req.LoyaltyDiscount = decimal.NewFromInt(2)
	req.ManualDiscountType = string(types.ManualDiscountTypePercent)
	req.ManualDiscountValue = decimal.NewFromInt(10)
	req.ManualDiscountLabel = "repeat customer"

	resp, err := s.ticketService.CreateTicket(s.GetContext(), req)
	s.NoError(err)

	// 100 - 10 coupon - 2 loyalty - 10 manual (10% of subtotal) + 8 tax
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(100)))
	s.True(resp.TaxAmount.Equal(decimal.NewFromInt(8)))
	s.True(resp.Total.Equal(decimal.NewFromInt(86)), "total %s", resp.Total)
	s.True(resp.CouponDiscount.Equal(decimal.NewFromInt(10)))
	s.True(resp.LoyaltyDiscount.Equal(decimal.NewFromInt(2)))
}

func (s *TicketServiceSuite) TestCreateTicketClampsTotalAtZero() {
	req := s.createTicketRequest()
	req.Items[0].UnitPrice = decimal.NewFromInt(5)
	req.CouponID = "coup_1"
	req.CouponCode = "SAVE10"
	req.CouponDiscount = decimal.NewFromInt(10)

	resp, err := s.ticketService.CreateTicket(s.GetContext(), req)
	s.NoError(err)

	// pre-tax amount clamps to zero; tax still applies on the item price
	s.True(resp.Total.Equal(decimal.NewFromFloat(0.4)), "total %s", resp.Total)
}

func (s *TicketServiceSuite) TestCreateTicketValidation() {
	_, err := s.ticketService.CreateTicket(s.GetContext(), dto.CreateTicketRequest{})
	s.True(ierr.IsValidation(err))

	req := s.createTicketRequest()
	req.LoyaltyPointsRedeemed = -1
	_, err = s.ticketService.CreateTicket(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *TicketServiceSuite) TestCompleteTicketSettlesEverything() {
	ctx := s.GetContext()
	s.seedCustomer(500)
	s.seedCoupon()

	req := s.createTicketRequest()
	req.CouponID = "coup_1"
	req.CouponCode = "SAVE10"
	req.CouponDiscount = decimal.NewFromInt(10)
	req.LoyaltyPointsRedeemed = 200
	req.LoyaltyDiscount = decimal.NewFromInt(2)

	created, err := s.ticketService.CreateTicket(ctx, req)
	s.NoError(err)

	completed, err := s.ticketService.CompleteTicket(ctx, created.ID)
	s.NoError(err)
	s.Equal(types.TicketStatusCompleted, completed.TicketStatus)
	s.NotNil(completed.CompletedAt)

	c, err := s.GetStores().CouponRepo.Get(ctx, "coup_1")
	s.NoError(err)
	s.Equal(1, c.TotalRedemptions)

	// total is 100 - 10 - 2 + 8 = 96, so 96 earned minus 200 redeemed
	cust, err := s.GetStores().CustomerRepo.Get(ctx, "cust_1")
	s.NoError(err)
	s.Equal(int64(500+96-200), cust.LoyaltyPoints)
}

func (s *TicketServiceSuite) TestCompleteTicketEarnsOnWholeDollars() {
	ctx := s.GetContext()
	s.seedCustomer(0)

	created, err := s.ticketService.CreateTicket(ctx, s.createTicketRequest())
	s.NoError(err)

	_, err = s.ticketService.CompleteTicket(ctx, created.ID)
	s.NoError(err)

	cust, err := s.GetStores().CustomerRepo.Get(ctx, "cust_1")
	s.NoError(err)
	s.Equal(int64(108), cust.LoyaltyPoints)
}

func (s *TicketServiceSuite) TestCompleteTicketOnlyWhenOpen() {
	ctx := s.GetContext()
	created, err := s.ticketService.CreateTicket(ctx, s.createTicketRequest())
	s.NoError(err)

	_, err = s.ticketService.CompleteTicket(ctx, created.ID)
	s.NoError(err)

	_, err = s.ticketService.CompleteTicket(ctx, created.ID)
	s.True(ierr.IsInvalidOperation(err))

	_, err = s.ticketService.VoidTicket(ctx, created.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *TicketServiceSuite) TestVoidTicketSettlesNothing() {
	ctx := s.GetContext()
	s.seedCustomer(500)
	s.seedCoupon()

	req := s.createTicketRequest()
	req.CouponID = "coup_1"
	req.CouponCode = "SAVE10"
	req.CouponDiscount = decimal.NewFromInt(10)
	req.LoyaltyPointsRedeemed = 200
	req.LoyaltyDiscount = decimal.NewFromInt(2)

	created, err := s.ticketService.CreateTicket(ctx, req)
	s.NoError(err)

	voided, err := s.ticketService.VoidTicket(ctx, created.ID)
	s.NoError(err)
	s.Equal(types.TicketStatusVoided, voided.TicketStatus)
	s.Nil(voided.CompletedAt)

	c, err := s.GetStores().CouponRepo.Get(ctx, "coup_1")
	s.NoError(err)
	s.Zero(c.TotalRedemptions)

	cust, err := s.GetStores().CustomerRepo.Get(ctx, "cust_1")
	s.NoError(err)
	s.Equal(int64(500), cust.LoyaltyPoints)
}

func (s *TicketServiceSuite) TestListTicketsByCustomer() {
	ctx := s.GetContext()

	_, err := s.ticketService.CreateTicket(ctx, s.createTicketRequest())
	s.NoError(err)

	other := s.createTicketRequest()
	other.CustomerID = "cust_2"
	_, err = s.ticketService.CreateTicket(ctx, other)
	s.NoError(err)

	all, err := s.ticketService.ListTickets(ctx, "")
	s.NoError(err)
	s.Len(all, 2)

	mine, err := s.ticketService.ListTickets(ctx, "cust_2")
	s.NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("cust_2", mine[0].CustomerID)
}
