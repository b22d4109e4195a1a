package service

import (
	"testing"

	"github.com/detailpos/detailpos/internal/domain/catalog"
	"github.com/detailpos/detailpos/internal/domain/checkout"
	"github.com/detailpos/detailpos/internal/domain/coupon"
	"github.com/detailpos/detailpos/internal/domain/customer"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/testutil"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceSuite struct {
	testutil.BaseServiceTestSuite
	checkoutService CheckoutService

	service  *catalog.Service
	product  *catalog.Product
	customer *customer.Customer
	vehicle  *customer.Vehicle
}

func TestCheckoutService(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *CheckoutServiceSuite) params() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		ServiceRepo:  stores.ServiceRepo,
		ProductRepo:  stores.ProductRepo,
		CustomerRepo: stores.CustomerRepo,
		VehicleRepo:  stores.VehicleRepo,
		CouponRepo:   stores.CouponRepo,
		QuoteRepo:    stores.QuoteRepo,
		TicketRepo:   stores.TicketRepo,
	}
}

func (s *CheckoutServiceSuite) setupService() {
	s.checkoutService = NewCheckoutService(s.params())
}

func (s *CheckoutServiceSuite) setupTestData() {
	ctx := s.GetContext()

	s.service = &catalog.Service{
		ID:           "svc_exterior",
		Name:         "Exterior Detail",
		PricingModel: types.PricingModelVehicleSize,
		BasePrice:    decimal.NewFromInt(100),
		Taxable:      true,
		Tiers: catalog.JSONBTiers{
			{SizeClass: types.VehicleSizeSedan, Label: "Sedan", UnitPrice: decimal.NewFromInt(100)},
			{SizeClass: types.VehicleSizeSUV, Label: "SUV / Crossover", UnitPrice: decimal.NewFromInt(130)},
		},
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().ServiceRepo.Create(ctx, s.service))

	s.product = &catalog.Product{
		ID:        "prod_wax",
		Name:      "Carnauba Wax",
		Price:     decimal.NewFromInt(25),
		Taxable:   true,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().ProductRepo.Create(ctx, s.product))

	s.customer = &customer.Customer{
		ID:            "cust_1",
		Name:          "Dana",
		LoyaltyPoints: 500,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(ctx, s.customer))

	s.vehicle = &customer.Vehicle{
		ID:         "veh_1",
		CustomerID: s.customer.ID,
		Make:       "Toyota",
		Model:      "4Runner",
		SizeClass:  types.VehicleSizeSUV,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().VehicleRepo.Create(ctx, s.vehicle))
}

func (s *CheckoutServiceSuite) newSession() *checkout.Session {
	return s.checkoutService.NewSession(s.GetContext(), types.SessionKindTicket)
}

func (s *CheckoutServiceSuite) TestNewSessionUsesConfiguredTaxRate() {
	session := s.newSession()
	s.True(session.TaxRate.Equal(decimal.NewFromFloat(0.08)), "tax rate %s", session.TaxRate)
}

func (s *CheckoutServiceSuite) TestAddCatalogServiceWithoutVehicleFallsBack() {
	ctx := s.GetContext()
	session := s.newSession()

	s.NoError(s.checkoutService.AddCatalogService(ctx, session, s.service.ID, 1))

	s.Require().Len(session.Items, 1)
	s.True(session.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	s.Empty(session.Items[0].TierName)
}

func (s *CheckoutServiceSuite) TestAddCatalogServiceUnknown() {
	err := s.checkoutService.AddCatalogService(s.GetContext(), s.newSession(), "svc_missing", 1)
	s.True(ierr.IsNotFound(err))
}

func (s *CheckoutServiceSuite) TestAddProduct() {
	ctx := s.GetContext()
	session := s.newSession()

	s.NoError(s.checkoutService.AddProduct(ctx, session, s.product.ID, 2))

	s.Require().Len(session.Items, 1)
	s.Equal(types.LineItemTypeProduct, session.Items[0].ItemType)
	s.True(session.Totals().Subtotal.Equal(decimal.NewFromInt(50)))
}

func (s *CheckoutServiceSuite) TestAssignCustomerUnknown() {
	err := s.checkoutService.AssignCustomer(s.GetContext(), s.newSession(), "cust_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *CheckoutServiceSuite) TestAssignVehicleRequiresOwner() {
	ctx := s.GetContext()
	session := s.newSession()

	// No customer attached yet
	err := s.checkoutService.AssignVehicle(ctx, session, s.vehicle.ID)
	s.True(ierr.IsInvalidOperation(err))

	other := &customer.Customer{
		ID:        "cust_2",
		Name:      "Riley",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(ctx, other))
	s.NoError(s.checkoutService.AssignCustomer(ctx, session, other.ID))

	err = s.checkoutService.AssignVehicle(ctx, session, s.vehicle.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *CheckoutServiceSuite) TestAssignVehicleRepricesServiceLines() {
	ctx := s.GetContext()
	session := s.newSession()

	s.NoError(s.checkoutService.AddCatalogService(ctx, session, s.service.ID, 1))
	s.True(session.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))

	s.NoError(s.checkoutService.AssignCustomer(ctx, session, s.customer.ID))
	s.NoError(s.checkoutService.AssignVehicle(ctx, session, s.vehicle.ID))

	s.Equal(types.VehicleSizeSUV, session.VehicleSize)
	s.True(session.Items[0].UnitPrice.Equal(decimal.NewFromInt(130)), "price %s", session.Items[0].UnitPrice)
	s.Equal("SUV / Crossover", session.Items[0].TierName)
}

func (s *CheckoutServiceSuite) TestClearVehicleDropsServiceLinesToBasePrices() {
	ctx := s.GetContext()
	session := s.newSession()

	s.NoError(s.checkoutService.AddCatalogService(ctx, session, s.service.ID, 1))
	s.NoError(s.checkoutService.AssignCustomer(ctx, session, s.customer.ID))
	s.NoError(s.checkoutService.AssignVehicle(ctx, session, s.vehicle.ID))
	s.True(session.Items[0].UnitPrice.Equal(decimal.NewFromInt(130)))

	s.NoError(s.checkoutService.AssignVehicle(ctx, session, ""))

	s.Empty(session.VehicleID)
	s.Empty(session.VehicleSize)
	s.True(session.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)), "price %s", session.Items[0].UnitPrice)
	s.Empty(session.Items[0].TierName)
	s.True(session.Items[0].PricingIncomplete)
}

func (s *CheckoutServiceSuite) TestClearCustomerRepricesServiceLines() {
	ctx := s.GetContext()
	session := s.newSession()

	s.NoError(s.checkoutService.AddCatalogService(ctx, session, s.service.ID, 1))
	s.NoError(s.checkoutService.AssignCustomer(ctx, session, s.customer.ID))
	s.NoError(s.checkoutService.AssignVehicle(ctx, session, s.vehicle.ID))

	// Clearing the customer cascades to the vehicle and its tier pricing
	s.NoError(s.checkoutService.AssignCustomer(ctx, session, ""))

	s.Empty(session.CustomerID)
	s.Empty(session.VehicleID)
	s.True(session.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)), "price %s", session.Items[0].UnitPrice)
	s.True(session.Items[0].PricingIncomplete)
}

func (s *CheckoutServiceSuite) TestIncompletePricingSurfacedUntilVehicleAssigned() {
	ctx := s.GetContext()
	session := s.newSession()

	s.NoError(s.checkoutService.AddCatalogService(ctx, session, s.service.ID, 1))
	s.True(session.Items[0].PricingIncomplete)
	s.True(s.checkoutService.Render(ctx, session).IncompletePricing)

	s.NoError(s.checkoutService.AssignCustomer(ctx, session, s.customer.ID))
	s.NoError(s.checkoutService.AssignVehicle(ctx, session, s.vehicle.ID))

	s.False(session.Items[0].PricingIncomplete)
	s.False(s.checkoutService.Render(ctx, session).IncompletePricing)
}

func (s *CheckoutServiceSuite) TestApplyCouponCode() {
	ctx := s.GetContext()
	session := s.newSession()
	s.NoError(s.checkoutService.AddCustomItem(ctx, session, "Wash", decimal.NewFromInt(100), 1, true))

	s.createCoupon(&coupon.Coupon{
		ID:        "coupon_10",
		Code:      "SAVE10",
		Type:      types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(10),
	})

	s.NoError(s.checkoutService.ApplyCouponCode(ctx, session, "save10"))

	s.Require().NotNil(session.Coupon)
	s.Equal("SAVE10", session.Coupon.Code)
	s.True(session.Coupon.Discount.Equal(decimal.NewFromInt(10)))
	s.False(session.Coupon.IsAutoApplied)
}

func (s *CheckoutServiceSuite) TestApplyCouponCodeBelowMinimum() {
	ctx := s.GetContext()
	session := s.newSession()
	s.NoError(s.checkoutService.AddCustomItem(ctx, session, "Wash", decimal.NewFromInt(20), 1, true))

	s.createCoupon(&coupon.Coupon{
		ID:          "coupon_min",
		Code:        "BIGJOB",
		Type:        types.CouponTypeFixed,
		AmountOff:   decimal.NewFromInt(25),
		MinSubtotal: decimal.NewFromInt(150),
	})

	err := s.checkoutService.ApplyCouponCode(ctx, session, "BIGJOB")
	s.True(ierr.IsValidation(err))
	s.Nil(session.Coupon)
}

func (s *CheckoutServiceSuite) TestApplyAutoCouponsPicksBest() {
	ctx := s.GetContext()
	session := s.newSession()
	s.NoError(s.checkoutService.AddCustomItem(ctx, session, "Wash", decimal.NewFromInt(200), 1, true))

	s.createCoupon(&coupon.Coupon{
		ID: "coupon_a", Code: "AUTO5", Type: types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(5), AutoApply: true,
	})
	s.createCoupon(&coupon.Coupon{
		ID: "coupon_b", Code: "AUTO10PCT", Type: types.CouponTypePercentage,
		PercentageOff: decimal.NewFromInt(10), AutoApply: true,
	})

	s.NoError(s.checkoutService.ApplyAutoCoupons(ctx, session))

	s.Require().NotNil(session.Coupon)
	s.Equal("AUTO10PCT", session.Coupon.Code)
	s.True(session.Coupon.Discount.Equal(decimal.NewFromInt(20)))
	s.True(session.Coupon.IsAutoApplied)
}

func (s *CheckoutServiceSuite) TestApplyAutoCouponsManualWins() {
	ctx := s.GetContext()
	session := s.newSession()
	s.NoError(s.checkoutService.AddCustomItem(ctx, session, "Wash", decimal.NewFromInt(200), 1, true))

	s.createCoupon(&coupon.Coupon{
		ID: "coupon_manual", Code: "TYPED", Type: types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(5),
	})
	s.createCoupon(&coupon.Coupon{
		ID: "coupon_auto", Code: "AUTO50", Type: types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(50), AutoApply: true,
	})

	s.NoError(s.checkoutService.ApplyCouponCode(ctx, session, "TYPED"))
	s.NoError(s.checkoutService.ApplyAutoCoupons(ctx, session))

	s.Equal("TYPED", session.Coupon.Code)
}

func (s *CheckoutServiceSuite) TestApplyAutoCouponsClearsStale() {
	ctx := s.GetContext()
	session := s.newSession()
	s.NoError(s.checkoutService.AddCustomItem(ctx, session, "Wash", decimal.NewFromInt(100), 1, true))

	s.createCoupon(&coupon.Coupon{
		ID: "coupon_auto", Code: "AUTOBIG", Type: types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(10), AutoApply: true,
		MinSubtotal: decimal.NewFromInt(100),
	})

	s.NoError(s.checkoutService.ApplyAutoCoupons(ctx, session))
	s.Require().NotNil(session.Coupon)

	// Shrinking the order below the minimum drops the stale auto coupon
	s.NoError(s.checkoutService.Dispatch(ctx, session, checkout.Action{
		Type:     checkout.ActionUpdateItemQuantity,
		ItemID:   session.Items[0].ID,
		Quantity: 0,
	}))
	s.NoError(s.checkoutService.ApplyAutoCoupons(ctx, session))
	s.Nil(session.Coupon)
}

func (s *CheckoutServiceSuite) TestRemoveCoupon() {
	ctx := s.GetContext()
	session := s.newSession()
	s.NoError(s.checkoutService.AddCustomItem(ctx, session, "Wash", decimal.NewFromInt(100), 1, true))

	s.createCoupon(&coupon.Coupon{
		ID: "coupon_x", Code: "X", Type: types.CouponTypeFixed, AmountOff: decimal.NewFromInt(5),
	})
	s.NoError(s.checkoutService.ApplyCouponCode(ctx, session, "X"))
	s.NoError(s.checkoutService.RemoveCoupon(ctx, session))
	s.Nil(session.Coupon)
}

func (s *CheckoutServiceSuite) TestRedeemLoyaltyRequiresCustomer() {
	err := s.checkoutService.RedeemLoyalty(s.GetContext(), s.newSession())
	s.True(ierr.IsInvalidOperation(err))
}

func (s *CheckoutServiceSuite) TestRedeemLoyaltyFullBalance() {
	ctx := s.GetContext()
	session := s.newSession()
	s.NoError(s.checkoutService.AssignCustomer(ctx, session, s.customer.ID))

	s.NoError(s.checkoutService.RedeemLoyalty(ctx, session))

	s.Equal(int64(500), session.LoyaltyPointsToRedeem)
	s.True(session.LoyaltyDiscount.Equal(decimal.NewFromInt(5)), "discount %s", session.LoyaltyDiscount)
}

func (s *CheckoutServiceSuite) TestRedeemLoyaltyNoPoints() {
	ctx := s.GetContext()
	broke := &customer.Customer{
		ID:        "cust_broke",
		Name:      "Sam",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(ctx, broke))

	session := s.newSession()
	s.NoError(s.checkoutService.AssignCustomer(ctx, session, broke.ID))

	err := s.checkoutService.RedeemLoyalty(ctx, session)
	s.True(ierr.IsValidation(err))
}

func (s *CheckoutServiceSuite) TestClearLoyalty() {
	ctx := s.GetContext()
	session := s.newSession()
	s.NoError(s.checkoutService.AssignCustomer(ctx, session, s.customer.ID))
	s.NoError(s.checkoutService.RedeemLoyalty(ctx, session))

	s.NoError(s.checkoutService.ClearLoyalty(ctx, session))

	s.Zero(session.LoyaltyPointsToRedeem)
	s.True(session.LoyaltyDiscount.IsZero())
}

func (s *CheckoutServiceSuite) createCoupon(c *coupon.Coupon) {
	ctx := s.GetContext()
	c.BaseModel = types.GetDefaultBaseModel(ctx)
	s.NoError(s.GetStores().CouponRepo.Create(ctx, c))
}
