package service

import (
	"testing"
	"time"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/domain/coupon"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/testutil"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CouponValidationServiceSuite struct {
	testutil.BaseServiceTestSuite
	validationService CouponValidationService
}

func TestCouponValidationService(t *testing.T) {
	suite.Run(t, new(CouponValidationServiceSuite))
}

func (s *CouponValidationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.validationService = NewCouponValidationService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		CouponRepo: stores.CouponRepo,
	})
}

func (s *CouponValidationServiceSuite) createCoupon(c *coupon.Coupon) {
	ctx := s.GetContext()
	c.BaseModel = types.GetDefaultBaseModel(ctx)
	s.NoError(s.GetStores().CouponRepo.Create(ctx, c))
}

func (s *CouponValidationServiceSuite) TestValidateCouponFixed() {
	s.createCoupon(&coupon.Coupon{
		ID:        "coupon_1",
		Code:      "SAVE10",
		Type:      types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(10),
	})

	resp, err := s.validationService.ValidateCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Code:     " save10 ",
		Subtotal: decimal.NewFromInt(100),
	})
	s.NoError(err)
	s.Equal("coupon_1", resp.CouponID)
	s.True(resp.TotalDiscount.Equal(decimal.NewFromInt(10)))
	s.Empty(resp.Warning)
}

func (s *CouponValidationServiceSuite) TestValidateCouponPercentage() {
	s.createCoupon(&coupon.Coupon{
		ID:            "coupon_pct",
		Code:          "QUARTER",
		Type:          types.CouponTypePercentage,
		PercentageOff: decimal.NewFromInt(25),
	})

	resp, err := s.validationService.ValidateCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Code:     "QUARTER",
		Subtotal: decimal.NewFromInt(200),
	})
	s.NoError(err)
	s.True(resp.TotalDiscount.Equal(decimal.NewFromInt(50)))
}

func (s *CouponValidationServiceSuite) TestValidateCouponUnknownCode() {
	_, err := s.validationService.ValidateCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Code:     "NOPE",
		Subtotal: decimal.NewFromInt(100),
	})
	s.True(ierr.IsNotFound(err))
}

func (s *CouponValidationServiceSuite) TestValidateCouponEmptyCode() {
	_, err := s.validationService.ValidateCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Subtotal: decimal.NewFromInt(100),
	})
	s.True(ierr.IsValidation(err))
}

func (s *CouponValidationServiceSuite) TestValidateCouponOutsideWindow() {
	future := time.Now().Add(time.Hour)
	s.createCoupon(&coupon.Coupon{
		ID:          "coupon_later",
		Code:        "NOTYET",
		Type:        types.CouponTypeFixed,
		AmountOff:   decimal.NewFromInt(10),
		RedeemAfter: &future,
	})

	_, err := s.validationService.ValidateCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Code:     "NOTYET",
		Subtotal: decimal.NewFromInt(100),
	})
	s.True(ierr.IsValidation(err))
}

func (s *CouponValidationServiceSuite) TestValidateCouponFullyRedeemed() {
	max := 1
	s.createCoupon(&coupon.Coupon{
		ID:               "coupon_done",
		Code:             "GONE",
		Type:             types.CouponTypeFixed,
		AmountOff:        decimal.NewFromInt(10),
		MaxRedemptions:   &max,
		TotalRedemptions: 1,
	})

	_, err := s.validationService.ValidateCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Code:     "GONE",
		Subtotal: decimal.NewFromInt(100),
	})
	s.True(ierr.IsValidation(err))
}

func (s *CouponValidationServiceSuite) TestValidateCouponBelowMinimum() {
	s.createCoupon(&coupon.Coupon{
		ID:          "coupon_min",
		Code:        "BIGJOB",
		Type:        types.CouponTypeFixed,
		AmountOff:   decimal.NewFromInt(25),
		MinSubtotal: decimal.NewFromInt(150),
	})

	_, err := s.validationService.ValidateCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Code:     "BIGJOB",
		Subtotal: decimal.NewFromInt(100),
	})
	s.True(ierr.IsValidation(err))
}

func (s *CouponValidationServiceSuite) TestValidateCouponWarnsWhenExceedingSubtotal() {
	s.createCoupon(&coupon.Coupon{
		ID:        "coupon_huge",
		Code:      "HUGE",
		Type:      types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(50),
	})

	resp, err := s.validationService.ValidateCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Code:     "HUGE",
		Subtotal: decimal.NewFromInt(30),
	})
	s.NoError(err)
	s.NotEmpty(resp.Warning)
}

func (s *CouponValidationServiceSuite) TestBestAutoApplySkipsNonQualifying() {
	s.createCoupon(&coupon.Coupon{
		ID: "coupon_small", Code: "AUTO5", Type: types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(5), AutoApply: true,
	})
	s.createCoupon(&coupon.Coupon{
		ID: "coupon_gated", Code: "AUTO50", Type: types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(50), AutoApply: true,
		MinSubtotal: decimal.NewFromInt(500),
	})

	best, err := s.validationService.BestAutoApplyCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Subtotal: decimal.NewFromInt(100),
	})
	s.NoError(err)
	s.Require().NotNil(best)
	s.Equal("AUTO5", best.Code)
}

func (s *CouponValidationServiceSuite) TestBestAutoApplyNoneQualify() {
	s.createCoupon(&coupon.Coupon{
		ID: "coupon_gated", Code: "AUTO50", Type: types.CouponTypeFixed,
		AmountOff: decimal.NewFromInt(50), AutoApply: true,
		MinSubtotal: decimal.NewFromInt(500),
	})

	best, err := s.validationService.BestAutoApplyCoupon(s.GetContext(), dto.ValidateCouponRequest{
		Subtotal: decimal.NewFromInt(100),
	})
	s.NoError(err)
	s.Nil(best)
}
