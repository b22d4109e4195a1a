package service

import (
	"context"
	"strings"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/cache"
	"github.com/detailpos/detailpos/internal/domain/coupon"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
)

// CouponService defines the interface for coupon operations
type CouponService interface {
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error)
	GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error)
	GetCouponByCode(ctx context.Context, code string) (*dto.CouponResponse, error)
	ListCoupons(ctx context.Context) ([]*dto.CouponResponse, error)
	DeleteCoupon(ctx context.Context, id string) error
}

type couponService struct {
	ServiceParams
}

// NewCouponService creates a new coupon service
func NewCouponService(params ServiceParams) CouponService {
	return &couponService{
		ServiceParams: params,
	}
}

// CreateCoupon creates a new coupon
func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if existing, err := s.CouponRepo.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, ierr.NewError("coupon code already exists").
			WithHintf("A coupon with code %s already exists", code).
			Mark(ierr.ErrAlreadyExists)
	}

	c := &coupon.Coupon{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COUPON),
		Code:           code,
		Description:    req.Description,
		Type:           req.Type,
		AmountOff:      req.AmountOff,
		PercentageOff:  req.PercentageOff,
		MinSubtotal:    req.MinSubtotal,
		RedeemAfter:    req.RedeemAfter,
		RedeemBefore:   req.RedeemBefore,
		MaxRedemptions: req.MaxRedemptions,
		AutoApply:      req.AutoApply,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	if err := s.CouponRepo.Create(ctx, c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create coupon").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("created coupon",
		"coupon_id", c.ID,
		"code", c.Code,
		"type", c.Type)

	return &dto.CouponResponse{Coupon: c}, nil
}

// GetCoupon retrieves a coupon by ID
func (s *couponService) GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error) {
	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CouponResponse{Coupon: c}, nil
}

// GetCouponByCode retrieves a coupon by its redemption code
func (s *couponService) GetCouponByCode(ctx context.Context, code string) (*dto.CouponResponse, error) {
	c, err := s.CouponRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	return &dto.CouponResponse{Coupon: c}, nil
}

// ListCoupons lists all coupons
func (s *couponService) ListCoupons(ctx context.Context) ([]*dto.CouponResponse, error) {
	coupons, err := s.CouponRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CouponResponse, len(coupons))
	for i, c := range coupons {
		responses[i] = &dto.CouponResponse{Coupon: c}
	}
	return responses, nil
}

// DeleteCoupon deletes a coupon
func (s *couponService) DeleteCoupon(ctx context.Context, id string) error {
	if err := s.CouponRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixCoupon, id))
	return nil
}
