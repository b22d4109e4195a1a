package testutil

import (
	"context"

	"github.com/detailpos/detailpos/internal/domain/coupon"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/types"
)

// InMemoryCouponStore implements coupon.Repository
type InMemoryCouponStore struct {
	*InMemoryStore[*coupon.Coupon]
}

// NewInMemoryCouponStore creates a new in-memory coupon store
func NewInMemoryCouponStore() *InMemoryCouponStore {
	return &InMemoryCouponStore{
		InMemoryStore: NewInMemoryStore[*coupon.Coupon](),
	}
}

func copyCoupon(c *coupon.Coupon) *coupon.Coupon {
	if c == nil {
		return nil
	}
	copied := *c
	if c.RedeemAfter != nil {
		after := *c.RedeemAfter
		copied.RedeemAfter = &after
	}
	if c.RedeemBefore != nil {
		before := *c.RedeemBefore
		copied.RedeemBefore = &before
	}
	if c.MaxRedemptions != nil {
		max := *c.MaxRedemptions
		copied.MaxRedemptions = &max
	}
	return &copied
}

func (s *InMemoryCouponStore) Create(ctx context.Context, c *coupon.Coupon) error {
	if c == nil {
		return ierr.NewError("coupon cannot be nil").
			WithHint("Coupon cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCoupon(c))
}

func (s *InMemoryCouponStore) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("coupon not found").
			WithHintf("Coupon %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCoupon(c), nil
}

func (s *InMemoryCouponStore) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	coupons, err := s.InMemoryStore.List(ctx, code,
		func(_ context.Context, c *coupon.Coupon, filter interface{}) bool {
			return c.Code == filter.(string)
		}, nil)
	if err != nil {
		return nil, err
	}
	if len(coupons) == 0 {
		return nil, ierr.NewError("coupon not found").
			WithHintf("Coupon %s was not found", code).
			Mark(ierr.ErrNotFound)
	}
	return copyCoupon(coupons[0]), nil
}

func (s *InMemoryCouponStore) List(ctx context.Context) ([]*coupon.Coupon, error) {
	coupons, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *coupon.Coupon) bool {
		return i.Code < j.Code
	})
	if err != nil {
		return nil, err
	}
	result := make([]*coupon.Coupon, len(coupons))
	for i, c := range coupons {
		result[i] = copyCoupon(c)
	}
	return result, nil
}

func (s *InMemoryCouponStore) ListAutoApply(ctx context.Context) ([]*coupon.Coupon, error) {
	coupons, err := s.InMemoryStore.List(ctx, nil,
		func(_ context.Context, c *coupon.Coupon, _ interface{}) bool {
			return c.AutoApply && c.Status == types.StatusPublished
		},
		func(i, j *coupon.Coupon) bool {
			return i.Code < j.Code
		})
	if err != nil {
		return nil, err
	}
	result := make([]*coupon.Coupon, len(coupons))
	for i, c := range coupons {
		result[i] = copyCoupon(c)
	}
	return result, nil
}

func (s *InMemoryCouponStore) Update(ctx context.Context, c *coupon.Coupon) error {
	if err := s.InMemoryStore.Update(ctx, c.ID, copyCoupon(c)); err != nil {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryCouponStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryCouponStore) IncrementRedemptions(ctx context.Context, id string) error {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if c.MaxRedemptions != nil && c.TotalRedemptions >= *c.MaxRedemptions {
		return ierr.NewError("coupon redemption rejected").
			WithHintf("Coupon %s is fully redeemed", id).
			Mark(ierr.ErrInvalidOperation)
	}

	updated := copyCoupon(c)
	updated.TotalRedemptions++
	return s.InMemoryStore.Update(ctx, id, updated)
}
