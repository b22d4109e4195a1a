package postgres

import (
	"context"
	"database/sql"

	"github.com/detailpos/detailpos/internal/domain/coupon"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/postgres"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/lib/pq"
)

type couponRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewCouponRepository creates a new postgres-backed coupon repository
func NewCouponRepository(db *postgres.DB, logger *logger.Logger) coupon.Repository {
	return &couponRepository{db: db, logger: logger}
}

func (r *couponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	query := `
		INSERT INTO coupons (
			id, code, description, type, amount_off, percentage_off,
			min_subtotal, redeem_after, redeem_before, max_redemptions,
			total_redemptions, auto_apply,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :code, :description, :type, :amount_off, :percentage_off,
			:min_subtotal, :redeem_after, :redeem_before, :max_redemptions,
			:total_redemptions, :auto_apply,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return ierr.WithError(err).
				WithHintf("A coupon with code %s already exists", c.Code).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create coupon").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *couponRepository) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	query := `SELECT * FROM coupons WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Coupon %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	query := `SELECT * FROM coupons WHERE code = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, code, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Coupon %s was not found", code).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *couponRepository) List(ctx context.Context) ([]*coupon.Coupon, error) {
	var coupons []*coupon.Coupon
	query := `SELECT * FROM coupons WHERE status != $1 ORDER BY code`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &coupons, query, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list coupons").
			Mark(ierr.ErrDatabase)
	}
	return coupons, nil
}

func (r *couponRepository) ListAutoApply(ctx context.Context) ([]*coupon.Coupon, error) {
	var coupons []*coupon.Coupon
	query := `SELECT * FROM coupons WHERE auto_apply AND status = $1 ORDER BY code`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &coupons, query, types.StatusPublished); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list auto-apply coupons").
			Mark(ierr.ErrDatabase)
	}
	return coupons, nil
}

func (r *couponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	query := `
		UPDATE coupons SET
			description = :description,
			type = :type,
			amount_off = :amount_off,
			percentage_off = :percentage_off,
			min_subtotal = :min_subtotal,
			redeem_after = :redeem_after,
			redeem_before = :redeem_before,
			max_redemptions = :max_redemptions,
			auto_apply = :auto_apply,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update coupon").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "coupon", c.ID)
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE coupons SET status = $1 WHERE id = $2 AND status != $1`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, types.StatusDeleted, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete coupon").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "coupon", id)
}

// IncrementRedemptions bumps the redemption counter without exceeding the cap
func (r *couponRepository) IncrementRedemptions(ctx context.Context, id string) error {
	query := `
		UPDATE coupons
		SET total_redemptions = total_redemptions + 1
		WHERE id = $1
		  AND (max_redemptions IS NULL OR total_redemptions < max_redemptions)`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to count redemption").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("coupon redemption rejected").
			WithHintf("Coupon %s was not found or is fully redeemed", id).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}
