package postgres

import (
	"context"
	"database/sql"

	"github.com/detailpos/detailpos/internal/domain/quote"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/postgres"
	"github.com/detailpos/detailpos/internal/types"
)

type quoteRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewQuoteRepository creates a new postgres-backed quote repository
func NewQuoteRepository(db *postgres.DB, logger *logger.Logger) quote.Repository {
	return &quoteRepository{db: db, logger: logger}
}

func (r *quoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	query := `
		INSERT INTO quotes (
			id, number, customer_id, vehicle_id, quote_status, notes,
			valid_until, items, subtotal, tax_amount, total, tax_rate,
			converted_ticket_id,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :number, :customer_id, :vehicle_id, :quote_status, :notes,
			:valid_until, :items, :subtotal, :tax_amount, :total, :tax_rate,
			:converted_ticket_id,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create quote").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *quoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	var q quote.Quote
	query := `SELECT * FROM quotes WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &q, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Quote %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get quote").
			Mark(ierr.ErrDatabase)
	}
	return &q, nil
}

func (r *quoteRepository) List(ctx context.Context) ([]*quote.Quote, error) {
	var quotes []*quote.Quote
	query := `SELECT * FROM quotes WHERE status != $1 ORDER BY created_at DESC`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &quotes, query, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list quotes").
			Mark(ierr.ErrDatabase)
	}
	return quotes, nil
}

func (r *quoteRepository) ListByCustomer(ctx context.Context, customerID string) ([]*quote.Quote, error) {
	var quotes []*quote.Quote
	query := `SELECT * FROM quotes WHERE customer_id = $1 AND status != $2 ORDER BY created_at DESC`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &quotes, query, customerID, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list quotes").
			Mark(ierr.ErrDatabase)
	}
	return quotes, nil
}

func (r *quoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	query := `
		UPDATE quotes SET
			customer_id = :customer_id,
			vehicle_id = :vehicle_id,
			quote_status = :quote_status,
			notes = :notes,
			valid_until = :valid_until,
			items = :items,
			subtotal = :subtotal,
			tax_amount = :tax_amount,
			total = :total,
			tax_rate = :tax_rate,
			converted_ticket_id = :converted_ticket_id,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, q)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update quote").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "quote", q.ID)
}

func (r *quoteRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE quotes SET status = $1 WHERE id = $2 AND status != $1`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, types.StatusDeleted, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete quote").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "quote", id)
}
