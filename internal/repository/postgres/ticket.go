package postgres

import (
	"context"
	"database/sql"

	"github.com/detailpos/detailpos/internal/domain/ticket"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/postgres"
	"github.com/detailpos/detailpos/internal/types"
)

type ticketRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewTicketRepository creates a new postgres-backed ticket repository
func NewTicketRepository(db *postgres.DB, logger *logger.Logger) ticket.Repository {
	return &ticketRepository{db: db, logger: logger}
}

func (r *ticketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	query := `
		INSERT INTO tickets (
			id, number, customer_id, vehicle_id, ticket_status, notes, items,
			coupon_id, coupon_code, coupon_discount,
			loyalty_points_redeemed, loyalty_discount,
			manual_discount_type, manual_discount_value, manual_discount_label,
			subtotal, tax_amount, total, tax_rate,
			source_quote_id, completed_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :number, :customer_id, :vehicle_id, :ticket_status, :notes, :items,
			:coupon_id, :coupon_code, :coupon_discount,
			:loyalty_points_redeemed, :loyalty_discount,
			:manual_discount_type, :manual_discount_value, :manual_discount_label,
			:subtotal, :tax_amount, :total, :tax_rate,
			:source_quote_id, :completed_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create ticket").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *ticketRepository) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	var t ticket.Ticket
	query := `SELECT * FROM tickets WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Ticket %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get ticket").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]*ticket.Ticket, error) {
	var tickets []*ticket.Ticket
	query := `SELECT * FROM tickets WHERE status != $1 ORDER BY created_at DESC`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &tickets, query, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list tickets").
			Mark(ierr.ErrDatabase)
	}
	return tickets, nil
}

func (r *ticketRepository) ListByCustomer(ctx context.Context, customerID string) ([]*ticket.Ticket, error) {
	var tickets []*ticket.Ticket
	query := `SELECT * FROM tickets WHERE customer_id = $1 AND status != $2 ORDER BY created_at DESC`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &tickets, query, customerID, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list tickets").
			Mark(ierr.ErrDatabase)
	}
	return tickets, nil
}

func (r *ticketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	query := `
		UPDATE tickets SET
			customer_id = :customer_id,
			vehicle_id = :vehicle_id,
			ticket_status = :ticket_status,
			notes = :notes,
			items = :items,
			coupon_id = :coupon_id,
			coupon_code = :coupon_code,
			coupon_discount = :coupon_discount,
			loyalty_points_redeemed = :loyalty_points_redeemed,
			loyalty_discount = :loyalty_discount,
			manual_discount_type = :manual_discount_type,
			manual_discount_value = :manual_discount_value,
			manual_discount_label = :manual_discount_label,
			subtotal = :subtotal,
			tax_amount = :tax_amount,
			total = :total,
			tax_rate = :tax_rate,
			completed_at = :completed_at,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update ticket").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "ticket", t.ID)
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE tickets SET status = $1 WHERE id = $2 AND status != $1`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, types.StatusDeleted, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete ticket").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "ticket", id)
}
