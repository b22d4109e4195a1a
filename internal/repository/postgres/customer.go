package postgres

import (
	"context"
	"database/sql"

	"github.com/detailpos/detailpos/internal/domain/customer"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/postgres"
	"github.com/detailpos/detailpos/internal/types"
)

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewCustomerRepository creates a new postgres-backed customer repository
func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			id, name, phone, email, loyalty_points,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :phone, :email, :loyalty_points,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT * FROM customers WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Customer %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	var customers []*customer.Customer
	query := `SELECT * FROM customers WHERE status != $1 ORDER BY name`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &customers, query, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers SET
			name = :name,
			phone = :phone,
			email = :email,
			loyalty_points = :loyalty_points,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "customer", c.ID)
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE customers SET status = $1 WHERE id = $2 AND status != $1`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, types.StatusDeleted, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete customer").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "customer", id)
}

// AdjustLoyaltyPoints applies delta atomically, refusing to drive the balance
// negative
func (r *customerRepository) AdjustLoyaltyPoints(ctx context.Context, id string, delta int64) error {
	query := `
		UPDATE customers
		SET loyalty_points = loyalty_points + $1
		WHERE id = $2 AND status != $3 AND loyalty_points + $1 >= 0`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, delta, id, types.StatusDeleted)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to adjust loyalty points").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("loyalty adjustment rejected").
			WithHintf("Customer %s was not found or has insufficient points", id).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

type vehicleRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewVehicleRepository creates a new postgres-backed vehicle repository
func NewVehicleRepository(db *postgres.DB, logger *logger.Logger) customer.VehicleRepository {
	return &vehicleRepository{db: db, logger: logger}
}

func (r *vehicleRepository) Create(ctx context.Context, v *customer.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			id, customer_id, make, model, year, color, size_class,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :customer_id, :make, :model, :year, :color, :size_class,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create vehicle").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *vehicleRepository) Get(ctx context.Context, id string) (*customer.Vehicle, error) {
	var v customer.Vehicle
	query := `SELECT * FROM vehicles WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &v, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Vehicle %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get vehicle").
			Mark(ierr.ErrDatabase)
	}
	return &v, nil
}

func (r *vehicleRepository) ListByCustomer(ctx context.Context, customerID string) ([]*customer.Vehicle, error) {
	var vehicles []*customer.Vehicle
	query := `SELECT * FROM vehicles WHERE customer_id = $1 AND status != $2 ORDER BY created_at`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &vehicles, query, customerID, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list vehicles").
			Mark(ierr.ErrDatabase)
	}
	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *customer.Vehicle) error {
	query := `
		UPDATE vehicles SET
			make = :make,
			model = :model,
			year = :year,
			color = :color,
			size_class = :size_class,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, v)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update vehicle").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "vehicle", v.ID)
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE vehicles SET status = $1 WHERE id = $2 AND status != $1`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, types.StatusDeleted, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete vehicle").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "vehicle", id)
}
