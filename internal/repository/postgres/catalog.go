package postgres

import (
	"context"
	"database/sql"

	"github.com/detailpos/detailpos/internal/domain/catalog"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/postgres"
	"github.com/detailpos/detailpos/internal/types"
)

type serviceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewServiceRepository creates a new postgres-backed service repository
func NewServiceRepository(db *postgres.DB, logger *logger.Logger) catalog.ServiceRepository {
	return &serviceRepository{db: db, logger: logger}
}

func (r *serviceRepository) Create(ctx context.Context, svc *catalog.Service) error {
	query := `
		INSERT INTO services (
			id, name, description, pricing_model, base_price, taxable, tiers,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :description, :pricing_model, :base_price, :taxable, :tiers,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, svc); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create service").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id string) (*catalog.Service, error) {
	var svc catalog.Service
	query := `SELECT * FROM services WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &svc, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Service %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get service").
			Mark(ierr.ErrDatabase)
	}
	return &svc, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]*catalog.Service, error) {
	var services []*catalog.Service
	query := `SELECT * FROM services WHERE status != $1 ORDER BY name`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &services, query, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list services").
			Mark(ierr.ErrDatabase)
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *catalog.Service) error {
	query := `
		UPDATE services SET
			name = :name,
			description = :description,
			pricing_model = :pricing_model,
			base_price = :base_price,
			taxable = :taxable,
			tiers = :tiers,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, svc)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update service").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "service", svc.ID)
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE services SET status = $1 WHERE id = $2 AND status != $1`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, types.StatusDeleted, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete service").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "service", id)
}

type productRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewProductRepository creates a new postgres-backed product repository
func NewProductRepository(db *postgres.DB, logger *logger.Logger) catalog.ProductRepository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) Create(ctx context.Context, product *catalog.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, price, taxable,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :description, :price, :taxable,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*catalog.Product, error) {
	var product catalog.Product
	query := `SELECT * FROM products WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &product, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Product %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get product").
			Mark(ierr.ErrDatabase)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]*catalog.Product, error) {
	var products []*catalog.Product
	query := `SELECT * FROM products WHERE status != $1 ORDER BY name`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &products, query, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *catalog.Product) error {
	query := `
		UPDATE products SET
			name = :name,
			description = :description,
			price = :price,
			taxable = :taxable,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, product)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update product").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "product", product.ID)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE products SET status = $1 WHERE id = $2 AND status != $1`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, types.StatusDeleted, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete product").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, "product", id)
}
