package repository

import (
	"github.com/detailpos/detailpos/internal/domain/catalog"
	"github.com/detailpos/detailpos/internal/domain/coupon"
	"github.com/detailpos/detailpos/internal/domain/customer"
	"github.com/detailpos/detailpos/internal/domain/quote"
	"github.com/detailpos/detailpos/internal/domain/ticket"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/postgres"
	pgRepo "github.com/detailpos/detailpos/internal/repository/postgres"
)

// RepositoryParams holds the dependencies shared by all repositories
type RepositoryParams struct {
	DB     *postgres.DB
	Logger *logger.Logger
}

// NewRepositoryParams wires the shared repository dependencies
func NewRepositoryParams(db *postgres.DB, logger *logger.Logger) RepositoryParams {
	return RepositoryParams{DB: db, Logger: logger}
}

func NewServiceRepository(params RepositoryParams) catalog.ServiceRepository {
	return pgRepo.NewServiceRepository(params.DB, params.Logger)
}

func NewProductRepository(params RepositoryParams) catalog.ProductRepository {
	return pgRepo.NewProductRepository(params.DB, params.Logger)
}

func NewCustomerRepository(params RepositoryParams) customer.Repository {
	return pgRepo.NewCustomerRepository(params.DB, params.Logger)
}

func NewVehicleRepository(params RepositoryParams) customer.VehicleRepository {
	return pgRepo.NewVehicleRepository(params.DB, params.Logger)
}

func NewCouponRepository(params RepositoryParams) coupon.Repository {
	return pgRepo.NewCouponRepository(params.DB, params.Logger)
}

func NewQuoteRepository(params RepositoryParams) quote.Repository {
	return pgRepo.NewQuoteRepository(params.DB, params.Logger)
}

func NewTicketRepository(params RepositoryParams) ticket.Repository {
	return pgRepo.NewTicketRepository(params.DB, params.Logger)
}
