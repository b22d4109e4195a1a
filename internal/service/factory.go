package service

import (
	"context"

	"github.com/detailpos/detailpos/internal/cache"
	"github.com/detailpos/detailpos/internal/config"
	"github.com/detailpos/detailpos/internal/domain/catalog"
	"github.com/detailpos/detailpos/internal/domain/coupon"
	"github.com/detailpos/detailpos/internal/domain/customer"
	"github.com/detailpos/detailpos/internal/domain/quote"
	"github.com/detailpos/detailpos/internal/domain/ticket"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/postgres"
)

// TxRunner runs fn inside a database transaction, committing on success
// and rolling back on error
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache
	DB     TxRunner

	// Repositories
	ServiceRepo  catalog.ServiceRepository
	ProductRepo  catalog.ProductRepository
	CustomerRepo customer.Repository
	VehicleRepo  customer.VehicleRepository
	CouponRepo   coupon.Repository
	QuoteRepo    quote.Repository
	TicketRepo   ticket.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cacheClient cache.Cache,
	db *postgres.DB,
	serviceRepo catalog.ServiceRepository,
	productRepo catalog.ProductRepository,
	customerRepo customer.Repository,
	vehicleRepo customer.VehicleRepository,
	couponRepo coupon.Repository,
	quoteRepo quote.Repository,
	ticketRepo ticket.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		Cache:        cacheClient,
		DB:           db,
		ServiceRepo:  serviceRepo,
		ProductRepo:  productRepo,
		CustomerRepo: customerRepo,
		VehicleRepo:  vehicleRepo,
		CouponRepo:   couponRepo,
		QuoteRepo:    quoteRepo,
		TicketRepo:   ticketRepo,
	}
}
