package main

import (
	"context"
	"time"

	"github.com/detailpos/detailpos/internal/api"
	v1 "github.com/detailpos/detailpos/internal/api/v1"
	"github.com/detailpos/detailpos/internal/cache"
	"github.com/detailpos/detailpos/internal/config"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/postgres"
	"github.com/detailpos/detailpos/internal/repository"
	"github.com/detailpos/detailpos/internal/service"
	"github.com/detailpos/detailpos/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// @title DetailPOS API
// @version 1.0
// @description Point-of-sale API for auto detailing shops
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Load .env for local development; missing file is fine
	_ = godotenv.Load()

	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			provideCache,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewRepositoryParams,
			repository.NewServiceRepository,
			repository.NewProductRepository,
			repository.NewCustomerRepository,
			repository.NewVehicleRepository,
			repository.NewCouponRepository,
			repository.NewQuoteRepository,
			repository.NewTicketRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewSessionRegistry,

			service.NewCatalogService,
			service.NewPricingService,
			service.NewCustomerService,
			service.NewCouponService,
			service.NewCouponValidationService,
			service.NewCheckoutService,
			service.NewQuoteService,
			service.NewTicketService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			registerValidator,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideCache(cfg *config.Configuration, log *logger.Logger) cache.Cache {
	return cache.Initialize(cfg, log)
}

func registerValidator() {
	validator.NewValidator()
}

func provideHandlers(
	logger *logger.Logger,
	catalogService service.CatalogService,
	pricingService service.PricingService,
	customerService service.CustomerService,
	couponService service.CouponService,
	couponValidationService service.CouponValidationService,
	checkoutService service.CheckoutService,
	quoteService service.QuoteService,
	ticketService service.TicketService,
	registry *service.SessionRegistry,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(),
		Catalog:  v1.NewCatalogHandler(catalogService, pricingService, logger),
		Customer: v1.NewCustomerHandler(customerService, logger),
		Coupon:   v1.NewCouponHandler(couponService, couponValidationService, logger),
		Quote:    v1.NewQuoteHandler(quoteService, logger),
		Ticket:   v1.NewTicketHandler(ticketService, logger),
		Checkout: v1.NewCheckoutHandler(checkoutService, quoteService, ticketService, registry, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
