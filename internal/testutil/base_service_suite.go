package testutil

import (
	"context"
	"time"

	"github.com/detailpos/detailpos/internal/cache"
	"github.com/detailpos/detailpos/internal/config"
	"github.com/detailpos/detailpos/internal/domain/catalog"
	"github.com/detailpos/detailpos/internal/domain/coupon"
	"github.com/detailpos/detailpos/internal/domain/customer"
	"github.com/detailpos/detailpos/internal/domain/quote"
	"github.com/detailpos/detailpos/internal/domain/ticket"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/detailpos/detailpos/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores is a collection of in-memory repository implementations
type Stores struct {
	ServiceRepo  catalog.ServiceRepository
	ProductRepo  catalog.ProductRepository
	CustomerRepo customer.Repository
	VehicleRepo  customer.VehicleRepository
	CouponRepo   coupon.Repository
	QuoteRepo    quote.Repository
	TicketRepo   ticket.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	logger *logger.Logger
	stores Stores
	now    time.Time
}

// SetupSuite initializes shared resources
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.cfg = config.GetDefaultConfig()
	s.cfg.Logging.Level = types.LogLevelInfo

	log, err := logger.NewLogger(s.cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.logger = log

	cache.InitializeInMemoryCache(s.cfg)
}

// SetupTest prepares fresh state for each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest cleans up test state
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		ServiceRepo:  NewInMemoryServiceStore(),
		ProductRepo:  NewInMemoryProductStore(),
		CustomerRepo: NewInMemoryCustomerStore(),
		VehicleRepo:  NewInMemoryVehicleStore(),
		CouponRepo:   NewInMemoryCouponStore(),
		QuoteRepo:    NewInMemoryQuoteStore(),
		TicketRepo:   NewInMemoryTicketStore(),
	}
}

// ClearStores resets every in-memory store
func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.ServiceRepo.(*InMemoryServiceStore).Clear()
	s.stores.ProductRepo.(*InMemoryProductStore).Clear()
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.VehicleRepo.(*InMemoryVehicleStore).Clear()
	s.stores.CouponRepo.(*InMemoryCouponStore).Clear()
	s.stores.QuoteRepo.(*InMemoryQuoteStore).Clear()
	s.stores.TicketRepo.(*InMemoryTicketStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns the in-memory stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
