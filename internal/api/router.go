package api

import (
	v1 "github.com/detailpos/detailpos/internal/api/v1"
	"github.com/detailpos/detailpos/internal/config"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/rest/middleware"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Catalog  *v1.CatalogHandler
	Customer *v1.CustomerHandler
	Coupon   *v1.CouponHandler
	Quote    *v1.QuoteHandler
	Ticket   *v1.TicketHandler
	Checkout *v1.CheckoutHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Catalog routes
	services := router.Group("/services")
	{
		services.POST("", handlers.Catalog.CreateService)
		services.GET("", handlers.Catalog.ListServices)
		services.POST("/resolve-price", handlers.Catalog.ResolvePrice)
		services.GET("/:id", handlers.Catalog.GetService)
		services.PUT("/:id", handlers.Catalog.UpdateService)
		services.DELETE("/:id", handlers.Catalog.DeleteService)
	}

	products := router.Group("/products")
	{
		products.POST("", handlers.Catalog.CreateProduct)
		products.GET("", handlers.Catalog.ListProducts)
		products.GET("/:id", handlers.Catalog.GetProduct)
		products.DELETE("/:id", handlers.Catalog.DeleteProduct)
	}

	// Customer routes
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
		customers.GET("/:id/vehicles", handlers.Customer.ListVehicles)
		customers.GET("/:id/loyalty-quote", handlers.Customer.QuoteLoyaltyRedemption)
	}

	vehicles := router.Group("/vehicles")
	{
		vehicles.POST("", handlers.Customer.CreateVehicle)
		vehicles.GET("/:id", handlers.Customer.GetVehicle)
	}

	// Coupon routes
	coupons := router.Group("/coupons")
	{
		coupons.POST("", handlers.Coupon.CreateCoupon)
		coupons.GET("", handlers.Coupon.ListCoupons)
		coupons.POST("/validate", handlers.Coupon.ValidateCoupon)
		coupons.GET("/:id", handlers.Coupon.GetCoupon)
		coupons.DELETE("/:id", handlers.Coupon.DeleteCoupon)
	}

	// Quote routes
	quotes := router.Group("/quotes")
	{
		quotes.POST("", handlers.Quote.CreateQuote)
		quotes.GET("", handlers.Quote.ListQuotes)
		quotes.GET("/:id", handlers.Quote.GetQuote)
		quotes.PUT("/:id", handlers.Quote.UpdateQuote)
		quotes.DELETE("/:id", handlers.Quote.DeleteQuote)
		quotes.POST("/:id/send", handlers.Quote.SendQuote)
		quotes.POST("/:id/convert", handlers.Quote.ConvertQuote)
	}

	// Ticket routes
	tickets := router.Group("/tickets")
	{
		tickets.POST("", handlers.Ticket.CreateTicket)
		tickets.GET("", handlers.Ticket.ListTickets)
		tickets.GET("/:id", handlers.Ticket.GetTicket)
		tickets.POST("/:id/complete", handlers.Ticket.CompleteTicket)
		tickets.POST("/:id/void", handlers.Ticket.VoidTicket)
	}

	// Checkout session routes
	sessions := router.Group("/checkout/sessions")
	{
		sessions.POST("", handlers.Checkout.CreateSession)
		sessions.GET("/:id", handlers.Checkout.GetSession)
		sessions.DELETE("/:id", handlers.Checkout.DeleteSession)
		sessions.POST("/:id/items", handlers.Checkout.AddItem)
		sessions.PUT("/:id/items/:itemId", handlers.Checkout.UpdateItem)
		sessions.DELETE("/:id/items/:itemId", handlers.Checkout.RemoveItem)
		sessions.POST("/:id/customer", handlers.Checkout.AssignCustomer)
		sessions.POST("/:id/vehicle", handlers.Checkout.AssignVehicle)
		sessions.POST("/:id/coupon", handlers.Checkout.ApplyCoupon)
		sessions.DELETE("/:id/coupon", handlers.Checkout.RemoveCoupon)
		sessions.POST("/:id/auto-coupons", handlers.Checkout.ApplyAutoCoupons)
		sessions.POST("/:id/loyalty", handlers.Checkout.RedeemLoyalty)
		sessions.DELETE("/:id/loyalty", handlers.Checkout.ClearLoyalty)
		sessions.POST("/:id/discount", handlers.Checkout.ApplyManualDiscount)
		sessions.DELETE("/:id/discount", handlers.Checkout.RemoveManualDiscount)
		sessions.PUT("/:id/notes", handlers.Checkout.SetNotes)
		sessions.PUT("/:id/valid-until", handlers.Checkout.SetValidUntil)
		sessions.POST("/:id/save-quote", handlers.Checkout.SaveQuote)
		sessions.POST("/:id/checkout", handlers.Checkout.Checkout)
	}
}
