package v1

import (
	"net/http"

	"github.com/detailpos/detailpos/internal/api/dto"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/service"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService service.CustomerService
	logger          *logger.Logger
}

func NewCustomerHandler(customerService service.CustomerService, logger *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// @Summary Create a new customer
// @Description Creates a new customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer request"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a customer by ID
// @Description Retrieves a customer by ID
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("customer ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List customers
// @Description Lists all customers
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	response, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a customer
// @Description Deletes a customer
// @Tags Customers
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("customer ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Register a vehicle
// @Description Registers a vehicle against a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param vehicle body dto.CreateVehicleRequest true "Vehicle request"
// @Success 201 {object} dto.VehicleResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /vehicles [post]
func (h *CustomerHandler) CreateVehicle(c *gin.Context) {
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.customerService.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a vehicle by ID
// @Description Retrieves a vehicle by ID
// @Tags Customers
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /vehicles/{id} [get]
func (h *CustomerHandler) GetVehicle(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("vehicle ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.customerService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List a customer's vehicles
// @Description Lists the vehicles registered to a customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {array} dto.VehicleResponse
// @Router /customers/{id}/vehicles [get]
func (h *CustomerHandler) ListVehicles(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("customer ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.customerService.ListVehicles(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Quote a loyalty redemption
// @Description Quotes the dollar value of redeeming the customer's full points balance
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.LoyaltyQuoteResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id}/loyalty-quote [get]
func (h *CustomerHandler) QuoteLoyaltyRedemption(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("customer ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.customerService.QuoteLoyaltyRedemption(c.Request.Context(), dto.LoyaltyQuoteRequest{
		CustomerID: id,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
