package v1

import (
	"net/http"

	"github.com/detailpos/detailpos/internal/api/dto"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/service"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	pricingService service.PricingService
	logger         *logger.Logger
}

func NewCatalogHandler(catalogService service.CatalogService, pricingService service.PricingService, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		pricingService: pricingService,
		logger:         logger,
	}
}

// @Summary Create a new catalog service
// @Description Creates a new detailing service in the catalog
// @Tags Catalog
// @Accept json
// @Produce json
// @Param service body dto.CreateServiceRequest true "Service request"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.catalogService.CreateService(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a catalog service by ID
// @Description Retrieves a catalog service by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("service ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List catalog services
// @Description Lists all detailing services
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.ServiceResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	response, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a catalog service
// @Description Updates an existing catalog service
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param service body dto.UpdateServiceRequest true "Service update request"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /services/{id} [put]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("service ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.catalogService.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a catalog service
// @Description Deletes a catalog service
// @Tags Catalog
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("service ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Resolve a service price
// @Description Resolves a service's unit price against a vehicle size class
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.ResolvePriceRequest true "Resolution request"
// @Success 200 {object} dto.ResolvePriceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /services/resolve-price [post]
func (h *CatalogHandler) ResolvePrice(c *gin.Context) {
	var req dto.ResolvePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.pricingService.ResolvePrice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Create a new product
// @Description Creates a new retail product in the catalog
// @Tags Catalog
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product request"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a product by ID
// @Description Retrieves a retail product by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("product ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List products
// @Description Lists all retail products
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	response, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a product
// @Description Deletes a retail product
// @Tags Catalog
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("product ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
