package v1

import (
	"net/http"

	"github.com/detailpos/detailpos/internal/api/dto"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/service"
	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	couponService     service.CouponService
	validationService service.CouponValidationService
	logger            *logger.Logger
}

func NewCouponHandler(couponService service.CouponService, validationService service.CouponValidationService, logger *logger.Logger) *CouponHandler {
	return &CouponHandler{
		couponService:     couponService,
		validationService: validationService,
		logger:            logger,
	}
}

// @Summary Create a new coupon
// @Description Creates a new coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Param coupon body dto.CreateCouponRequest true "Coupon request"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.couponService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a coupon by ID
// @Description Retrieves a coupon by ID
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/{id} [get]
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("coupon ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.couponService.GetCoupon(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List coupons
// @Description Lists all coupons
// @Tags Coupons
// @Produce json
// @Success 200 {array} dto.CouponResponse
// @Router /coupons [get]
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	response, err := h.couponService.ListCoupons(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a coupon
// @Description Deletes a coupon
// @Tags Coupons
// @Param id path string true "Coupon ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/{id} [delete]
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("coupon ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Validate a coupon code
// @Description Resolves a coupon code to a dollar discount against a subtotal
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body dto.ValidateCouponRequest true "Validation request"
// @Success 200 {object} dto.ValidateCouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/validate [post]
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.validationService.ValidateCoupon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
