package v1

import (
	"net/http"

	"github.com/detailpos/detailpos/internal/api/dto"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/service"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService service.QuoteService
	logger       *logger.Logger
}

func NewQuoteHandler(quoteService service.QuoteService, logger *logger.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// @Summary Create a new quote
// @Description Persists a new draft quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Quote request"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.quoteService.CreateQuote(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a quote by ID
// @Description Retrieves a quote by ID
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("quote ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List quotes
// @Description Lists quotes, optionally filtered by customer
// @Tags Quotes
// @Produce json
// @Param customer_id query string false "Customer ID"
// @Success 200 {array} dto.QuoteResponse
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	response, err := h.quoteService.ListQuotes(c.Request.Context(), c.Query("customer_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a draft quote
// @Description Replaces a draft quote's contents
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param quote body dto.UpdateQuoteRequest true "Quote update request"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /quotes/{id} [put]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("quote ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.quoteService.UpdateQuote(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a quote
// @Description Deletes a quote that has not been converted
// @Tags Quotes
// @Param id path string true "Quote ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("quote ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Send a quote
// @Description Marks a draft quote as sent
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /quotes/{id}/send [post]
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("quote ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.quoteService.SendQuote(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Convert a quote to a ticket
// @Description Creates an open ticket from the quote and marks it converted
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 201 {object} dto.TicketResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /quotes/{id}/convert [post]
func (h *QuoteHandler) ConvertQuote(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("quote ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.quoteService.ConvertQuote(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
