package v1

import (
	"net/http"

	"github.com/detailpos/detailpos/internal/api/dto"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/service"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService service.TicketService
	logger        *logger.Logger
}

func NewTicketHandler(ticketService service.TicketService, logger *logger.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		logger:        logger,
	}
}

// @Summary Create a new ticket
// @Description Persists a new open ticket with its settled discount stack
// @Tags Tickets
// @Accept json
// @Produce json
// @Param ticket body dto.CreateTicketRequest true "Ticket request"
// @Success 201 {object} dto.TicketResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.ticketService.CreateTicket(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a ticket by ID
// @Description Retrieves a ticket by ID
// @Tags Tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("ticket ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List tickets
// @Description Lists tickets, optionally filtered by customer
// @Tags Tickets
// @Produce json
// @Param customer_id query string false "Customer ID"
// @Success 200 {array} dto.TicketResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	response, err := h.ticketService.ListTickets(c.Request.Context(), c.Query("customer_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Complete a ticket
// @Description Checks an open ticket out and settles coupons and loyalty points
// @Tags Tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /tickets/{id}/complete [post]
func (h *TicketHandler) CompleteTicket(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("ticket ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.ticketService.CompleteTicket(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Void a ticket
// @Description Voids an open ticket without settling anything
// @Tags Tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /tickets/{id}/void [post]
func (h *TicketHandler) VoidTicket(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("ticket ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.ticketService.VoidTicket(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
