package v1

import (
	"net/http"

	"github.com/detailpos/detailpos/internal/api/dto"
	"github.com/detailpos/detailpos/internal/domain/checkout"
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/detailpos/detailpos/internal/logger"
	"github.com/detailpos/detailpos/internal/service"
	"github.com/detailpos/detailpos/internal/types"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	quoteService    service.QuoteService
	ticketService   service.TicketService
	registry        *service.SessionRegistry
	logger          *logger.Logger
}

func NewCheckoutHandler(
	checkoutService service.CheckoutService,
	quoteService service.QuoteService,
	ticketService service.TicketService,
	registry *service.SessionRegistry,
	logger *logger.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		quoteService:    quoteService,
		ticketService:   ticketService,
		registry:        registry,
		logger:          logger,
	}
}

// withSession resolves the path id and runs fn while holding the session's
// registry lock, so concurrent requests on one session serialize across the
// whole dispatch-and-render section. Errors fn returns go to the error
// middleware.
func (h *CheckoutHandler) withSession(c *gin.Context, fn func(id string, session *checkout.Session) error) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("session ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	err := h.registry.WithSession(id, func(session *checkout.Session) error {
		return fn(id, session)
	})
	if err != nil {
		c.Error(err)
	}
}

func (h *CheckoutHandler) render(c *gin.Context, id string, session *checkout.Session) {
	response := h.checkoutService.Render(c.Request.Context(), session)
	c.JSON(http.StatusOK, &dto.CheckoutSessionResponse{
		SessionID:       id,
		SessionResponse: response,
	})
}

// @Summary Open a checkout session
// @Description Opens an in-memory checkout session, empty or hydrated from a saved quote
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Session request"
// @Success 201 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions [post]
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	var session *checkout.Session
	if req.QuoteID != "" {
		hydrated, err := h.quoteService.HydrateSession(c.Request.Context(), req.QuoteID)
		if err != nil {
			c.Error(err)
			return
		}
		session = hydrated
	} else {
		session = h.checkoutService.NewSession(c.Request.Context(), types.SessionKind(req.Kind))
	}
	id := h.registry.Put(session)

	response := h.checkoutService.Render(c.Request.Context(), session)
	c.JSON(http.StatusCreated, &dto.CheckoutSessionResponse{
		SessionID:       id,
		SessionResponse: response,
	})
}

// @Summary Get a checkout session
// @Description Returns the session with freshly derived totals
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id} [get]
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	h.withSession(c, func(id string, session *checkout.Session) error {
		h.render(c, id, session)
		return nil
	})
}

// @Summary Discard a checkout session
// @Description Drops the in-memory session without persisting anything
// @Tags Checkout
// @Param id path string true "Session ID"
// @Success 204
// @Router /checkout/sessions/{id} [delete]
func (h *CheckoutHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("session ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	h.registry.Delete(id)
	c.Status(http.StatusNoContent)
}

// @Summary Add a line item
// @Description Adds a catalog service, product, or custom charge to the session
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AddSessionItemRequest true "Item request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/items [post]
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	var req dto.AddSessionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		ctx := c.Request.Context()
		var err error
		switch types.LineItemType(req.Type) {
		case types.LineItemTypeService:
			err = h.checkoutService.AddCatalogService(ctx, session, req.ID, req.Quantity)
		case types.LineItemTypeProduct:
			err = h.checkoutService.AddProduct(ctx, session, req.ID, req.Quantity)
		case types.LineItemTypeCustom:
			err = h.checkoutService.AddCustomItem(ctx, session, req.Name, req.UnitPrice, req.Quantity, req.Taxable)
		}
		if err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Update a line item
// @Description Sets the quantity or note of a line; quantity zero removes it
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param itemId path string true "Line item ID"
// @Param request body dto.UpdateSessionItemRequest true "Update request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/items/{itemId} [put]
func (h *CheckoutHandler) UpdateItem(c *gin.Context) {
	itemID := c.Param("itemId")
	if itemID == "" {
		c.Error(ierr.NewError("item ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateSessionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		ctx := c.Request.Context()
		if req.Note != nil {
			err := h.checkoutService.Dispatch(ctx, session, checkout.Action{
				Type:   checkout.ActionUpdateItemNote,
				ItemID: itemID,
				Note:   *req.Note,
			})
			if err != nil {
				return err
			}
		}
		if req.Quantity != nil {
			err := h.checkoutService.Dispatch(ctx, session, checkout.Action{
				Type:     checkout.ActionUpdateItemQuantity,
				ItemID:   itemID,
				Quantity: *req.Quantity,
			})
			if err != nil {
				return err
			}
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Remove a line item
// @Description Removes a line from the session
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Param itemId path string true "Line item ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/items/{itemId} [delete]
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	itemID := c.Param("itemId")
	if itemID == "" {
		c.Error(ierr.NewError("item ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		err := h.checkoutService.Dispatch(c.Request.Context(), session, checkout.Action{
			Type:   checkout.ActionRemoveItem,
			ItemID: itemID,
		})
		if err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Assign a customer
// @Description Attaches a customer to the session; an empty ID clears it
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AssignCustomerRequest true "Customer request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/customer [post]
func (h *CheckoutHandler) AssignCustomer(c *gin.Context) {
	var req dto.AssignCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		if err := h.checkoutService.AssignCustomer(c.Request.Context(), session, req.CustomerID); err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Assign a vehicle
// @Description Attaches a vehicle and re-prices service lines for its size
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AssignVehicleRequest true "Vehicle request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/vehicle [post]
func (h *CheckoutHandler) AssignVehicle(c *gin.Context) {
	var req dto.AssignVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		if err := h.checkoutService.AssignVehicle(c.Request.Context(), session, req.VehicleID); err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Apply a coupon code
// @Description Validates a typed code and attaches the resolved discount
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ApplySessionCouponRequest true "Coupon request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/coupon [post]
func (h *CheckoutHandler) ApplyCoupon(c *gin.Context) {
	var req dto.ApplySessionCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		if err := h.checkoutService.ApplyCouponCode(c.Request.Context(), session, req.Code); err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Remove the coupon
// @Description Detaches the current coupon from the session
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/coupon [delete]
func (h *CheckoutHandler) RemoveCoupon(c *gin.Context) {
	h.withSession(c, func(id string, session *checkout.Session) error {
		if err := h.checkoutService.RemoveCoupon(c.Request.Context(), session); err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Redeem loyalty points
// @Description Attaches the customer's full points balance as a discount
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/loyalty [post]
func (h *CheckoutHandler) RedeemLoyalty(c *gin.Context) {
	h.withSession(c, func(id string, session *checkout.Session) error {
		if err := h.checkoutService.RedeemLoyalty(c.Request.Context(), session); err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Clear loyalty redemption
// @Description Drops the pending loyalty redemption
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/loyalty [delete]
func (h *CheckoutHandler) ClearLoyalty(c *gin.Context) {
	h.withSession(c, func(id string, session *checkout.Session) error {
		if err := h.checkoutService.ClearLoyalty(c.Request.Context(), session); err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Apply a manual discount
// @Description Applies a staff-entered dollar or percent discount
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ManualDiscountRequest true "Discount request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/discount [post]
func (h *CheckoutHandler) ApplyManualDiscount(c *gin.Context) {
	var req dto.ManualDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		err := h.checkoutService.Dispatch(c.Request.Context(), session, checkout.Action{
			Type:          checkout.ActionApplyManualDiscount,
			DiscountType:  types.ManualDiscountType(req.Type),
			DiscountValue: req.Value,
			DiscountLabel: req.Label,
		})
		if err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Remove the manual discount
// @Description Drops the staff-entered discount
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/discount [delete]
func (h *CheckoutHandler) RemoveManualDiscount(c *gin.Context) {
	h.withSession(c, func(id string, session *checkout.Session) error {
		err := h.checkoutService.Dispatch(c.Request.Context(), session, checkout.Action{
			Type: checkout.ActionRemoveManualDiscount,
		})
		if err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Set session notes
// @Description Sets the session's free-form notes
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SessionNotesRequest true "Notes request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/notes [put]
func (h *CheckoutHandler) SetNotes(c *gin.Context) {
	var req dto.SessionNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		err := h.checkoutService.Dispatch(c.Request.Context(), session, checkout.Action{
			Type:  checkout.ActionSetNotes,
			Notes: req.Notes,
		})
		if err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Set the quote expiry date
// @Description Sets or clears valid-until; only quote sessions carry one
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SessionValidUntilRequest true "Expiry request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/valid-until [put]
func (h *CheckoutHandler) SetValidUntil(c *gin.Context) {
	var req dto.SessionValidUntilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	h.withSession(c, func(id string, session *checkout.Session) error {
		err := h.checkoutService.Dispatch(c.Request.Context(), session, checkout.Action{
			Type:       checkout.ActionSetValidUntil,
			ValidUntil: req.ValidUntil,
		})
		if err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Apply auto-apply coupons
// @Description Attaches the best qualifying campaign coupon, if any
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/auto-coupons [post]
func (h *CheckoutHandler) ApplyAutoCoupons(c *gin.Context) {
	h.withSession(c, func(id string, session *checkout.Session) error {
		if err := h.checkoutService.ApplyAutoCoupons(c.Request.Context(), session); err != nil {
			return err
		}
		h.render(c, id, session)
		return nil
	})
}

// @Summary Save a session as a quote
// @Description Persists a quote session as a draft quote, or back to its source quote when hydrated, and discards the session
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuoteResponse
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/save-quote [post]
func (h *CheckoutHandler) SaveQuote(c *gin.Context) {
	h.withSession(c, func(id string, session *checkout.Session) error {
		if session.Kind != types.SessionKindQuote {
			return ierr.NewError("session is not a quote").
				WithHint("Only quote sessions can be saved as quotes").
				Mark(ierr.ErrInvalidOperation)
		}

		req := dto.NewQuoteRequestFromSession(session)

		// hydrated sessions write back to their source quote
		if session.PersistedID != "" {
			response, err := h.quoteService.UpdateQuote(c.Request.Context(), session.PersistedID, dto.UpdateQuoteRequest{
				CustomerID: req.CustomerID,
				VehicleID:  req.VehicleID,
				Notes:      req.Notes,
				ValidUntil: req.ValidUntil,
				Items:      req.Items,
			})
			if err != nil {
				return err
			}
			h.registry.Delete(id)
			c.JSON(http.StatusOK, response)
			return nil
		}

		response, err := h.quoteService.CreateQuote(c.Request.Context(), req)
		if err != nil {
			return err
		}

		h.registry.Delete(id)
		c.JSON(http.StatusCreated, response)
		return nil
	})
}

// @Summary Check out a session as a ticket
// @Description Persists a ticket session, with its settled discount stack, as an open ticket and discards the session
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} dto.TicketResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /checkout/sessions/{id}/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	h.withSession(c, func(id string, session *checkout.Session) error {
		if session.Kind != types.SessionKindTicket {
			return ierr.NewError("session is not a ticket").
				WithHint("Only ticket sessions can be checked out").
				Mark(ierr.ErrInvalidOperation)
		}

		req := dto.NewTicketRequestFromSession(session)
		response, err := h.ticketService.CreateTicket(c.Request.Context(), req)
		if err != nil {
			return err
		}

		h.registry.Delete(id)
		c.JSON(http.StatusCreated, response)
		return nil
	})
}
