package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-marketplace/services"
)

type OfferHandler struct {
	app    *pocketbase.PocketBase
	offers *services.OfferService
}

func NewOfferHandler(app *pocketbase.PocketBase, offers *services.OfferService) *OfferHandler {
	return &OfferHandler{
		app:    app,
		offers: offers,
	}
}

// CreateOffer - Bid on a listing
func (h *OfferHandler) CreateOffer(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		TicketID string `json:"ticket_id"`
		Amount   string `json:"amount"`
		Message  string `json:"message"`
	}

	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.TicketID == "" {
		return apis.NewBadRequestError("Missing ticket id", nil)
	}

	offer, err := h.offers.CreateOffer(e.Request.Context(), e.Auth.Id, services.OfferInput{
		TicketID:       req.TicketID,
		Amount:         req.Amount,
		Message:        req.Message,
		IdempotencyKey: e.Request.Header.Get("X-Idempotency-Key"),
	})
	if err != nil {
		return workflowError(err)
	}

	return e.JSON(http.StatusCreated, offer)
}

// Approve - Seller accepts a pending offer
func (h *OfferHandler) Approve(e *core.RequestEvent) error {
	return h.resolve(e, true)
}

// Deny - Seller rejects a pending offer
func (h *OfferHandler) Deny(e *core.RequestEvent) error {
	return h.resolve(e, false)
}

func (h *OfferHandler) resolve(e *core.RequestEvent, approve bool) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	offerID := e.Request.PathValue("offerId")
	if offerID == "" {
		return apis.NewBadRequestError("Missing offer id", nil)
	}

	offer, err := h.offers.Resolve(e.Request.Context(), e.Auth.Id, offerID, approve)
	if err != nil {
		return workflowError(err)
	}

	return e.JSON(http.StatusOK, offer)
}

// Received - Offers against the authenticated user's listings
func (h *OfferHandler) Received(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	offers, err := h.offers.Received(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return workflowError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"offers": offers,
		"total":  len(offers),
	})
}

// Sent - Offers the authenticated user has made
func (h *OfferHandler) Sent(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	offers, err := h.offers.Sent(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return workflowError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"offers": offers,
		"total":  len(offers),
	})
}
