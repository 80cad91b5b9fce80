package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-marketplace/services"
)

type TicketHandler struct {
	app      *pocketbase.PocketBase
	listings *services.ListingService
}

func NewTicketHandler(app *pocketbase.PocketBase, listings *services.ListingService) *TicketHandler {
	return &TicketHandler{
		app:      app,
		listings: listings,
	}
}

// CreateListing - List a ticket for sale
func (h *TicketHandler) CreateListing(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		EventName   string `json:"event_name"`
		EventDate   string `json:"event_date"`
		Venue       string `json:"venue"`
		Section     string `json:"section"`
		RowNumber   string `json:"row_number"`
		SeatNumbers string `json:"seat_numbers"`
		Price       string `json:"price"`
		Description string `json:"description"`
	}

	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticket, err := h.listings.CreateListing(e.Request.Context(), e.Auth.Id, services.ListingInput{
		EventName:   req.EventName,
		EventDate:   req.EventDate,
		Venue:       req.Venue,
		Section:     req.Section,
		RowNumber:   req.RowNumber,
		SeatNumbers: req.SeatNumbers,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return workflowError(err)
	}

	return e.JSON(http.StatusCreated, ticket)
}

// Browse - Browse listings, optionally filtered by search text
func (h *TicketHandler) Browse(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	query := e.Request.URL.Query().Get("search")

	tickets, err := h.listings.Browse(e.Request.Context(), query)
	if err != nil {
		return workflowError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

// MyListings - The authenticated user's own listings
func (h *TicketHandler) MyListings(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	tickets, err := h.listings.MyListings(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return workflowError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

// Suggestions - Quick-pick offer amounts for a listing
func (h *TicketHandler) Suggestions(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	ticketID := e.Request.PathValue("ticketId")
	if ticketID == "" {
		return apis.NewBadRequestError("Missing ticket id", nil)
	}

	ticket, suggestions, err := h.listings.Suggestions(e.Request.Context(), ticketID)
	if err != nil {
		return workflowError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"ticket_id":    ticket.ID,
		"listed_price": ticket.ListedPrice,
		"suggestions":  suggestions,
	})
}
