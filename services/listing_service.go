package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
	"ticket-marketplace/monitoring"
)

type listingStore interface {
	CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)
	GetTicket(ctx context.Context, id string) (models.Ticket, error)
}

type listingSnapshots interface {
	Tickets(ctx context.Context) ([]models.Ticket, error)
	Invalidate(ctx context.Context, scope string)
}

// ListingInput carries the raw form values for a new listing. Price arrives
// as the submitted string so validation owns the parse.
type ListingInput struct {
	EventName   string
	EventDate   string
	Venue       string
	Section     string
	RowNumber   string
	SeatNumbers string
	Price       string
	Description string
}

type ListingService struct {
	store listingStore
	cache listingSnapshots
}

func NewListingService(store *Store, cache *SnapshotCache) *ListingService {
	return &ListingService{
		store: store,
		cache: cache,
	}
}

// CreateListing validates the form input and creates the ticket record with
// status "available". Validation failures return before any collaborator
// call.
func (s *ListingService) CreateListing(ctx context.Context, actorID string, in ListingInput) (models.Ticket, error) {
	start := time.Now()

	if in.EventName == "" || in.EventDate == "" || in.Venue == "" || in.Price == "" {
		return models.Ticket{}, status.ErrMissingFields
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || !price.IsPositive() {
		return models.Ticket{}, status.ErrInvalidPrice
	}

	ticket := models.Ticket{
		UserID:      actorID,
		EventName:   strings.TrimSpace(in.EventName),
		EventDate:   in.EventDate,
		Venue:       strings.TrimSpace(in.Venue),
		Section:     strings.TrimSpace(in.Section),
		RowNumber:   strings.TrimSpace(in.RowNumber),
		SeatNumbers: strings.TrimSpace(in.SeatNumbers),
		Quantity:    1,
		ListedPrice: price.InexactFloat64(),
		Description: strings.TrimSpace(in.Description),
		Status:      models.TicketAvailable,
	}

	created, err := s.store.CreateTicket(ctx, ticket)
	if err != nil {
		monitoring.TrackMutation("create_listing", "error")
		slog.Error("Failed to create listing", "user_id", actorID, "error", err)
		return models.Ticket{}, fmt.Errorf("create listing: %w", err)
	}

	monitoring.TrackMutation("create_listing", "ok")
	monitoring.ObserveMutation("create_listing", start)
	s.cache.Invalidate(ctx, ScopeTickets)

	slog.Info("Listing created", "ticket_id", created.ID, "user_id", actorID)
	return created, nil
}

// Browse returns the snapshot filtered by the search query.
func (s *ListingService) Browse(ctx context.Context, query string) ([]models.Ticket, error) {
	tickets, err := s.cache.Tickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("browse tickets: %w", err)
	}
	return models.FilterTickets(tickets, query), nil
}

// MyListings returns the actor's own tickets from the snapshot.
func (s *ListingService) MyListings(ctx context.Context, actorID string) ([]models.Ticket, error) {
	tickets, err := s.cache.Tickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("my listings: %w", err)
	}
	return models.MyListings(tickets, actorID), nil
}

// Suggestions returns the ticket together with its quick-pick offer amounts.
func (s *ListingService) Suggestions(ctx context.Context, ticketID string) (models.Ticket, []int64, error) {
	ticket, err := s.store.GetTicket(ctx, ticketID)
	if err != nil {
		return models.Ticket{}, nil, err
	}
	return ticket, models.SuggestedOffers(ticket.ListedPrice), nil
}
