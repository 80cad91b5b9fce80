package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
)

// stubStore implements the store interfaces with function fields so each test
// wires only the calls it expects; an unexpected call hits a nil function and
// fails loudly.
type stubStore struct {
	getTicket          func(id string) (models.Ticket, error)
	createTicket       func(t models.Ticket) (models.Ticket, error)
	updateTicketStatus func(id, ticketStatus string) error
	getOffer           func(id string) (models.Offer, error)
	createOffer        func(o models.Offer) (models.Offer, error)
	deleteOffer        func(id string) error
	updateOfferStatus  func(id, offerStatus string) error
}

func (s *stubStore) GetTicket(_ context.Context, id string) (models.Ticket, error) {
	return s.getTicket(id)
}

func (s *stubStore) CreateTicket(_ context.Context, t models.Ticket) (models.Ticket, error) {
	return s.createTicket(t)
}

func (s *stubStore) UpdateTicketStatus(_ context.Context, id, ticketStatus string) error {
	return s.updateTicketStatus(id, ticketStatus)
}

func (s *stubStore) GetOffer(_ context.Context, id string) (models.Offer, error) {
	return s.getOffer(id)
}

func (s *stubStore) CreateOffer(_ context.Context, o models.Offer) (models.Offer, error) {
	return s.createOffer(o)
}

func (s *stubStore) DeleteOffer(_ context.Context, id string) error {
	return s.deleteOffer(id)
}

func (s *stubStore) UpdateOfferStatus(_ context.Context, id, offerStatus string) error {
	return s.updateOfferStatus(id, offerStatus)
}

// stubCache records invalidations and serves fixed snapshots.
type stubCache struct {
	tickets     []models.Ticket
	offers      map[string][]models.Offer
	invalidated []string
}

func (c *stubCache) Tickets(_ context.Context) ([]models.Ticket, error) {
	return c.tickets, nil
}

func (c *stubCache) OffersFor(_ context.Context, userID string) ([]models.Offer, error) {
	return c.offers[userID], nil
}

func (c *stubCache) Invalidate(_ context.Context, scope string) {
	c.invalidated = append(c.invalidated, scope)
}

func TestListingService_CreateListing_MissingFields(t *testing.T) {
	// A nil store proves validation rejects before any collaborator call
	service := &ListingService{store: nil, cache: nil}
	ctx := context.Background()

	inputs := []ListingInput{
		{EventDate: "2026-09-12", Venue: "Arena", Price: "100"},
		{EventName: "Concert X", Venue: "Arena", Price: "100"},
		{EventName: "Concert X", EventDate: "2026-09-12", Price: "100"},
		{EventName: "Concert X", EventDate: "2026-09-12", Venue: "Arena"},
	}

	for _, in := range inputs {
		_, err := service.CreateListing(ctx, "user-a", in)
		assert.ErrorIs(t, err, status.ErrMissingFields)
	}
}

func TestListingService_CreateListing_InvalidPrice(t *testing.T) {
	service := &ListingService{store: nil, cache: nil}
	ctx := context.Background()

	for _, price := range []string{"abc", "-10", "0", "10.5.5"} {
		_, err := service.CreateListing(ctx, "user-a", ListingInput{
			EventName: "Concert X",
			EventDate: "2026-09-12",
			Venue:     "Arena",
			Price:     price,
		})
		assert.ErrorIs(t, err, status.ErrInvalidPrice, "price %q", price)
	}
}

func TestListingService_CreateListing_Success(t *testing.T) {
	var saved models.Ticket
	store := &stubStore{
		createTicket: func(ticket models.Ticket) (models.Ticket, error) {
			saved = ticket
			ticket.ID = "t1"
			return ticket, nil
		},
	}
	cache := &stubCache{}
	service := &ListingService{store: store, cache: cache}

	created, err := service.CreateListing(context.Background(), "user-a", ListingInput{
		EventName:   "Concert X",
		EventDate:   "2026-09-12",
		Venue:       "Madison Square Garden",
		Section:     "101",
		RowNumber:   "Row A, Seat 15",
		SeatNumbers: "Row A, Seat 15",
		Price:       "100",
		Description: "Aisle seat",
	})

	require.NoError(t, err)
	assert.Equal(t, "t1", created.ID)
	assert.Equal(t, "user-a", saved.UserID)
	assert.Equal(t, models.TicketAvailable, saved.Status)
	assert.Equal(t, 1, saved.Quantity)
	assert.Equal(t, 100.0, saved.ListedPrice)
	assert.Equal(t, []string{ScopeTickets}, cache.invalidated)
}

func TestListingService_CreateListing_StoreFailure(t *testing.T) {
	store := &stubStore{
		createTicket: func(models.Ticket) (models.Ticket, error) {
			return models.Ticket{}, errors.New("backend down")
		},
	}
	cache := &stubCache{}
	service := &ListingService{store: store, cache: cache}

	_, err := service.CreateListing(context.Background(), "user-a", ListingInput{
		EventName: "Concert X",
		EventDate: "2026-09-12",
		Venue:     "Arena",
		Price:     "100",
	})

	assert.Error(t, err)
	assert.Empty(t, cache.invalidated, "failed create must not invalidate")
}

func TestListingService_Browse_FiltersSnapshot(t *testing.T) {
	cache := &stubCache{
		tickets: []models.Ticket{
			{ID: "t1", EventName: "Concert X", Venue: "Madison Square Garden"},
			{ID: "t2", EventName: "Opera Night", Venue: "Royal Hall"},
		},
	}
	service := &ListingService{cache: cache}

	tickets, err := service.Browse(context.Background(), "garden")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "t1", tickets[0].ID)

	empty, err := service.Browse(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListingService_MyListings(t *testing.T) {
	cache := &stubCache{
		tickets: []models.Ticket{
			{ID: "t1", UserID: "user-a"},
			{ID: "t2", UserID: "user-b"},
		},
	}
	service := &ListingService{cache: cache}

	mine, err := service.MyListings(context.Background(), "user-a")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "t1", mine[0].ID)
}

func TestListingService_Suggestions(t *testing.T) {
	store := &stubStore{
		getTicket: func(id string) (models.Ticket, error) {
			return models.Ticket{ID: id, ListedPrice: 100}, nil
		},
	}
	service := &ListingService{store: store}

	ticket, suggestions, err := service.Suggestions(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", ticket.ID)
	assert.Equal(t, []int64{80, 85, 90}, suggestions)
}

func TestListingService_Suggestions_NotFound(t *testing.T) {
	store := &stubStore{
		getTicket: func(string) (models.Ticket, error) {
			return models.Ticket{}, status.ErrTicketNotFound
		},
	}
	service := &ListingService{store: store}

	_, _, err := service.Suggestions(context.Background(), "missing")
	assert.ErrorIs(t, err, status.ErrTicketNotFound)
}
