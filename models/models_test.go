package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicket_JSONSerialization(t *testing.T) {
	created := time.Now()

	ticket := Ticket{
		ID:          "ticket-123",
		UserID:      "user-abc",
		EventName:   "Concert X",
		EventDate:   "2026-09-12",
		Venue:       "Madison Square Garden",
		Section:     "101",
		RowNumber:   "Row A, Seat 15",
		SeatNumbers: "Row A, Seat 15",
		Quantity:    1,
		ListedPrice: 100.0,
		Description: "Aisle seat",
		Status:      TicketAvailable,
		CreatedAt:   created,
	}

	jsonData, err := json.Marshal(ticket)
	require.NoError(t, err)

	var unmarshaled Ticket
	err = json.Unmarshal(jsonData, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, ticket.ID, unmarshaled.ID)
	assert.Equal(t, ticket.UserID, unmarshaled.UserID)
	assert.Equal(t, ticket.EventName, unmarshaled.EventName)
	assert.Equal(t, ticket.Venue, unmarshaled.Venue)
	assert.Equal(t, ticket.Quantity, unmarshaled.Quantity)
	assert.Equal(t, ticket.ListedPrice, unmarshaled.ListedPrice)
	assert.Equal(t, ticket.Status, unmarshaled.Status)
	assert.WithinDuration(t, ticket.CreatedAt, unmarshaled.CreatedAt, time.Second)
}

func TestOffer_JSONSerialization(t *testing.T) {
	offer := Offer{
		ID:        "offer-456",
		TicketID:  "ticket-123",
		BuyerID:   "user-buyer",
		SellerID:  "user-seller",
		Amount:    80.0,
		Message:   "interested",
		Reference: "A1B2C3D4",
		Status:    OfferPending,
		CreatedAt: time.Now(),
	}

	jsonData, err := json.Marshal(offer)
	require.NoError(t, err)

	var unmarshaled Offer
	err = json.Unmarshal(jsonData, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, offer.ID, unmarshaled.ID)
	assert.Equal(t, offer.TicketID, unmarshaled.TicketID)
	assert.Equal(t, offer.BuyerID, unmarshaled.BuyerID)
	assert.Equal(t, offer.SellerID, unmarshaled.SellerID)
	assert.Equal(t, offer.Amount, unmarshaled.Amount)
	assert.Equal(t, offer.Status, unmarshaled.Status)
}

func TestOffer_Resolved(t *testing.T) {
	assert.False(t, Offer{Status: OfferPending}.Resolved())
	assert.True(t, Offer{Status: OfferApproved}.Resolved())
	assert.True(t, Offer{Status: OfferDenied}.Resolved())
}

func TestFilterTickets_MatchesEventNameAndVenue(t *testing.T) {
	tickets := []Ticket{
		{ID: "t1", EventName: "Concert X", Venue: "Madison Square Garden"},
		{ID: "t2", EventName: "Garden Party", Venue: "Small Club"},
		{ID: "t3", EventName: "Opera Night", Venue: "Royal Hall"},
	}

	filtered := FilterTickets(tickets, "garden")
	require.Len(t, filtered, 2)
	assert.Equal(t, "t1", filtered[0].ID)
	assert.Equal(t, "t2", filtered[1].ID)

	assert.Empty(t, FilterTickets(tickets, "zzz"))
	assert.Len(t, FilterTickets(tickets, ""), 3)
}

func TestFilterTickets_CaseInsensitive(t *testing.T) {
	tickets := []Ticket{
		{ID: "t1", EventName: "Taylor Swift - Eras Tour", Venue: "SoFi Stadium"},
	}

	assert.Len(t, FilterTickets(tickets, "TAYLOR"), 1)
	assert.Len(t, FilterTickets(tickets, "sofi"), 1)
}

func TestMyListings(t *testing.T) {
	tickets := []Ticket{
		{ID: "t1", UserID: "user-a"},
		{ID: "t2", UserID: "user-b"},
		{ID: "t3", UserID: "user-a"},
	}

	mine := MyListings(tickets, "user-a")
	require.Len(t, mine, 2)
	assert.Equal(t, "t1", mine[0].ID)
	assert.Equal(t, "t3", mine[1].ID)

	assert.Empty(t, MyListings(tickets, "user-c"))
}

func TestReceivedAndSentOffers(t *testing.T) {
	offers := []Offer{
		{ID: "o1", BuyerID: "user-b", SellerID: "user-a"},
		{ID: "o2", BuyerID: "user-a", SellerID: "user-c"},
		{ID: "o3", BuyerID: "user-b", SellerID: "user-c"},
	}

	received := ReceivedOffers(offers, "user-a")
	require.Len(t, received, 1)
	assert.Equal(t, "o1", received[0].ID)

	sent := SentOffers(offers, "user-a")
	require.Len(t, sent, 1)
	assert.Equal(t, "o2", sent[0].ID)
}

// Derived views must be stable for a fixed snapshot.
func TestDerivedViews_Idempotent(t *testing.T) {
	tickets := []Ticket{
		{ID: "t1", UserID: "user-a", EventName: "Concert X", Venue: "Arena"},
		{ID: "t2", UserID: "user-b", EventName: "Opera", Venue: "Hall"},
	}
	offers := []Offer{
		{ID: "o1", BuyerID: "user-b", SellerID: "user-a"},
		{ID: "o2", BuyerID: "user-a", SellerID: "user-b"},
	}

	assert.Equal(t, MyListings(tickets, "user-a"), MyListings(tickets, "user-a"))
	assert.Equal(t, FilterTickets(tickets, "concert"), FilterTickets(tickets, "concert"))
	assert.Equal(t, ReceivedOffers(offers, "user-a"), ReceivedOffers(offers, "user-a"))
	assert.Equal(t, SentOffers(offers, "user-a"), SentOffers(offers, "user-a"))
}

func TestSuggestedOffers(t *testing.T) {
	assert.Equal(t, []int64{80, 85, 90}, SuggestedOffers(100))
	assert.Equal(t, []int64{100, 107, 113}, SuggestedOffers(125.50))
	assert.Equal(t, []int64{0, 0, 0}, SuggestedOffers(0))
}
