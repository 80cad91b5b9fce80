package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilterTickets returns the tickets whose event name or venue contains the
// query, case-insensitive. An empty query returns the full snapshot.
func FilterTickets(tickets []Ticket, query string) []Ticket {
	query = strings.ToLower(query)
	filtered := []Ticket{}
	for _, t := range tickets {
		if strings.Contains(strings.ToLower(t.EventName), query) ||
			strings.Contains(strings.ToLower(t.Venue), query) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// MyListings returns the tickets owned by the given user.
func MyListings(tickets []Ticket, userID string) []Ticket {
	mine := []Ticket{}
	for _, t := range tickets {
		if t.UserID == userID {
			mine = append(mine, t)
		}
	}
	return mine
}

// ReceivedOffers returns the offers where the given user is the seller.
func ReceivedOffers(offers []Offer, userID string) []Offer {
	received := []Offer{}
	for _, o := range offers {
		if o.SellerID == userID {
			received = append(received, o)
		}
	}
	return received
}

// SentOffers returns the offers where the given user is the buyer.
func SentOffers(offers []Offer, userID string) []Offer {
	sent := []Offer{}
	for _, o := range offers {
		if o.BuyerID == userID {
			sent = append(sent, o)
		}
	}
	return sent
}

var suggestionRatios = []string{"0.8", "0.85", "0.9"}

// SuggestedOffers returns quick-pick offer amounts at 80%, 85% and 90% of the
// listed price, rounded to whole currency units.
func SuggestedOffers(listedPrice float64) []int64 {
	price := decimal.NewFromFloat(listedPrice)
	suggestions := make([]int64, 0, len(suggestionRatios))
	for _, r := range suggestionRatios {
		ratio, _ := decimal.NewFromString(r)
		suggestions = append(suggestions, price.Mul(ratio).Round(0).IntPart())
	}
	return suggestions
}
