package models

import (
	"time"
)

const (
	OfferPending  = "pending"
	OfferApproved = "approved"
	OfferDenied   = "denied"
)

type Offer struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	BuyerID   string    `json:"buyer_id"`
	SellerID  string    `json:"seller_id"`
	Amount    float64   `json:"amount"`
	Message   string    `json:"message,omitempty"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"` // pending, approved, denied
	CreatedAt time.Time `json:"created_at"`
}

// Resolved reports whether the offer reached a terminal status.
func (o Offer) Resolved() bool {
	return o.Status == OfferApproved || o.Status == OfferDenied
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}
