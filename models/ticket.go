package models

import (
	"time"
)

const (
	TicketAvailable = "available"
	TicketPending   = "pending"
	TicketSold      = "sold"
)

type Ticket struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EventName   string    `json:"event_name"`
	EventDate   string    `json:"event_date"`
	Venue       string    `json:"venue"`
	Section     string    `json:"section,omitempty"`
	RowNumber   string    `json:"row_number,omitempty"`
	SeatNumbers string    `json:"seat_numbers,omitempty"`
	Quantity    int       `json:"quantity"`
	ListedPrice float64   `json:"listed_price"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"` // available, pending, sold
	CreatedAt   time.Time `json:"created_at"`
}
