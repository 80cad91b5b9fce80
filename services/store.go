package services

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
)

// Store wraps the PocketBase collections backing the marketplace. It is the
// only place that touches records directly; the workflow services speak in
// domain types.
type Store struct {
	app core.App
}

func NewStore(app core.App) *Store {
	return &Store{app: app}
}

func (st *Store) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	records := []*core.Record{}
	err := st.app.RecordQuery("tickets").
		OrderBy("created DESC").
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	tickets := make([]models.Ticket, len(records))
	for i, record := range records {
		tickets[i] = ticketFromRecord(record)
	}
	return tickets, nil
}

func (st *Store) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	record, err := st.app.FindRecordById("tickets", id)
	if err != nil {
		return models.Ticket{}, status.ErrTicketNotFound
	}
	return ticketFromRecord(record), nil
}

func (st *Store) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	collection, err := st.app.FindCollectionByNameOrId("tickets")
	if err != nil {
		return models.Ticket{}, fmt.Errorf("tickets collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("user", t.UserID)
	record.Set("event_name", t.EventName)
	record.Set("event_date", t.EventDate)
	record.Set("venue", t.Venue)
	record.Set("section", t.Section)
	record.Set("row_number", t.RowNumber)
	record.Set("seat_numbers", t.SeatNumbers)
	record.Set("quantity", t.Quantity)
	record.Set("listed_price", t.ListedPrice)
	record.Set("description", t.Description)
	record.Set("status", t.Status)

	if err := st.app.Save(record); err != nil {
		return models.Ticket{}, fmt.Errorf("save ticket: %w", err)
	}
	return ticketFromRecord(record), nil
}

func (st *Store) UpdateTicketStatus(ctx context.Context, id, ticketStatus string) error {
	record, err := st.app.FindRecordById("tickets", id)
	if err != nil {
		return status.ErrTicketNotFound
	}

	record.Set("status", ticketStatus)
	if err := st.app.Save(record); err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	return nil
}

func (st *Store) ListOffersFor(ctx context.Context, userID string) ([]models.Offer, error) {
	records := []*core.Record{}
	err := st.app.RecordQuery("offers").
		AndWhere(dbx.Or(
			dbx.HashExp{"buyer": userID},
			dbx.HashExp{"seller": userID},
		)).
		OrderBy("created DESC").
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	offers := make([]models.Offer, len(records))
	for i, record := range records {
		offers[i] = offerFromRecord(record)
	}
	return offers, nil
}

func (st *Store) GetOffer(ctx context.Context, id string) (models.Offer, error) {
	record, err := st.app.FindRecordById("offers", id)
	if err != nil {
		return models.Offer{}, status.ErrOfferNotFound
	}
	return offerFromRecord(record), nil
}

func (st *Store) CreateOffer(ctx context.Context, o models.Offer) (models.Offer, error) {
	collection, err := st.app.FindCollectionByNameOrId("offers")
	if err != nil {
		return models.Offer{}, fmt.Errorf("offers collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("ticket", o.TicketID)
	record.Set("buyer", o.BuyerID)
	record.Set("seller", o.SellerID)
	record.Set("amount", o.Amount)
	record.Set("message", o.Message)
	record.Set("reference", o.Reference)
	record.Set("status", o.Status)

	if err := st.app.Save(record); err != nil {
		return models.Offer{}, fmt.Errorf("save offer: %w", err)
	}
	return offerFromRecord(record), nil
}

func (st *Store) DeleteOffer(ctx context.Context, id string) error {
	record, err := st.app.FindRecordById("offers", id)
	if err != nil {
		return status.ErrOfferNotFound
	}

	if err := st.app.Delete(record); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return nil
}

func (st *Store) UpdateOfferStatus(ctx context.Context, id, offerStatus string) error {
	record, err := st.app.FindRecordById("offers", id)
	if err != nil {
		return status.ErrOfferNotFound
	}

	record.Set("status", offerStatus)
	if err := st.app.Save(record); err != nil {
		return fmt.Errorf("update offer status: %w", err)
	}
	return nil
}

func ticketFromRecord(record *core.Record) models.Ticket {
	return models.Ticket{
		ID:          record.Id,
		UserID:      record.GetString("user"),
		EventName:   record.GetString("event_name"),
		EventDate:   record.GetDateTime("event_date").Time().Format("2006-01-02"),
		Venue:       record.GetString("venue"),
		Section:     record.GetString("section"),
		RowNumber:   record.GetString("row_number"),
		SeatNumbers: record.GetString("seat_numbers"),
		Quantity:    record.GetInt("quantity"),
		ListedPrice: record.GetFloat("listed_price"),
		Description: record.GetString("description"),
		Status:      record.GetString("status"),
		CreatedAt:   record.GetDateTime("created").Time(),
	}
}

func offerFromRecord(record *core.Record) models.Offer {
	return models.Offer{
		ID:        record.Id,
		TicketID:  record.GetString("ticket"),
		BuyerID:   record.GetString("buyer"),
		SellerID:  record.GetString("seller"),
		Amount:    record.GetFloat("amount"),
		Message:   record.GetString("message"),
		Reference: record.GetString("reference"),
		Status:    record.GetString("status"),
		CreatedAt: record.GetDateTime("created").Time(),
	}
}
