package services

import (
	"fmt"
	"log/slog"
	"time"

	pubnub "github.com/pubnub/go"

	"ticket-marketplace/models"
	"ticket-marketplace/utils"
)

// Notifier pushes marketplace events to per-user PubNub channels so open
// sessions refresh without polling. Delivery is best effort; a failure never
// fails the mutation that triggered it.
type Notifier struct {
	pubnub  *pubnub.PubNub
	breaker *utils.CircuitBreaker
}

func NewNotifier(pn *pubnub.PubNub) *Notifier {
	return &Notifier{
		pubnub:  pn,
		breaker: utils.NewCircuitBreaker("pubnub", 5, time.Minute),
	}
}

func (n *Notifier) OfferReceived(offer models.Offer, ticket models.Ticket) {
	n.publish(userChannel(offer.SellerID), map[string]interface{}{
		"type":       "offer_received",
		"offer_id":   offer.ID,
		"reference":  offer.Reference,
		"ticket_id":  ticket.ID,
		"event_name": ticket.EventName,
		"amount":     offer.Amount,
	})
}

func (n *Notifier) OfferResolved(offer models.Offer, ticket models.Ticket) {
	n.publish(userChannel(offer.BuyerID), map[string]interface{}{
		"type":       "offer_" + offer.Status,
		"offer_id":   offer.ID,
		"reference":  offer.Reference,
		"ticket_id":  ticket.ID,
		"event_name": ticket.EventName,
		"amount":     offer.Amount,
	})
}

func (n *Notifier) publish(channel string, message map[string]interface{}) {
	if n == nil || n.pubnub == nil {
		return
	}

	err := n.breaker.Execute(func() error {
		_, _, err := n.pubnub.Publish().
			Channel(channel).
			Message(message).
			Execute()
		return err
	})
	if err != nil {
		slog.Error("Failed to publish notification", "channel", channel, "error", err)
	}
}

func userChannel(userID string) string {
	return fmt.Sprintf("user-%s", userID)
}
