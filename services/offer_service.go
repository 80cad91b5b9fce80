package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"ticket-marketplace/config"
	"ticket-marketplace/internal/status"
	"ticket-marketplace/models"
	"ticket-marketplace/monitoring"
	"ticket-marketplace/utils"
)

type offerStore interface {
	GetTicket(ctx context.Context, id string) (models.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id, ticketStatus string) error
	GetOffer(ctx context.Context, id string) (models.Offer, error)
	CreateOffer(ctx context.Context, o models.Offer) (models.Offer, error)
	DeleteOffer(ctx context.Context, id string) error
	UpdateOfferStatus(ctx context.Context, id, offerStatus string) error
}

type offerSnapshots interface {
	OffersFor(ctx context.Context, userID string) ([]models.Offer, error)
	Invalidate(ctx context.Context, scope string)
}

// OfferInput carries the raw form values for a new offer.
type OfferInput struct {
	TicketID       string
	Amount         string
	Message        string
	IdempotencyKey string
}

type OfferService struct {
	store  offerStore
	Redis  *redis.Client
	cache  offerSnapshots
	notify *Notifier

	idempotencyTTL time.Duration
	lockTTL        time.Duration
}

func NewOfferService(store *Store, redisClient *redis.Client, cache *SnapshotCache, notifier *Notifier, cfg *config.Config) *OfferService {
	return &OfferService{
		store:          store,
		Redis:          redisClient,
		cache:          cache,
		notify:         notifier,
		idempotencyTTL: cfg.IdempotencyTTL,
		lockTTL:        cfg.ResolutionLockTTL,
	}
}

// CreateOffer validates the bid, then runs the two-step mutation as a saga:
// the offer record is created first and deleted again if marking the ticket
// "pending" fails, so a half-applied submission never survives. A redis
// idempotency key absorbs duplicate submits of the same logical offer.
func (s *OfferService) CreateOffer(ctx context.Context, buyerID string, in OfferInput) (models.Offer, error) {
	start := time.Now()

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil || !amount.IsPositive() {
		return models.Offer{}, status.ErrInvalidAmount
	}

	ticket, err := s.store.GetTicket(ctx, in.TicketID)
	if err != nil {
		return models.Offer{}, err
	}
	if ticket.UserID == buyerID {
		return models.Offer{}, status.ErrSelfOffer
	}
	if ticket.Status != models.TicketAvailable {
		return models.Offer{}, status.ErrTicketUnavailable
	}
	if amount.Cmp(decimal.NewFromFloat(ticket.ListedPrice)) >= 0 {
		return models.Offer{}, status.ErrAmountNotBelow
	}

	key := in.IdempotencyKey
	if key == "" {
		key = utils.NewIdempotencyKey()
	}
	idemKey := fmt.Sprintf("idem:offer:%s", key)

	acquired, err := s.Redis.SetNX(ctx, idemKey, buyerID, s.idempotencyTTL).Result()
	if err != nil {
		// Dedup is best effort; a redis outage must not block offers
		slog.Warn("Idempotency check unavailable", "error", err)
	} else if !acquired {
		return models.Offer{}, status.ErrDuplicateSubmit
	}

	reference, err := utils.GenerateCode(4)
	if err != nil {
		return models.Offer{}, fmt.Errorf("offer reference: %w", err)
	}

	offer := models.Offer{
		TicketID:  ticket.ID,
		BuyerID:   buyerID,
		SellerID:  ticket.UserID,
		Amount:    amount.InexactFloat64(),
		Message:   strings.TrimSpace(in.Message),
		Reference: reference,
		Status:    models.OfferPending,
	}

	created, err := s.store.CreateOffer(ctx, offer)
	if err != nil {
		s.releaseIdempotencyKey(ctx, idemKey)
		monitoring.TrackMutation("create_offer", "error")
		slog.Error("Failed to create offer", "ticket_id", ticket.ID, "buyer_id", buyerID, "error", err)
		return models.Offer{}, fmt.Errorf("create offer: %w", err)
	}

	if err := s.store.UpdateTicketStatus(ctx, ticket.ID, models.TicketPending); err != nil {
		// Compensate step 1 so no offer dangles against an available ticket
		if derr := s.store.DeleteOffer(ctx, created.ID); derr != nil {
			slog.Error("Offer compensation failed, manual cleanup required",
				"offer_id", created.ID, "error", derr)
		}
		s.releaseIdempotencyKey(ctx, idemKey)
		monitoring.TrackMutation("create_offer", "error")
		slog.Error("Failed to mark ticket pending", "ticket_id", ticket.ID, "error", err)
		return models.Offer{}, fmt.Errorf("mark ticket pending: %w", err)
	}

	monitoring.TrackMutation("create_offer", "ok")
	monitoring.ObserveMutation("create_offer", start)
	s.cache.Invalidate(ctx, ScopeTickets)
	s.cache.Invalidate(ctx, ScopeOffers)
	s.notify.OfferReceived(created, ticket)

	slog.Info("Offer created",
		"offer_id", created.ID, "reference", created.Reference,
		"ticket_id", ticket.ID, "buyer_id", buyerID)
	return created, nil
}

// Resolve applies the seller's approve/deny decision. A per-offer redis lock
// plus a status re-check under it keeps concurrent or repeated resolutions
// from double-writing; the ticket cascade failing reverts the offer to
// pending.
func (s *OfferService) Resolve(ctx context.Context, actorID, offerID string, approve bool) (models.Offer, error) {
	start := time.Now()

	lockKey := fmt.Sprintf("lock:offer:%s", offerID)
	locked, err := s.Redis.SetNX(ctx, lockKey, actorID, s.lockTTL).Result()
	if err != nil {
		return models.Offer{}, fmt.Errorf("acquire resolution lock: %w", err)
	}
	if !locked {
		return models.Offer{}, status.ErrResolutionBusy
	}
	defer s.Redis.Del(context.WithoutCancel(ctx), lockKey)

	offer, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		return models.Offer{}, err
	}
	if offer.SellerID != actorID {
		return models.Offer{}, status.ErrNotSeller
	}
	if offer.Status != models.OfferPending {
		return models.Offer{}, status.ErrOfferResolved
	}

	offerStatus := models.OfferDenied
	ticketStatus := models.TicketAvailable
	if approve {
		offerStatus = models.OfferApproved
		ticketStatus = models.TicketSold
	}

	if err := s.store.UpdateOfferStatus(ctx, offer.ID, offerStatus); err != nil {
		monitoring.TrackMutation("resolve_offer", "error")
		return models.Offer{}, fmt.Errorf("update offer status: %w", err)
	}

	if err := s.store.UpdateTicketStatus(ctx, offer.TicketID, ticketStatus); err != nil {
		// Revert step 1 so the offer stays resolvable
		if rerr := s.store.UpdateOfferStatus(ctx, offer.ID, models.OfferPending); rerr != nil {
			slog.Error("Resolution compensation failed, manual cleanup required",
				"offer_id", offer.ID, "error", rerr)
		}
		monitoring.TrackMutation("resolve_offer", "error")
		slog.Error("Failed to cascade ticket status", "ticket_id", offer.TicketID, "error", err)
		return models.Offer{}, fmt.Errorf("cascade ticket status: %w", err)
	}

	offer.Status = offerStatus

	monitoring.TrackMutation("resolve_offer", "ok")
	monitoring.ObserveMutation("resolve_offer", start)
	s.cache.Invalidate(ctx, ScopeTickets)
	s.cache.Invalidate(ctx, ScopeOffers)

	ticket, terr := s.store.GetTicket(ctx, offer.TicketID)
	if terr != nil {
		ticket = models.Ticket{ID: offer.TicketID}
	}
	s.notify.OfferResolved(offer, ticket)

	slog.Info("Offer resolved",
		"offer_id", offer.ID, "status", offer.Status, "seller_id", actorID)
	return offer, nil
}

// Received returns the offers where the actor is the seller.
func (s *OfferService) Received(ctx context.Context, actorID string) ([]models.Offer, error) {
	offers, err := s.cache.OffersFor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("received offers: %w", err)
	}
	return models.ReceivedOffers(offers, actorID), nil
}

// Sent returns the offers where the actor is the buyer.
func (s *OfferService) Sent(ctx context.Context, actorID string) ([]models.Offer, error) {
	offers, err := s.cache.OffersFor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("sent offers: %w", err)
	}
	return models.SentOffers(offers, actorID), nil
}

func (s *OfferService) releaseIdempotencyKey(ctx context.Context, key string) {
	if err := s.Redis.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
		slog.Warn("Failed to release idempotency key", "key", key, "error", err)
	}
}
