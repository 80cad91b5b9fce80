package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"ticket-marketplace/models"
	"ticket-marketplace/monitoring"
)

// InvalidationChannel carries cache invalidation events between instances.
// Payload is the collection scope ("tickets" or "offers").
const InvalidationChannel = "marketplace:invalidate"

const (
	ScopeTickets = "tickets"
	ScopeOffers  = "offers"
)

type snapshotSource interface {
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	ListOffersFor(ctx context.Context, userID string) ([]models.Offer, error)
}

// SnapshotCache holds in-memory copies of the remote collections. Reads are
// served from the snapshot; writers publish an invalidation event instead of
// bumping a refresh counter, so every instance reloads on the next read.
type SnapshotCache struct {
	source snapshotSource
	Redis  *redis.Client

	mu           sync.RWMutex
	tickets      []models.Ticket
	ticketsFresh bool
	offers       map[string][]models.Offer
	offersFresh  map[string]bool
}

func NewSnapshotCache(source snapshotSource, redisClient *redis.Client) *SnapshotCache {
	return &SnapshotCache{
		source:      source,
		Redis:       redisClient,
		offers:      make(map[string][]models.Offer),
		offersFresh: make(map[string]bool),
	}
}

// Tickets returns the ticket snapshot, reloading it from the collaborator
// when stale.
func (c *SnapshotCache) Tickets(ctx context.Context) ([]models.Ticket, error) {
	c.mu.RLock()
	if c.ticketsFresh {
		snapshot := c.tickets
		c.mu.RUnlock()
		return snapshot, nil
	}
	c.mu.RUnlock()

	tickets, err := c.source.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	monitoring.TrackSnapshotReload(ScopeTickets)
	monitoring.SetSnapshotSize(ScopeTickets, len(tickets))

	c.mu.Lock()
	c.tickets = tickets
	c.ticketsFresh = true
	c.mu.Unlock()

	return tickets, nil
}

// OffersFor returns the offer snapshot for one user (as buyer or seller),
// reloading it when stale.
func (c *SnapshotCache) OffersFor(ctx context.Context, userID string) ([]models.Offer, error) {
	c.mu.RLock()
	if c.offersFresh[userID] {
		snapshot := c.offers[userID]
		c.mu.RUnlock()
		return snapshot, nil
	}
	c.mu.RUnlock()

	offers, err := c.source.ListOffersFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	monitoring.TrackSnapshotReload(ScopeOffers)

	c.mu.Lock()
	c.offers[userID] = offers
	c.offersFresh[userID] = true
	c.mu.Unlock()

	return offers, nil
}

// Invalidate marks the scope stale locally and broadcasts the event so other
// instances drop their snapshots too. Publish failures are logged only; the
// local invalidation already happened.
func (c *SnapshotCache) Invalidate(ctx context.Context, scope string) {
	c.invalidateLocal(scope)

	if err := c.Redis.Publish(ctx, InvalidationChannel, scope).Err(); err != nil {
		slog.Error("Failed to publish invalidation", "scope", scope, "error", err)
	}
}

// Listen consumes invalidation events until the context is cancelled. Run it
// on its own goroutine.
func (c *SnapshotCache) Listen(ctx context.Context) {
	sub := c.Redis.Subscribe(ctx, InvalidationChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			c.invalidateLocal(msg.Payload)
		}
	}
}

func (c *SnapshotCache) invalidateLocal(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch scope {
	case ScopeTickets:
		c.ticketsFresh = false
	case ScopeOffers:
		c.offersFresh = make(map[string]bool)
	default:
		slog.Warn("Unknown invalidation scope", "scope", scope)
	}
}
