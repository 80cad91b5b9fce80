package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	pubnub "github.com/pubnub/go"

	"ticket-marketplace/config"
	"ticket-marketplace/handlers"
	_ "ticket-marketplace/migrations"
	"ticket-marketplace/monitoring"
	"ticket-marketplace/security"
	"ticket-marketplace/services"
	"ticket-marketplace/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		pn = pubnub.NewPubNub(pnConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	store := services.NewStore(app)
	cache := services.NewSnapshotCache(store, redisClient)
	notifier := services.NewNotifier(pn)
	listingService := services.NewListingService(store, cache)
	offerService := services.NewOfferService(store, redisClient, cache, notifier, cfg)

	// Initialize handlers
	ticketHandler := handlers.NewTicketHandler(app, listingService)
	offerHandler := handlers.NewOfferHandler(app, offerService)
	limiter := security.NewRateLimiter(redisClient, cfg.MutationRateLimit, cfg.MutationRateWindow)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Listen for cache invalidation events
	go cache.Listen(ctx)

	// Ops endpoint for metrics and health
	var opsServer *http.Server
	if cfg.EnableMetrics {
		opsServer = monitoring.StartOpsServer(cfg.MetricsPort, redisClient)
	}

	// Setup graceful shutdown
	go handleShutdown(cancel, opsServer)

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Listing endpoints
		e.Router.POST("/api/v1/tickets", limiter.LimitMutations(ticketHandler.CreateListing))
		e.Router.GET("/api/v1/tickets", ticketHandler.Browse)
		e.Router.GET("/api/v1/tickets/mine", ticketHandler.MyListings)
		e.Router.GET("/api/v1/tickets/{ticketId}/suggestions", ticketHandler.Suggestions)

		// Offer endpoints
		e.Router.POST("/api/v1/offers", limiter.LimitMutations(offerHandler.CreateOffer))
		e.Router.POST("/api/v1/offers/{offerId}/approve", limiter.LimitMutations(offerHandler.Approve))
		e.Router.POST("/api/v1/offers/{offerId}/deny", limiter.LimitMutations(offerHandler.Deny))
		e.Router.GET("/api/v1/offers/received", offerHandler.Received)
		e.Router.GET("/api/v1/offers/sent", offerHandler.Sent)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	return app.Start()
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc, opsServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()

	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		opsServer.Shutdown(shutdownCtx)
	}
}
