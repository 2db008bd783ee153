package main

import (
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"bazaar-system/config"
	"bazaar-system/handlers"
	"bazaar-system/monitoring"
	"bazaar-system/security"
	"bazaar-system/services"
	"bazaar-system/utils"

	_ "bazaar-system/migrations"
)

func main() {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)

	// Initialize PubNub when keys are configured, otherwise booth status
	// notifications are skipped.
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pn = pubnub.NewPubNub(pnConfig)
	} else {
		log.Println("PubNub keys not configured, status notifications disabled")
	}

	// Initialize services
	eventService := services.NewEventService(app, cfg)
	boothService := services.NewBoothService(app, pn)
	ratingService := services.NewRatingService(app)
	vendorService := services.NewVendorService(app)
	catalogService := services.NewCatalogService(app)
	dependencyService := services.NewDependencyService(app, cfg)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(app, cfg, eventService, ratingService, dependencyService)
	boothHandler := handlers.NewBoothHandler(app, cfg, boothService)
	ratingHandler := handlers.NewRatingHandler(app, cfg, ratingService)
	vendorHandler := handlers.NewVendorHandler(app, cfg, vendorService, dependencyService)
	areaHandler := handlers.NewCatalogHandler(app, cfg, catalogService, dependencyService, "areas")
	categoryHandler := handlers.NewCatalogHandler(app, cfg, catalogService, dependencyService, "event_categories")
	rentalHandler := handlers.NewRentalHandler(app, cfg, catalogService, dependencyService)
	bannerHandler := handlers.NewBannerHandler(app, cfg, eventService)
	userHandler := handlers.NewUserHandler(app, cfg)

	// Security middlewares
	rateLimiter := security.NewRateLimiter(redisClient, cfg.RateLimitPerWindow, cfg.RateLimitWindow)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Close Redis when the server shuts down.
	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close Redis client: %v", err)
		}
		return e.Next()
	})

	adminOnly := security.RequireRole(security.RoleAdmin)
	vendorOrAdmin := security.RequireRole(security.RoleVendor, security.RoleAdmin)

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		g := e.Router.Group("/api/bazaar")
		g.BindFunc(security.CORSMiddleware(cfg.CORSAllowOrigins))
		g.BindFunc(rateLimiter.Middleware())
		g.BindFunc(requestMetrics())

		// Event endpoints
		g.GET("/events", eventHandler.List)
		g.GET("/events/{id}", eventHandler.Get)
		g.POST("/events", eventHandler.Create).Bind(vendorOrAdmin)
		g.PATCH("/events/{id}", eventHandler.Update).Bind(adminOnly)
		g.DELETE("/events/{id}", eventHandler.Delete).Bind(adminOnly)
		g.POST("/events/{eventId}/banner", bannerHandler.AttachToEvent).Bind(adminOnly)

		// Booth application endpoints
		g.POST("/booths", boothHandler.Apply).BindFunc(rateLimiter.AntiBotMiddleware())
		g.GET("/booths/ref/{code}", boothHandler.GetByRef)
		g.PATCH("/booths/{id}", boothHandler.ApplicantUpdate)
		g.GET("/events/{eventId}/booths", boothHandler.ListByEvent).Bind(adminOnly)
		g.PATCH("/booths/{id}/status", boothHandler.SetStatus).Bind(adminOnly)
		g.PATCH("/booths/status", boothHandler.BulkSetStatus).Bind(adminOnly)
		g.DELETE("/booths/{id}", boothHandler.Delete).Bind(adminOnly)

		// Rating endpoints
		g.POST("/ratings", ratingHandler.Create).BindFunc(rateLimiter.AntiBotMiddleware())
		g.GET("/events/{eventId}/ratings", ratingHandler.ListByEvent)
		g.GET("/events/{eventId}/ratings/stats", ratingHandler.Stats)
		g.PATCH("/ratings/{id}", ratingHandler.Update).Bind(adminOnly)
		g.DELETE("/ratings/{id}", ratingHandler.Delete).Bind(adminOnly)
		g.DELETE("/events/{eventId}/ratings", ratingHandler.DeleteAllForEvent).Bind(adminOnly)

		// Vendor endpoints
		g.GET("/vendors", vendorHandler.List)
		g.GET("/vendors/{id}", vendorHandler.Get)
		g.POST("/vendors", vendorHandler.Register).Bind(apis.RequireAuth())
		g.PATCH("/vendors/{id}", vendorHandler.Update).Bind(apis.RequireAuth())
		g.DELETE("/vendors/{id}", vendorHandler.Delete).Bind(adminOnly)

		// Area endpoints
		g.GET("/areas", areaHandler.List)
		g.POST("/areas", areaHandler.Create).Bind(adminOnly)
		g.POST("/areas/bulk", areaHandler.BulkCreate).Bind(adminOnly)
		g.PATCH("/areas/{id}", areaHandler.Update).Bind(adminOnly)
		g.DELETE("/areas/{id}", areaHandler.Delete).Bind(adminOnly)

		// Event category endpoints
		g.GET("/categories", categoryHandler.List)
		g.POST("/categories", categoryHandler.Create).Bind(adminOnly)
		g.POST("/categories/bulk", categoryHandler.BulkCreate).Bind(adminOnly)
		g.PATCH("/categories/{id}", categoryHandler.Update).Bind(adminOnly)
		g.DELETE("/categories/{id}", categoryHandler.Delete).Bind(adminOnly)

		// Rental endpoints
		g.GET("/rentals", rentalHandler.List)
		g.POST("/rentals", rentalHandler.Create).Bind(adminOnly)
		g.DELETE("/rentals/{id}", rentalHandler.Delete).Bind(adminOnly)
		g.POST("/rentals/{id}/products", rentalHandler.CreateProduct).Bind(adminOnly)
		g.DELETE("/rentals/{id}/products/{productId}", rentalHandler.DeleteProduct).Bind(adminOnly)

		// Banner endpoints
		g.GET("/banners", bannerHandler.List)
		g.DELETE("/banners/{id}", bannerHandler.Delete).Bind(adminOnly)

		// User administration
		g.GET("/users", userHandler.List).Bind(adminOnly)
		g.GET("/users/{id}", userHandler.Get).Bind(adminOnly)
		g.PATCH("/users/{id}/role", userHandler.SetRole).Bind(adminOnly)

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

		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// requestMetrics times every request in the group.
func requestMetrics() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()

		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		monitoring.TrackRequest(e.Request.Method, outcome, time.Since(start))

		return err
	}
}
