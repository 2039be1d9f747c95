package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"eventoria/internal/config"
	"eventoria/internal/domain"
	"eventoria/internal/handler"
	"eventoria/internal/middleware"
	"eventoria/internal/pkg/logging"
	"eventoria/internal/queue"
	"eventoria/internal/realtime"
	"eventoria/internal/repository"
	"eventoria/internal/service"
	"eventoria/internal/service/auth"
	"eventoria/internal/storage"
)

const maxUploadBody = 11 << 20

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logging.SetDefault(logging.New(cfg.Environment, cfg.LogLevel))
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching and cross-instance realtime disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Warn().Err(err).Str("driver", cfg.StorageDriver).Msg("blob storage unavailable, image upload disabled")
	}

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, confirmation emails are sent in-process")
		amqpConn = nil
	} else if amqpConn != nil {
		defer amqpConn.Close()
	}

	hub := realtime.NewHub(logging.Component("realtime"))
	go hub.Run(ctx)

	var publisher realtime.Publisher = hub
	if redisClient != nil {
		bridge := realtime.NewRedisBridge(redisClient, hub, logging.Component("realtime-bridge"))
		go bridge.Run(ctx)
		publisher = bridge
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, repository.NewTxManager(db), service.Infra{
		Redis:    redisClient,
		Store:    store,
		Realtime: publisher,
		AMQP:     amqpConn,
	}, cfg)
	handlers := handler.NewHandlers(services)

	if amqpConn != nil {
		consumer := queue.NewConsumer(cfg.RabbitMQURL, cfg.RabbitMQQueue, services.ConfirmationMail, logging.Component("queue"))
		go consumer.Run(ctx)
	}

	go cleanupSessions(ctx, repos.Session)

	gateway := realtime.NewGateway(hub, services.Auth, services.Notification, splitOrigins(cfg.CORSOrigins), logging.Component("realtime-gateway"))
	realtimeServer := &http.Server{
		Addr:              ":" + cfg.RealtimePort,
		Handler:           gateway.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.RealtimePort).Msg("realtime gateway starting")
		if err := realtimeServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("realtime gateway stopped")
		}
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    maxUploadBody,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestInfo())

	limiter := middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	setupRoutes(app, handlers, services.Auth, limiter)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = realtimeServer.Shutdown(shutdownCtx)
		_ = app.ShutdownWithContext(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service, limiter *middleware.IPRateLimiter) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")
	authRequired := middleware.AuthRequired(authService)
	rateLimited := middleware.RateLimit(limiter)

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", rateLimited, h.Auth.Register)
	authGroup.Post("/login", rateLimited, h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/forgot-password", rateLimited, h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", rateLimited, h.Auth.ResetPassword)
	authGroup.Post("/logout", authRequired, h.Auth.Logout)

	v1.Get("/categories", h.Catalog.ListCategories)
	v1.Get("/categories/:id", h.Catalog.GetCategory)
	v1.Get("/listings", h.Catalog.ListListings)
	v1.Get("/listings/:id", middleware.OptionalAuth(authService), h.Catalog.GetListing)

	protected := v1.Group("", authRequired)

	users := protected.Group("/users/me")
	users.Get("/", h.User.GetProfile)
	users.Delete("/", h.User.DeleteAccount)
	users.Get("/favorites", h.User.ListFavorites)
	users.Put("/favorites/:listingId", h.User.AddFavorite)
	users.Delete("/favorites/:listingId", h.User.RemoveFavorite)

	protected.Post("/media/images", middleware.RequirePermission(middleware.PermUploadMedia), h.Media.UploadImage)

	protected.Post("/approval-requests", middleware.RequirePermission(middleware.PermSubmitService), h.Approval.Submit)
	protected.Get("/approval-requests/mine", middleware.RequirePermission(middleware.PermSubmitService), h.Approval.ListMine)

	manageListings := middleware.RequirePermission(middleware.PermManageListings)
	protected.Get("/vendor/listings", manageListings, h.Listing.ListMine)
	protected.Put("/listings/:id", manageListings, h.Listing.Update)
	protected.Delete("/listings/:id", manageListings, h.Listing.Delete)

	bookings := protected.Group("/bookings")
	bookings.Post("/", middleware.RequirePermission(middleware.PermBookService), h.Booking.Create)
	bookings.Get("/", h.Booking.List)
	bookings.Get("/:id", h.Booking.Get)
	bookings.Patch("/:id/status", middleware.RequirePermission(middleware.PermManageBookings), h.Booking.UpdateStatus)
	bookings.Post("/:id/messages", h.Booking.AddMessage)
	bookings.Post("/:id/confirm", middleware.RequirePermission(middleware.PermManageBookings), h.Booking.Confirm)

	confirmed := protected.Group("/confirmed-events")
	confirmed.Get("/", h.Booking.ListConfirmed)
	confirmed.Get("/:id", h.Booking.GetConfirmed)
	confirmed.Get("/:id/document", h.Booking.ConfirmationDocument)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Post("/ack", h.Notification.Acknowledge)

	adminGroup := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	adminGroup.Get("/dashboard", h.Admin.Dashboard)
	adminGroup.Get("/approval-requests", h.Approval.ListForReview)
	adminGroup.Post("/approval-requests/:id/approve", h.Approval.Approve)
	adminGroup.Post("/approval-requests/:id/reject", h.Approval.Reject)
	adminGroup.Get("/vendors", h.Admin.Vendors)
	adminGroup.Delete("/vendors/:id", h.Admin.DeleteVendor)
	adminGroup.Delete("/listings/:id", h.Admin.DeleteListing)
}

func cleanupSessions(ctx context.Context, sessions repository.SessionRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.DeleteExpired(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to delete expired sessions")
			}
		}
	}
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
