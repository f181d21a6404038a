package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hibara/portfolio-api/internal/config"
	"github.com/hibara/portfolio-api/internal/database"
	"github.com/hibara/portfolio-api/internal/dto"
	"github.com/hibara/portfolio-api/internal/events"
	"github.com/hibara/portfolio-api/internal/handler"
	"github.com/hibara/portfolio-api/internal/mail"
	"github.com/hibara/portfolio-api/internal/middleware"
	"github.com/hibara/portfolio-api/internal/models"
	"github.com/hibara/portfolio-api/internal/ratelimit"
	"github.com/hibara/portfolio-api/internal/repository"
	"github.com/hibara/portfolio-api/internal/router"
	"github.com/hibara/portfolio-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.ContactSubmission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// A single process throttles in memory; when Redis is configured the same
	// fixed-window algorithm runs in the shared store so replicas agree.
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow, logger)
	}

	var publisher service.EventPublisher
	if cfg.NatsURL != "" {
		natsConn, err := database.ConnectNats(cfg.NatsURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
		publisher = events.NewPublisher(natsConn, logger)
	}

	var dispatcher mail.Dispatcher = mail.NewNoopDispatcher(logger)
	if cfg.MailEnabled() {
		dispatcher = mail.NewResendDispatcher(cfg.ResendAPIKey, logger)
	} else {
		logger.Warn().Msg("RESEND_API_KEY not set, email dispatch disabled")
	}

	composer, err := mail.NewComposer()
	if err != nil {
		log.Fatalf("failed to parse email templates: %v", err)
	}

	validate := dto.NewValidator()
	contactRepo := repository.NewContactRepository(db)
	contactService := service.NewContactService(contactRepo, validate, composer, dispatcher, publisher, cfg.FromEmail, cfg.ContactEmail, logger)
	contactHandler := handler.NewContactHandler(contactService, limiter, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ContactHandler: contactHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
