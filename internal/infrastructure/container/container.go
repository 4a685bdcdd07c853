package container

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/grandaincontri/incontri-backend/internal/config"
	httpdelivery "github.com/grandaincontri/incontri-backend/internal/delivery/http"
	"github.com/grandaincontri/incontri-backend/internal/delivery/http/handler"
	"github.com/grandaincontri/incontri-backend/internal/delivery/http/middleware"
	"github.com/grandaincontri/incontri-backend/internal/infrastructure/database"
	"github.com/grandaincontri/incontri-backend/internal/infrastructure/mailer"
	"github.com/grandaincontri/incontri-backend/internal/infrastructure/server"
	"github.com/grandaincontri/incontri-backend/internal/repository/postgres"
	redisrepo "github.com/grandaincontri/incontri-backend/internal/repository/redis"
	"github.com/grandaincontri/incontri-backend/internal/usecase/auth"
	"github.com/grandaincontri/incontri-backend/internal/usecase/contact"
	"github.com/grandaincontri/incontri-backend/internal/usecase/listing"
	"github.com/grandaincontri/incontri-backend/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *goredis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(&cfg.Database, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize mailer; without SMTP credentials deliveries are logged
	// instead of sent, so local runs never need a mail server.
	var mail mailer.Mailer
	if cfg.SMTP.Username != "" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
			Timeout:  cfg.SMTP.Timeout,
		})
	} else {
		logger.Warn("SMTP_USERNAME not set, contact emails will only be logged")
		mail = mailer.NewLogMailer(logger)
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	sessionStore := redisrepo.NewSessionStore(redisClient, cfg.Auth.SessionTTL)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(sessionStore, cfg.Auth.AdminPasscode, logger)
	listingUseCase := listing.NewListingUseCase(profileRepo, logger)
	profileUseCase := profile.NewProfileUseCase(profileRepo, messageRepo, logger)
	contactUseCase := contact.NewContactUseCase(messageRepo, mail, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	listingHandler := handler.NewListingHandler(listingUseCase, sessionStore, logger)
	profileHandler := handler.NewProfileHandler(profileUseCase, sessionStore, logger)
	contactHandler := handler.NewContactHandler(contactUseCase, logger)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(authUseCase, int(cfg.Auth.SessionTTL.Seconds()), logger)

	// Initialize router
	router := httpdelivery.NewRouter(
		authHandler,
		listingHandler,
		profileHandler,
		contactHandler,
		sessionMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close releases every held resource.
func (c *Container) Close() error {
	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
