package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/linkupge/linkup-backend/internal/config"
	httpDelivery "github.com/linkupge/linkup-backend/internal/delivery/http"
	"github.com/linkupge/linkup-backend/internal/delivery/http/handler"
	"github.com/linkupge/linkup-backend/internal/delivery/http/middleware"
	"github.com/linkupge/linkup-backend/internal/infrastructure/database"
	"github.com/linkupge/linkup-backend/internal/infrastructure/gemini"
	"github.com/linkupge/linkup-backend/internal/infrastructure/server"
	"github.com/linkupge/linkup-backend/internal/infrastructure/storage"
	"github.com/linkupge/linkup-backend/internal/logger"
	"github.com/linkupge/linkup-backend/internal/repository"
	"github.com/linkupge/linkup-backend/internal/repository/postgres"
	"github.com/linkupge/linkup-backend/internal/usecase/auth"
	"github.com/linkupge/linkup-backend/internal/usecase/discovery"
	"github.com/linkupge/linkup-backend/internal/usecase/event"
	"github.com/linkupge/linkup-backend/internal/usecase/interaction"
	"github.com/linkupge/linkup-backend/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	DB          *sqlx.DB
	RedisClient *redis.Client
	Storage     *storage.LocalStorage
	Gemini      *gemini.Client

	UserRepo        repository.UserRepository
	SessionRepo     repository.SessionRepository
	ProfileRepo     repository.ProfileRepository
	InteractionRepo repository.InteractionRepository
	MatchRepo       repository.MatchRepository
	EventRepo       repository.EventRepository

	AuthUseCase        *auth.AuthUseCase
	ProfileUseCase     *profile.ProfileUseCase
	DiscoveryUseCase   *discovery.DiscoveryUseCase
	InteractionUseCase *interaction.InteractionUseCase
	EventUseCase       *event.EventUseCase

	Server *server.Server
}

// NewContainer creates and wires all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	// Redis only backs token revocation; the app runs without it.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, token revocation disabled", "error", err)
	} else {
		c.RedisClient = redisClient
	}

	localStorage, err := storage.NewLocalStorage(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.Storage = localStorage

	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("gemini unavailable, bio suggestions disabled", "error", err)
		} else {
			c.Gemini = geminiClient
		}
	}

	c.UserRepo = postgres.NewUserRepository(db)
	c.SessionRepo = postgres.NewSessionRepository(db)
	c.ProfileRepo = postgres.NewProfileRepository(db)
	c.InteractionRepo = postgres.NewInteractionRepository(db)
	c.MatchRepo = postgres.NewMatchRepository(db)
	c.EventRepo = postgres.NewEventRepository(db)

	c.AuthUseCase = auth.NewAuthUseCase(
		c.UserRepo,
		c.SessionRepo,
		c.RedisClient,
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
	)
	c.ProfileUseCase = profile.NewProfileUseCase(c.ProfileRepo, c.Storage, c.Gemini)
	c.DiscoveryUseCase = discovery.NewDiscoveryUseCase(c.ProfileRepo, c.InteractionRepo)
	c.InteractionUseCase = interaction.NewInteractionUseCase(c.InteractionRepo, c.MatchRepo, c.ProfileRepo)
	c.EventUseCase = event.NewEventUseCase(c.EventRepo)

	authHandler := handler.NewAuthHandler(c.AuthUseCase)
	profileHandler := handler.NewProfileHandler(c.ProfileUseCase)
	peopleHandler := handler.NewPeopleHandler(c.DiscoveryUseCase, c.InteractionUseCase)
	eventHandler := handler.NewEventHandler(c.EventUseCase)
	authMiddleware := middleware.NewAuthMiddleware(c.AuthUseCase)

	router := httpDelivery.NewRouter(
		authHandler,
		profileHandler,
		peopleHandler,
		eventHandler,
		authMiddleware,
		c.Storage.PublicDir(),
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup())

	return c, nil
}

// Close releases held resources
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Error("failed to close redis client", "error", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
