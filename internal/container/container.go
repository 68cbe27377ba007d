package container

import (
	"schedly-be/internal/config"
	"schedly-be/internal/repository"
	"schedly-be/internal/service"
	"schedly-be/internal/service/auth"
	"schedly-be/internal/service/calendar"
	"schedly-be/pkg/database"
	"schedly-be/pkg/logger"
	"schedly-be/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
}

// New creates a new dependency injection container. The Redis client is
// optional; without it the connection status falls back to storage reads.
func New(cfg *config.Config, log *logger.Logger, db *database.PostgresDB) (*Container, error) {
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	repos := &repository.Repositories{
		User:       repository.NewUserRepository(db),
		Interval:   repository.NewIntervalRepository(db),
		Connection: repository.NewConnectionRepository(db),
	}

	calendarService := calendar.NewService(log)
	services := &service.Services{
		Session:   service.NewSessionService(cfg.SessionSecret, cfg.Environment, log),
		Calendar:  calendarService,
		Gate:      auth.NewService(cfg, repos.Connection, calendarService, redisClient, log),
		Registrar: service.NewRegistrarService(repos.User, log),
		Schedule:  service.NewScheduleService(repos.Interval, log),
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		RedisClient:  redisClient,
		Repositories: repos,
		Services:     services,
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
