package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Database types
const (
	DatabaseMongo    = "mongo"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

const (
	DefaultPort         = 3000
	DefaultMongoURL     = "mongodb://localhost:27017"
	DefaultDatabaseName = "pollingapp"
	DefaultEventsTopic  = "poll-events"
)

type Config struct {
	Port         int
	DatabaseType string
	DatabaseURL  string
	DatabaseName string
	RabbitMQURL  string
	RabbitQueue  string
	RedisURL     string
	RedisChannel string
}

// ParseFlags reads flags, falling back to the environment. Values from a
// .env file in the working directory are loaded first and never override
// variables already set.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Seed the environment from .env if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	fs := flag.NewFlagSet("quick-poll", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (mongo, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseName, "db-name", "", "MongoDB database name")

	// Optional event sinks
	fs.StringVar(&cfg.RabbitMQURL, "amqp", "", "RabbitMQ URL for poll events")
	fs.StringVar(&cfg.RabbitQueue, "queue", "", "RabbitMQ queue for poll events")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis address for poll events")
	fs.StringVar(&cfg.RedisChannel, "redis-channel", "", "Redis pub/sub channel for poll events")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort // default
		}
	}

	// Database type must be one we can open
	cfg.DatabaseType = fallback(cfg.DatabaseType, "DATABASE_TYPE", DatabaseMongo)
	switch cfg.DatabaseType {
	case DatabaseMongo, DatabasePostgres, DatabaseSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Only mongo has a usable local default
	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DatabaseMongo {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultMongoURL
	}
	cfg.DatabaseName = fallback(cfg.DatabaseName, "DATABASE_NAME", DefaultDatabaseName)

	// Event sinks stay disabled without a URL
	cfg.RabbitMQURL = fallback(cfg.RabbitMQURL, "RABBITMQ_URL", "")
	cfg.RabbitQueue = fallback(cfg.RabbitQueue, "RABBITMQ_QUEUE", DefaultEventsTopic)
	cfg.RedisURL = fallback(cfg.RedisURL, "REDIS_URL", "")
	cfg.RedisChannel = fallback(cfg.RedisChannel, "REDIS_CHANNEL", DefaultEventsTopic)

	return cfg, nil
}

// fallback returns value, then the env variable, then def
func fallback(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}
