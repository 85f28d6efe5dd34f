// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p              Server port (default: 3000)
	-t              Database type: mongo, postgres or sqlite (default: mongo)
	-d              Database URL
	-db-name        MongoDB database name (default: pollingapp)
	-amqp           RabbitMQ URL for poll events
	-queue          RabbitMQ queue (default: poll-events)
	-redis          Redis address or redis:// URL for poll events
	-redis-channel  Redis channel (default: poll-events)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_TYPE  → -t
	DATABASE_URL   → -d
	DATABASE_NAME  → -db-name
	RABBITMQ_URL   → -amqp
	RABBITMQ_QUEUE → -queue
	REDIS_URL      → -redis
	REDIS_CHANNEL  → -redis-channel

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded into the environment first; variables that are
already set win over the file.

# Validation

  - DATABASE_TYPE must be mongo, postgres or sqlite
  - DATABASE_URL is required for postgres and sqlite; mongo defaults to
    mongodb://localhost:27017
  - RabbitMQ and Redis are optional; leaving the URL empty disables them
*/
package cliparse
