// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the quick-poll API server.

quick-poll runs a single poll at a time: clients create a poll with a
question and a list of options, others fetch it and vote, and anyone can
reset it. Creating a new poll replaces the current one.

# Starting the Server

With a local MongoDB on the default port nothing needs to be configured:

	go run .

Other backends:

	go run . -t postgres -d "postgres://..."
	go run . -t sqlite -d "file:polls.db"

# Configuration

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): mongo, postgres or sqlite (default: mongo)
  - DATABASE_URL (-d): Connection string
  - DATABASE_NAME (-db-name): MongoDB database (default: pollingapp)
  - RABBITMQ_URL (-amqp), REDIS_URL (-redis): optional event sinks

A .env file in the working directory is honored.

# Architecture

  - handlers: HTTP request handlers (poll, vote, reset, live stream)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - service: Poll validation and vote rules
  - store: Active poll persistence (MongoDB, PostgreSQL, SQLite)
  - events: Poll change events for RabbitMQ and Redis
  - hub: Websocket fan-out to live viewers
  - models: Request/response and domain types
  - db: SQL connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
