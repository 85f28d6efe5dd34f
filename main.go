package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/quick-poll/cliparse"
	"github.com/danielhkuo/quick-poll/db"
	"github.com/danielhkuo/quick-poll/events"
	"github.com/danielhkuo/quick-poll/hub"
	"github.com/danielhkuo/quick-poll/middleware"
	"github.com/danielhkuo/quick-poll/router"
	"github.com/danielhkuo/quick-poll/service"
	"github.com/danielhkuo/quick-poll/store"
)

const connectTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the poll store
	pollStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer pollStore.Close(context.Background())
	slog.Info("Poll store ready", "type", cfg.DatabaseType)

	// Live viewers always get events; brokers only when configured
	liveHub := hub.New()
	go liveHub.Run()

	publisher := events.Fanout{liveHub}
	publisher = append(publisher, openBrokers(cfg)...)
	defer publisher.Close()

	svc := service.NewPollService(pollStore, publisher)
	mux := router.NewRouter(svc, liveHub)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func openStore(cfg cliparse.Config) (store.PollStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if cfg.DatabaseType == cliparse.DatabaseMongo {
		return store.ConnectMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store.NewSQLStore(conn), nil
}

// openBrokers connects the configured event brokers. A broker that cannot be
// reached is logged and skipped.
func openBrokers(cfg cliparse.Config) []events.Publisher {
	var publishers []events.Publisher

	if cfg.RabbitMQURL != "" {
		p, err := events.DialAMQP(cfg.RabbitMQURL, cfg.RabbitQueue)
		if err != nil {
			slog.Warn("rabbitmq disabled", "error", err)
		} else {
			slog.Info("Publishing poll events to rabbitmq", "queue", cfg.RabbitQueue)
			publishers = append(publishers, p)
		}
	}

	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		p, err := events.ConnectRedis(ctx, cfg.RedisURL, cfg.RedisChannel)
		if err != nil {
			slog.Warn("redis disabled", "error", err)
		} else {
			slog.Info("Publishing poll events to redis", "channel", cfg.RedisChannel)
			publishers = append(publishers, p)
		}
	}

	return publishers
}
