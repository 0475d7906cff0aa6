// Command server hosts the presence and direct-messaging core: the
// WebSocket session endpoint, the HTTP collaborator surface and the
// supervised background event consumers.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"devconnect/infrastructure/bus"
	"devconnect/infrastructure/cache"
	"devconnect/internal"
	"devconnect/repositories"
	"devconnect/runtime"
	"devconnect/runtime/workers"
	"devconnect/services"
	"devconnect/transport"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownGrace = 10 * time.Second

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting. The pattern keeps deferred cleanup (database
// close, broker disconnect) running before the process exits and keeps the
// wiring testable apart from os.Exit.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := internal.GetLogger(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Durable store (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLogger(nil))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Optional dependencies: both degrade to no-ops when unconfigured.
	cacheClient := cache.New(ctx, config.RedisURL, config.CacheOpTimeout, logger)
	defer func() {
		_ = cacheClient.Close()
	}()

	eventBus := bus.New(config.Brokers(), config.KafkaConsumerGroup, logger)
	defer func() {
		_ = eventBus.Close()
	}()
	if err := eventBus.EnsureTopics(); err != nil {
		// Topic provisioning trouble degrades the bus, it never stops the core.
		logger.Warn("Topic provisioning failed, continuing without it", "error", err)
	}

	// 4. Core wiring
	registry := runtime.NewRegistry()
	messageRepo := repositories.NewMessageRepository(db, logger)

	presence := services.NewPresenceService(registry, cacheClient, eventBus, logger)
	messaging := services.NewMessagingService(messageRepo, cacheClient, eventBus, registry, logger, config.StoreTimeout)
	connections := services.NewConnectionService(cacheClient, eventBus, services.DefaultTierLimits(), logger)

	// 5. Supervised background workers
	supervisor := workers.NewSupervisor(logger)
	supervisor.Add(
		workers.NewConsumerWorker(logger, eventBus, eventBus, cacheClient),
		workers.NewHeartbeatWorker(logger, config.HeartbeatInterval),
	)
	supervisorDone := make(chan struct{})
	go func() {
		defer close(supervisorDone)
		supervisor.Run(ctx)
	}()

	// 6. HTTP + WebSocket surface
	wsHandler := transport.NewWebSocketHandler(presence, messaging, registry, logger)
	router := transport.Routes(transport.NewHandler(messaging, connections), wsHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return exitRuntime, fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}

	supervisor.Stop()
	select {
	case <-supervisorDone:
	case <-shutdownCtx.Done():
		logger.Warn("Workers did not stop before the shutdown deadline")
	}

	logger.Info("Server closed")
	return exitOK, nil
}
