package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/realtime"
	"github.com/socialite-app/backend/internal/router"
	"github.com/socialite-app/backend/pkg/config"
	"github.com/socialite-app/backend/pkg/firebase"
	"github.com/socialite-app/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	// Initialize database and messaging connections
	conns, err := config.Connect(cfg)
	if err != nil {
		zl.Fatal("failed to initialize connections", zap.Error(err))
	}
	defer conns.Close()

	// Assemble the push sink from whatever transports are configured.
	var sinks realtime.MultiSink
	if conns.NATS != nil {
		sinks = append(sinks, realtime.NewNATSSink(conns.NATS))
	}
	if cfg.FirebaseCredentialsPath != "" {
		fbApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			zl.Fatal("failed to initialize firebase", zap.Error(err))
		}
		sinks = append(sinks, realtime.NewFCMSink(fbApp.MessagingClient, conns.Postgres))
	}
	var sink realtime.Sink = sinks
	if len(sinks) == 0 {
		zl.Warn("no push transport configured, events are recorded in memory only")
		sink = realtime.NewMemorySink()
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e, zl)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, conns.Postgres, conns.Mongo, sink, cfg.JWTSecret, zl); err != nil {
		zl.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	zl.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
