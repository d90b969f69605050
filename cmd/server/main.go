// Package main initializes and starts the phew server, setting up
// configuration, logging, the database connection, repositories, services,
// the command dispatcher, and HTTP routing.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/mind0bender/phew/internal/command"
	"github.com/mind0bender/phew/internal/config"
	"github.com/mind0bender/phew/internal/db"
	"github.com/mind0bender/phew/internal/logger"
	"github.com/mind0bender/phew/internal/mail"
	"github.com/mind0bender/phew/internal/repository"
	"github.com/mind0bender/phew/internal/server/handler/http"
	"github.com/mind0bender/phew/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.AuthSecret == "" {
		zapLogger.Fatal("AUTH_SECRET must be set")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Sweep expired sessions in the background.
	db.StartSessionCleaner(context.Background(), postgresDB, time.Hour, zapLogger)

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	sessionRepo := repository.NewPostgresSessionRepository(postgresDB)
	namespaceRepo := repository.NewPostgresNamespaceRepository(postgresDB)

	// Initialize business-logic services.
	mailer := mail.NewLogMailer(options.BaseURL, zapLogger)
	authService := service.NewAuthService(userRepo, sessionRepo, namespaceRepo, mailer, []byte(options.AuthSecret))
	namespaceService := service.NewNamespaceService(namespaceRepo)

	// The dispatcher routes typed command lines to their handlers.
	dispatcher := command.NewDispatcher(namespaceService, zapLogger)

	// Create HTTP handlers.
	commandHandler := &http.CommandHandler{Dispatcher: dispatcher, Sessions: authService, Log: zapLogger}
	authHandler := &http.AuthHandler{Auth: authService, Log: zapLogger}
	verifyHandler := &http.VerifyHandler{Auth: authService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(commandHandler, authHandler, verifyHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
