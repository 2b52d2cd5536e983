/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the booking coordination server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (defaults, .env, environment, flags)
  2. Initialize the store (in-memory or SQLite) and seed users
  3. Wire the notifier (SMTP mailer, or log-only when unconfigured)
  4. Create the booking service and HTTP router
  5. Start the server with graceful shutdown

CONFIGURATION:
  -port     HTTP server port (default: 8080)
  -db       SQLite database path; empty keeps everything in memory and
            loses it on restart (the reference deployment)
  -app-url  Base URL used in notification emails
  Plus SMTP_*, ADMIN_*, MEMBER_* environment variables; see config/.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Drain the notification queue
  4. Close the store

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: Settings and their sources
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casona/booking-engine/api"
	"github.com/casona/booking-engine/booking"
	"github.com/casona/booking-engine/config"
	"github.com/casona/booking-engine/notify"
	"github.com/casona/booking-engine/store/memory"
	"github.com/casona/booking-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Initialize store
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	// Seed users
	member, err := seedUsers(context.Background(), store, cfg)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	// Wire notifier
	var notifier booking.Notifier
	var mailer *notify.Mailer
	if cfg.EmailEnabled() {
		mailer = notify.NewMailer(notify.SMTPConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			From:       cfg.SMTPFrom,
			Password:   cfg.SMTPPassword,
			AdminEmail: cfg.AdminEmail,
			AppURL:     cfg.AppURL,
		}, 2, 100)
		notifier = mailer
	} else {
		log.Println("SMTP not configured, notifications are log-only")
		notifier = notify.LogNotifier{}
	}

	// Service, handler, router
	service := booking.NewService(store, notifier)
	handler := api.NewHandler(service, member.ID)
	limiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := api.NewRouter(handler, limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if mailer != nil {
		mailer.Shutdown()
	}

	log.Println("Server stopped")
}

// openStore picks SQLite when a path is configured, otherwise the
// volatile in-memory store.
func openStore(cfg *config.Config) (booking.Store, error) {
	if cfg.DBPath == "" {
		log.Println("Using in-memory store (state is lost on restart)")
		return memory.New(), nil
	}
	return sqlite.New(cfg.DBPath)
}

// seedUsers ensures the admin and the default member exist, returning the
// member whose identity the user routes act as.
func seedUsers(ctx context.Context, store booking.Store, cfg *config.Config) (booking.User, error) {
	if _, err := store.GetUserByUsername(ctx, cfg.AdminUsername); booking.IsNotFound(err) {
		_, err = store.SaveUser(ctx, booking.User{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
			Email:    cfg.AdminEmail,
			IsAdmin:  true,
		})
		if err != nil {
			return booking.User{}, err
		}
	} else if err != nil {
		return booking.User{}, err
	}

	member, err := store.GetUserByUsername(ctx, cfg.MemberUsername)
	if booking.IsNotFound(err) {
		return store.SaveUser(ctx, booking.User{
			Username: cfg.MemberUsername,
			Email:    cfg.MemberEmail,
		})
	}
	return member, err
}
