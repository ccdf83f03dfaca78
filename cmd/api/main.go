package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"weddingrsvp/config"
	_ "weddingrsvp/docs"
	"weddingrsvp/internal/adapters/email"
	"weddingrsvp/internal/adapters/sheets"
	httpdelivery "weddingrsvp/internal/delivery/http"
	"weddingrsvp/internal/delivery/http/controllers"
	"weddingrsvp/internal/delivery/http/middleware"
	"weddingrsvp/internal/repository/postgres"
	"weddingrsvp/internal/services"
)

// @title Wedding RSVP API
// @version 1.0
// @description Guest RSVP intake API: records attendance confirmations, rejects duplicate registrations, and forwards each confirmation to the organizers' tracking spreadsheet.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database handle", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	guestRepo := postgres.NewGuestRepository(db)

	// Schema init is fail-open: a reachable database gets the table created,
	// an unreachable one leaves the server in degraded mode where data
	// operations fail but /health still answers.
	if cfg.DBUrl == "" {
		logger.Warn("DATABASE_URL not set, database will not be initialized")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := guestRepo.InitSchema(ctx); err != nil {
			logger.Error("database initialization failed", "err", err)
		} else {
			logger.Info("database initialized")
		}
		cancel()
	}

	sheetSyncer := sheets.NewClient(nil, cfg.GoogleAppsScriptURL, logger)
	if cfg.GoogleAppsScriptURL == "" {
		logger.Warn("GOOGLE_APPS_SCRIPT_URL not set, sheets sync disabled")
	}

	mailer := email.NewMailer(email.Config{
		Provider:        cfg.Mailer.Provider,
		FromAddress:     cfg.Mailer.FromAddress,
		FromName:        cfg.Mailer.FromName,
		Region:          cfg.Mailer.SESRegion,
		AccessKeyID:     cfg.Mailer.SESAccessKeyID,
		SecretAccessKey: cfg.Mailer.SESSecretAccessKey,
	}, logger)

	guestService := services.NewGuestService(guestRepo, sheetSyncer, mailer, cfg.Mailer.NotifyAddress, logger)
	guestController := controllers.NewGuestController(logger, guestService)

	mux := httpdelivery.NewRouter(guestController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.RequestID(middleware.Logging(logger, mux)))

	addr := ":" + cfg.Port
	logger.Info("starting wedding rsvp api", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
