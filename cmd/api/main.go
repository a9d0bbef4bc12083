package main

import (
	"context"

	"github.com/justsurfingit/jobboard-admin/internal/auth"
	"github.com/justsurfingit/jobboard-admin/internal/config"
	"github.com/justsurfingit/jobboard-admin/internal/database"
	"github.com/justsurfingit/jobboard-admin/internal/handlers"
	"github.com/justsurfingit/jobboard-admin/internal/logging"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/justsurfingit/jobboard-admin/internal/storage"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logging.New(cfg.AppEnv, cfg.LogLevel)

	// 2. Database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Database unavailable")
	}

	ctx := context.Background()

	// 3. Outbound mail: Gmail when a token is present, log-only otherwise
	var mailer services.Mailer = services.LogMailer{Log: log}
	if gmailService, err := auth.NewGmailService(ctx, cfg.GmailCredentialsFile, cfg.GmailTokenFile); err != nil {
		log.Warn().Err(err).Msg("Gmail not configured; emails will only be logged")
	} else {
		mailer = services.NewGmailMailer(gmailService, cfg.MailFrom, log)
		log.Info().Msg("Gmail service connected")
	}

	// 4. Services
	matcher := services.NewMatcherService(db)
	llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, matcher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create LLM client")
	}
	uploads := storage.NewLocalUploads(cfg.UploadDir, cfg.MaxUploadMB)
	authService := services.NewAuthService(db, log)
	sessions := sessionStore(cfg, db, log)

	// 5. Handlers and routes
	router := &handlers.Router{
		Jobs:         handlers.NewJobHandler(llmService, services.NewJobService(db, log), log),
		Companies:    handlers.NewCompanyHandler(services.NewCompanyService(db, uploads, log), log),
		Users:        handlers.NewUserHandler(services.NewUserService(db, log), log),
		Categories:   handlers.NewCategoryHandler(services.NewCategoryService(db, log), log),
		Applications: handlers.NewApplicationHandler(services.NewApplicationService(db, mailer, log), log),
		Dashboard: handlers.NewDashboardHandler(
			services.NewDashboardService(db), services.NewReportService(db), log),
		Auth: &handlers.AuthHandler{
			Auth:       authService,
			Sessions:   sessions,
			Providers:  auth.Providers(cfg, log),
			SessionTTL: cfg.SessionTTL,
			Secure:     cfg.CookieSecure,
			Log:        log,
		},
		RequireAdmin: auth.RequireAdmin(sessions, authService, log),
		UploadDir:    cfg.UploadDir,
		Origins:      []string{cfg.PublicOrigin},
		Log:          log,
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("Server starting")
	if err := router.Engine().Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

func sessionStore(cfg *config.Config, db *gorm.DB, log zerolog.Logger) auth.SessionStore {
	if cfg.SessionStore == "redis" {
		log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis sessions")
		return auth.NewRedisSessions(cfg.RedisAddr, cfg.SessionTTL)
	}
	return auth.NewDBSessions(db, cfg.SessionTTL)
}
