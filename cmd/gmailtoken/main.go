// Command gmailtoken authorises the admin's Gmail account for sending
// status emails and stores the token where the API server reads it.
package main

import (
	"context"
	"os"

	"github.com/justsurfingit/jobboard-admin/internal/auth"
	"github.com/justsurfingit/jobboard-admin/internal/config"
	"github.com/justsurfingit/jobboard-admin/internal/logging"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logging.New(cfg.AppEnv, cfg.LogLevel)

	err = auth.AuthorizeGmail(context.Background(), cfg.GmailCredentialsFile, cfg.GmailTokenFile, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Gmail authorisation failed")
	}
	log.Info().Str("file", cfg.GmailTokenFile).Msg("Token saved")
}
