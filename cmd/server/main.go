package main

import (
	"net/http"
	"os"

	"github.com/swimshark/website/internal/config"
	"github.com/swimshark/website/internal/handlers"
	"github.com/swimshark/website/internal/logger"
	"github.com/swimshark/website/internal/mail"
	"github.com/swimshark/website/internal/maillog"
	"github.com/swimshark/website/internal/notify"
	"github.com/swimshark/website/internal/services"
	"github.com/swimshark/website/internal/store"
	"github.com/swimshark/website/internal/web"
)

func main() {
	var cfg config.Server
	if err := config.Load(&cfg); err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogFormat)
	cfg.Warn(log)

	// The site stays up without a store; forms report the failure instead.
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		if err := store.Init(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.CompatShims); err != nil {
			log.Error("store init failed", "err", err)
			os.Exit(1)
		}
	}
	if err := maillog.Init(cfg.MailLogPath); err != nil {
		log.Error("mail log init failed", "err", err)
		os.Exit(1)
	}

	handlers.SetAdminPassword(cfg.AdminPassword)
	services.Confirm = services.NewDispatcher(
		mail.NewClient(cfg.MailEndpoint),
		notify.NewClient(cfg.TelegramToken, cfg.TelegramChatID),
		cfg.CampDocURL,
		log,
	)

	r := web.Router()

	log.Info("swimshark website listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
