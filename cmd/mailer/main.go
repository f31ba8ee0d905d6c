package main

import (
	"net/http"
	"os"

	"github.com/swimshark/website/internal/config"
	"github.com/swimshark/website/internal/logger"
	"github.com/swimshark/website/internal/mail"
)

func main() {
	var cfg config.Mailer
	if err := config.Load(&cfg); err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogFormat)
	cfg.Warn(log)

	from := mail.Identity{Name: cfg.FromName, Address: cfg.FromEmail}

	var sender mail.Sender
	switch cfg.Transport {
	case "sendmail":
		sender = &mail.SendmailSender{Path: cfg.SendmailPath, From: from}
	default:
		sender = &mail.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     from,
		}
	}

	svc := mail.NewService(sender, log)

	log.Info("swimshark mailer listening", "addr", cfg.Addr, "transport", cfg.Transport)
	if err := http.ListenAndServe(cfg.Addr, svc.Router()); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
