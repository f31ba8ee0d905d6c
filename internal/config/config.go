package config

import (
	"log/slog"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var loadDotenv sync.Once

// Server holds configuration for the website binary. Every value comes from
// the environment (optionally via a .env file). Nothing here is required at
// startup: missing store or mail settings degrade the respective feature and
// are reported by Warn, they never prevent the process from starting.
type Server struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // text | json

	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY"`

	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Endpoint of the mail service (cmd/mailer), e.g. http://localhost:5179.
	MailEndpoint string `env:"MAIL_ENDPOINT"`
	// Optional document attached to camp confirmations (fetched at send time).
	CampDocURL string `env:"CAMP_DOC_URL"`
	// Local sqlite file recording outbound confirmation attempts.
	MailLogPath string `env:"MAIL_LOG_DB" envDefault:"maillog.db"`

	// Schema-drift retry shims (parent_phone, course_name). These exist to
	// bridge a store whose migrations lag behind the code; switch off once
	// the columns are everywhere.
	CompatShims bool `env:"COMPAT_SHIMS" envDefault:"true"`

	TelegramToken  string `env:"TG_BOT_TOKEN"`
	TelegramChatID int64  `env:"TG_ADMIN_CHAT"`
}

// Mailer holds configuration for the standing mail service.
type Mailer struct {
	Addr      string `env:"MAILER_ADDR" envDefault:":5179"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// smtp sends through an authenticated relay, sendmail pipes the message
	// to a local MTA binary. Both speak the same HTTP contract.
	Transport string `env:"MAIL_TRANSPORT" envDefault:"smtp"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`

	SendmailPath string `env:"SENDMAIL_PATH" envDefault:"/usr/sbin/sendmail"`

	// Fixed sender identity used on From/Reply-To of every message.
	FromEmail string `env:"MAIL_FROM" envDefault:"swimtest@swimtest.sk"`
	FromName  string `env:"MAIL_FROM_NAME" envDefault:"SwimShark"`
}

// Load fills cfg from the environment, reading .env once if present.
func Load[T any](cfg *T) error {
	loadDotenv.Do(func() {
		_ = godotenv.Load() // missing .env is fine
	})
	return env.Parse(cfg)
}

// Warn logs a warning for each missing value that disables a feature.
func (c Server) Warn(log *slog.Logger) {
	if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
		log.Warn("supabase env missing: SUPABASE_URL and SUPABASE_ANON_KEY must be set, form submissions will fail")
	}
	if c.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD not set, admin login is disabled")
	}
	if c.MailEndpoint == "" {
		log.Warn("MAIL_ENDPOINT not set, confirmation emails will not be sent")
	}
}

// Warn logs a warning for incomplete transport settings.
func (c Mailer) Warn(log *slog.Logger) {
	if c.Transport == "smtp" && (c.SMTPHost == "" || c.SMTPUser == "" || c.SMTPPass == "") {
		log.Warn("SMTP env missing: SMTP_HOST, SMTP_USER, SMTP_PASS must be set")
	}
}
