package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/swimshark/website/internal/maillog"
)

// GET /admin/emaily — recent confirmation-mail attempts from the local
// audit log. The log survives even when the store or mailer is down.
func AdminMailLog(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := maillog.Recent(200)
		if err != nil {
			slog.Warn("load mail log failed", "err", err)
		}
		render(w, t, "admin/maillog.tmpl", "admin/maillog.tmpl", map[string]any{
			"Title":     "Odoslané e-maily",
			"Entries":   entries,
			"LoadError": err != nil,
		})
	}
}
