package web

import (
	"html"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swimshark/website/internal/handlers"
)

func Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	tmpl := mustParseTemplates("templates")

	// Public pages
	r.Get("/", handlers.Home(tmpl))
	r.Get("/o-nas", handlers.About(tmpl))
	r.Get("/healthz", handlers.Health)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// --- Lessons: info page + inquiry form ---
	r.Get("/lekcie", handlers.LessonsInfo(tmpl))
	r.Get("/lekcie/prihlasenie", handlers.LessonForm(tmpl))
	r.Post("/lekcie/prihlasenie", handlers.LessonSubmit(tmpl))
	r.Get("/lekcie/dakujeme", handlers.LessonThanks(tmpl))

	// --- Summer camp: info page + registration ---
	r.Get("/letny-tabor", handlers.CampInfo(tmpl))
	r.Get("/letny-tabor/prihlasenie", handlers.CampForm(tmpl))
	r.Post("/letny-tabor/prihlasenie", handlers.CampSubmit(tmpl))
	r.Get("/letny-tabor/dakujeme", handlers.CampThanks(tmpl))

	// --- Contact ---
	r.Get("/kontakt", handlers.ContactForm(tmpl))
	r.Post("/kontakt", handlers.ContactSubmit(tmpl))
	r.Get("/kontakt/dakujeme", handlers.ContactThanks(tmpl))

	// --- Admin routes (with login + guard) ---
	r.Route("/admin", func(ar chi.Router) {
		// Auth endpoints (public)
		ar.Get("/prihlasenie", handlers.AdminLoginForm(tmpl))
		ar.Post("/prihlasenie", handlers.AdminLoginSubmit)
		ar.Post("/odhlasenie", handlers.AdminLogout)

		// Guarded admin pages
		ar.Group(func(ag chi.Router) {
			ag.Use(handlers.RequireAdmin)

			// Submissions tables + CSV exports
			ag.Get("/", handlers.AdminSubmissions(tmpl))
			ag.Get("/lekcie.csv", handlers.AdminLessonsCSV)
			ag.Get("/tabor.csv", handlers.AdminCampCSV)
			ag.Get("/spravy.csv", handlers.AdminMessagesCSV)

			// Settings
			ag.Get("/nastavenia", handlers.AdminSettings(tmpl))
			ag.Post("/nastavenia/terminy", handlers.AdminSaveTerms)
			ag.Post("/nastavenia/ceny", handlers.AdminSavePrices)
			ag.Post("/nastavenia/turnusy", handlers.AdminSaveTurnusy)
			ag.Post("/nastavenia/tabor", handlers.AdminSaveCamp)

			// Mail audit log
			ag.Get("/emaily", handlers.AdminMailLog(tmpl))

			// Printable QR posters for the public forms
			ag.Get("/qr/{form}.png", handlers.AdminQR)
		})
	})

	return r
}

func mustParseTemplates(baseDir string) *template.Template {
	loc, err := time.LoadLocation("Europe/Bratislava")
	if err != nil {
		loc = time.FixedZone("CET", 3600)
	}

	funcs := template.FuncMap{
		"year": func() string { return time.Now().Format("2006") },
		"has": func(list []string, v string) bool {
			for _, s := range list {
				if s == v {
					return true
				}
			}
			return false
		},
		"fmtDate":     func(t time.Time) string { return t.In(loc).Format("02.01.2006") },
		"fmtDateTime": func(t time.Time) string { return t.In(loc).Format("02.01.2006 15:04") },
		"num": func(p *float64) string {
			if p == nil {
				return ""
			}
			return strconv.FormatFloat(*p, 'f', -1, 64)
		},
		"eur": func(p *float64) string {
			if p == nil {
				return "–"
			}
			s := strconv.FormatFloat(*p, 'f', -1, 64)
			return strings.Replace(s, ".", ",", 1) + " €"
		},
		"nl2br": func(s string) template.HTML {
			if s == "" {
				return ""
			}
			ss := strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
			esc := html.EscapeString(ss)
			esc = strings.ReplaceAll(esc, "\n", "<br>")
			return template.HTML(esc)
		},
	}

	p := template.New("").Funcs(funcs)
	p = template.Must(p.ParseGlob(filepath.Join(baseDir, "layouts", "*.tmpl")))
	p = template.Must(p.ParseGlob(filepath.Join(baseDir, "partials", "*.tmpl")))
	return p
}
