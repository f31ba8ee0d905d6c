package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/swimshark/website/internal/models"
	"github.com/swimshark/website/internal/store"
)

// GET /
func Home(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "home.tmpl", "home.tmpl", map[string]any{
			"Title": "SwimShark – plavecká škola",
		})
	}
}

// GET /o-nas
func About(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "about.tmpl", "about.tmpl", map[string]any{
			"Title": "O nás",
		})
	}
}

// GET /lekcie — course info personalized with the advertised window and the
// price list. A store outage degrades to the static page.
func LessonsInfo(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			terms  *models.LessonTerms
			prices []models.LessonPrice
		)
		if tm, err := store.GetLessonTerms(); err == nil && tm.StartDate != "" {
			terms = &tm
		} else if err != nil {
			slog.Warn("lesson terms unavailable", "err", err)
		}
		if p, err := store.ListPrices(); err == nil {
			prices = p
		} else {
			slog.Warn("lesson prices unavailable", "err", err)
		}
		render(w, t, "lessons_info.tmpl", "lessons_info.tmpl", map[string]any{
			"Title":  "Plavecké lekcie",
			"Terms":  terms,
			"Prices": prices,
		})
	}
}

// GET /letny-tabor — camp info with turnus list and price.
func CampInfo(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			turnusy  []models.CampTurnus
			settings *models.CampSettings
		)
		if list, err := store.ListTurnusy(); err == nil {
			for _, tr := range list {
				if tr.Label != "" {
					turnusy = append(turnusy, tr)
				}
			}
		} else {
			slog.Warn("camp turnus list unavailable", "err", err)
		}
		if s, err := store.GetCampSettings(); err == nil && s.PriceEUR > 0 {
			settings = &s
		} else if err != nil {
			slog.Warn("camp settings unavailable", "err", err)
		}
		render(w, t, "camp_info.tmpl", "camp_info.tmpl", map[string]any{
			"Title":    "Letný tábor",
			"Turnusy":  turnusy,
			"Settings": settings,
		})
	}
}
