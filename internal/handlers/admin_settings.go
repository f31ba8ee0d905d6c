package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/swimshark/website/internal/models"
	"github.com/swimshark/website/internal/store"
)

// GET /admin/nastavenia — editors for the course window, prices, camp
// sessions and camp price.
func AdminSettings(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"Title":       "Nastavenia",
			"CourseNames": models.CourseNames,
			"Flash":       MakeFlash(r, "", ""),
		}
		if terms, err := store.GetLessonTerms(); err == nil {
			data["Terms"] = terms
		} else {
			slog.Warn("load lesson terms failed", "err", err)
		}
		if prices, err := store.ListPrices(); err == nil {
			data["Prices"] = prices
		} else {
			slog.Warn("load prices failed", "err", err)
		}
		if turnusy, err := store.ListTurnusy(); err == nil {
			data["Turnusy"] = turnusy
			data["NextPos"] = len(turnusy) + 1
		} else {
			slog.Warn("load turnusy failed", "err", err)
		}
		if settings, err := store.GetCampSettings(); err == nil {
			data["Camp"] = settings
		} else {
			slog.Warn("load camp settings failed", "err", err)
		}
		render(w, t, "admin/settings.tmpl", "admin/settings.tmpl", data)
	}
}

// settingsRedirect sends the admin back to the settings page with either a
// success (possibly degraded) or a classified error message.
func settingsRedirect(w http.ResponseWriter, r *http.Request, degraded, okKey string, err error) {
	switch {
	case err == nil && degraded != "":
		http.Redirect(w, r, "/admin/nastavenia?ok="+url.QueryEscape(degraded), http.StatusSeeOther)
	case err == nil:
		http.Redirect(w, r, "/admin/nastavenia?ok="+okKey, http.StatusSeeOther)
	case store.IsPermissionDenied(err):
		http.Redirect(w, r, "/admin/nastavenia?error=rls_denied", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/admin/nastavenia?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
	}
}

// POST /admin/nastavenia/terminy
func AdminSaveTerms(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	terms := models.LessonTerms{
		ID:         1,
		StartDate:  strings.TrimSpace(r.FormValue("start_date")),
		EndDate:    strings.TrimSpace(r.FormValue("end_date")),
		CourseName: r.FormValue("course_name"),
	}
	if terms.StartDate == "" || terms.EndDate == "" {
		http.Redirect(w, r, "/admin/nastavenia?error=missing", http.StatusSeeOther)
		return
	}
	degraded, err := store.SaveLessonTerms(terms)
	settingsRedirect(w, r, degraded, "terms_saved", err)
}

// POST /admin/nastavenia/ceny
func AdminSavePrices(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	rows := make([]models.LessonPrice, 0, len(models.CourseKeys))
	for _, key := range models.CourseKeys {
		rows = append(rows, models.LessonPrice{
			CourseKey:   key,
			CourseLabel: models.CourseLabels[key],
			Price2x:     parsePrice(r.FormValue("price_2x_" + key)),
			Price1x:     parsePrice(r.FormValue("price_1x_" + key)),
		})
	}
	settingsRedirect(w, r, "", "price_saved", store.SavePrices(rows))
}

// POST /admin/nastavenia/turnusy
func AdminSaveTurnusy(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	var list []models.CampTurnus
	for i := 1; ; i++ {
		label, ok := formValue(r, fmt.Sprintf("turnus_label_%d", i))
		if !ok {
			break
		}
		t := models.CampTurnus{
			Position:  i,
			Label:     strings.TrimSpace(label),
			StartDate: strings.TrimSpace(r.FormValue(fmt.Sprintf("turnus_start_%d", i))),
			EndDate:   strings.TrimSpace(r.FormValue(fmt.Sprintf("turnus_end_%d", i))),
			IsFull:    r.FormValue(fmt.Sprintf("turnus_full_%d", i)) != "",
		}
		if idStr := r.FormValue(fmt.Sprintf("turnus_id_%d", i)); idStr != "" {
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				t.ID = &id
			}
		}
		list = append(list, t)
	}
	// ids are store-assigned; the saved list is reloaded, not trusted
	_, err := store.SaveTurnusy(list)
	settingsRedirect(w, r, "", "saved", err)
}

// POST /admin/nastavenia/tabor
func AdminSaveCamp(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	price := parsePrice(r.FormValue("price_eur"))
	if price == nil {
		http.Redirect(w, r, "/admin/nastavenia?error=missing", http.StatusSeeOther)
		return
	}
	degraded, err := store.SaveCampSettings(models.CampSettings{ID: 1, PriceEUR: *price})
	settingsRedirect(w, r, degraded, "camp_saved", err)
}

// parsePrice keeps blank as nil (never coerced to 0) and accepts a decimal
// comma.
func parsePrice(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func formValue(r *http.Request, key string) (string, bool) {
	vs, ok := r.Form[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
