package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/swimshark/website/internal/models"
	"github.com/swimshark/website/internal/services"
	"github.com/swimshark/website/internal/store"
)

// maxCampers is how many children one registration can cover.
const maxCampers = 5

// tshirtSizes offered on the camp form.
var tshirtSizes = []string{"98–104", "110–116", "122–128", "134–140", "146–152", "158–164"}

func campTurnusOptions() []models.CampTurnus {
	list, err := store.ListTurnusy()
	if err != nil {
		slog.Warn("camp turnus list unavailable", "err", err)
		return nil
	}
	out := make([]models.CampTurnus, 0, len(list))
	for _, t := range list {
		if t.Label != "" {
			out = append(out, t)
		}
	}
	return out
}

func campFormData(r *http.Request, turnusy []models.CampTurnus, flash *Flash) map[string]any {
	seats := make([]int, maxCampers)
	for i := range seats {
		seats[i] = i + 1
	}
	return map[string]any{
		"Title":   "Prihláška do letného tábora",
		"Turnusy": turnusy,
		"Sizes":   tshirtSizes,
		"Seats":   seats,
		"Flash":   flash,
		"Form":    r.Form,
	}
}

// GET /letny-tabor/prihlasenie
func CampForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		render(w, t, "camp_form.tmpl", "camp_form.tmpl", campFormData(r, campTurnusOptions(), nil))
	}
}

// POST /letny-tabor/prihlasenie
func CampSubmit(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		turnusy := campTurnusOptions()

		fail := func(text string) {
			render(w, t, "camp_form.tmpl", "camp_form.tmpl", campFormData(r, turnusy, &Flash{Kind: "error", Text: text}))
		}

		parentName := strings.TrimSpace(r.FormValue("parent_name"))
		if parentName == "" {
			fail("Meno rodiča je povinné.")
			return
		}
		email, ok := services.NormEmail(r.FormValue("email"))
		if !ok {
			fail("Zadajte platný email.")
			return
		}

		campers, err := parseCampers(r)
		if err != nil {
			fail(err.Error())
			return
		}

		turnus, ok := selectedTurnus(turnusy, r.FormValue("turnus"))
		if !ok {
			fail("Zvoľte týždeň.")
			return
		}
		if turnus.IsFull {
			fail("Zvolený turnus je už obsadený.")
			return
		}
		if r.FormValue("consent") == "" {
			fail("Na odoslanie je potrebný súhlas so spracovaním osobných údajov.")
			return
		}

		reg := models.CampRegistration{
			ParentName:    parentName,
			Email:         email,
			ParentPhone:   optional(r.FormValue("parent_phone")),
			Campers:       campers,
			PreferredWeek: fmt.Sprintf("%s (%s)", turnus.Label, turnus.DateRange()),
			Notes:         optional(r.FormValue("notes")),
			SubmittedAt:   time.Now().UTC(),
		}
		reg.SyncLegacy()

		if err := store.InsertCampRegistration(reg); err != nil {
			fail("Nepodarilo sa odoslať formulár: " + err.Error())
			return
		}

		services.Confirm.CampSubmitted(reg)
		http.Redirect(w, r, "/letny-tabor/dakujeme?meno="+url.QueryEscape(campers[0].Name), http.StatusSeeOther)
	}
}

// GET /letny-tabor/dakujeme
func CampThanks(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "camp_thanks.tmpl", "camp_thanks.tmpl", map[string]any{
			"Title": "Prihláška prijatá",
			"Meno":  r.URL.Query().Get("meno"),
		})
	}
}

// parseCampers collects the 1–5 camper blocks. A block counts as filled when
// it has a name; every filled block needs a valid birth date and the child
// must be at least four years old today.
func parseCampers(r *http.Request) ([]models.Camper, error) {
	var out []models.Camper
	now := time.Now()
	for i := 1; i <= maxCampers; i++ {
		name := strings.TrimSpace(r.FormValue(fmt.Sprintf("camper_name_%d", i)))
		dobStr := strings.TrimSpace(r.FormValue(fmt.Sprintf("camper_dob_%d", i)))
		if name == "" && dobStr == "" {
			continue
		}
		if name == "" || dobStr == "" {
			return nil, fmt.Errorf("Vyplňte meno aj dátum narodenia účastníka č. %d.", i)
		}
		dob, err := services.ParseISODate(dobStr)
		if err != nil {
			return nil, fmt.Errorf("Zadajte platný dátum narodenia účastníka č. %d.", i)
		}
		if services.Years(dob, now) < services.MinCampAge {
			return nil, fmt.Errorf("Vek účastníka musí byť aspoň %d roky.", services.MinCampAge)
		}
		out = append(out, models.Camper{
			Name:       name,
			DOB:        dobStr,
			TShirtSize: strings.TrimSpace(r.FormValue(fmt.Sprintf("camper_size_%d", i))),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("Zadajte aspoň jedného účastníka.")
	}
	return out, nil
}

func selectedTurnus(turnusy []models.CampTurnus, posStr string) (models.CampTurnus, bool) {
	pos, err := strconv.Atoi(posStr)
	if err != nil {
		return models.CampTurnus{}, false
	}
	for _, t := range turnusy {
		if t.Position == pos {
			return t, true
		}
	}
	return models.CampTurnus{}, false
}
