package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/swimshark/website/internal/models"
	"github.com/swimshark/website/internal/services"
	"github.com/swimshark/website/internal/store"
)

// timeslotOptions are the free-text slot labels offered on the inquiry
// form. They go to the store verbatim.
var timeslotOptions = []string{
	"Pondelok 16:00 – 17:00",
	"Streda 17:00 – 18:00",
	"Štvrtok 16:00 – 17:00",
	"Sobota 9:00 – 10:00",
}

func lessonFormData(r *http.Request, flash *Flash) map[string]any {
	return map[string]any{
		"Title":     "Žiadosť o lekcie",
		"Slots":     timeslotOptions,
		"Levels":    models.Levels,
		"Flash":     flash,
		"Form":      r.Form,
		"Timeslots": r.Form["timeslots"],
	}
}

// GET /lekcie/prihlasenie
func LessonForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		render(w, t, "lessons_form.tmpl", "lessons_form.tmpl", lessonFormData(r, nil))
	}
}

// POST /lekcie/prihlasenie
// Validates, writes the row, then queues the confirmation email. The email
// is best-effort: only the store write can fail the submission.
func LessonSubmit(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()

		fail := func(text string) {
			render(w, t, "lessons_form.tmpl", "lessons_form.tmpl", lessonFormData(r, &Flash{Kind: "error", Text: text}))
		}

		firstName := strings.TrimSpace(r.FormValue("first_name"))
		lastName := strings.TrimSpace(r.FormValue("last_name"))
		studentFirst := strings.TrimSpace(r.FormValue("student_first_name"))
		studentLast := strings.TrimSpace(r.FormValue("student_last_name"))
		dobStr := strings.TrimSpace(r.FormValue("student_dob"))
		if firstName == "" || lastName == "" || studentFirst == "" || studentLast == "" || dobStr == "" {
			fail("Vyplňte všetky povinné polia.")
			return
		}
		email, ok := services.NormEmail(r.FormValue("email"))
		if !ok {
			fail("Zadajte platný email.")
			return
		}
		dob, err := services.ParseISODate(dobStr)
		if err != nil {
			fail("Zadajte platný dátum narodenia.")
			return
		}
		if services.Years(dob, time.Now()) < 0 {
			fail("Dátum narodenia nemôže byť v budúcnosti.")
			return
		}

		timeslots := r.Form["timeslots"]
		if len(timeslots) == 0 {
			fail("Vyberte aspoň jeden termín.")
			return
		}
		if r.FormValue("consent") == "" {
			fail("Na odoslanie je potrebný súhlas so spracovaním osobných údajov.")
			return
		}

		level := r.FormValue("level")
		switch level {
		case models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced:
		default:
			level = models.LevelUnclassified
		}

		var health *string
		var hasHealth *bool
		switch r.FormValue("has_health_issues") {
		case "yes":
			desc := strings.TrimSpace(r.FormValue("health_issues"))
			if len([]rune(desc)) < 3 {
				fail("Popíšte prosím zdravotné obmedzenia (aspoň 3 znaky).")
				return
			}
			yes := true
			hasHealth, health = &yes, &desc
		case "no":
			no := false
			hasHealth = &no
		}

		inq := models.LessonInquiry{
			FirstName:        firstName,
			LastName:         lastName,
			Email:            email,
			Phone:            optional(r.FormValue("phone")),
			StudentFirstName: studentFirst,
			StudentLastName:  studentLast,
			StudentDOB:       dobStr,
			Timeslots:        timeslots,
			Level:            level,
			Preferences:      optional(r.FormValue("preferences")),
			HasHealthIssues:  hasHealth,
			HealthIssues:     health,
			SubmittedAt:      time.Now().UTC(),
		}

		if err := store.InsertLessonInquiry(inq); err != nil {
			fail("Nepodarilo sa odoslať formulár: " + err.Error())
			return
		}

		services.Confirm.LessonSubmitted(inq)
		http.Redirect(w, r, "/lekcie/dakujeme?meno="+url.QueryEscape(firstName), http.StatusSeeOther)
	}
}

// GET /lekcie/dakujeme — the success page carries no form, so a reload
// cannot resubmit.
func LessonThanks(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "lessons_thanks.tmpl", "lessons_thanks.tmpl", map[string]any{
			"Title": "Žiadosť prijatá",
			"Meno":  r.URL.Query().Get("meno"),
		})
	}
}

// optional turns an empty form value into nil so the store keeps null
// instead of "".
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
