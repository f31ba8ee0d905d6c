package handlers

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/swimshark/website/internal/models"
	"github.com/swimshark/website/internal/services"
	"github.com/swimshark/website/internal/store"
)

func contactFormData(r *http.Request, flash *Flash) map[string]any {
	return map[string]any{
		"Title": "Kontakt",
		"Flash": flash,
		"Form":  r.Form,
	}
}

// GET /kontakt
func ContactForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		render(w, t, "contact.tmpl", "contact.tmpl", contactFormData(r, nil))
	}
}

// POST /kontakt
func ContactSubmit(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()

		fail := func(text string) {
			render(w, t, "contact.tmpl", "contact.tmpl", contactFormData(r, &Flash{Kind: "error", Text: text}))
		}

		name := strings.TrimSpace(r.FormValue("name"))
		message := strings.TrimSpace(r.FormValue("message"))
		if name == "" || message == "" {
			fail("Vyplňte všetky povinné polia.")
			return
		}
		email, ok := services.NormEmail(r.FormValue("email"))
		if !ok {
			fail("Zadajte platný email.")
			return
		}
		if r.FormValue("consent") == "" {
			fail("Na odoslanie je potrebný súhlas so spracovaním osobných údajov.")
			return
		}

		cm := models.ContactMessage{
			Name:        name,
			Email:       email,
			Message:     message,
			SubmittedAt: time.Now().UTC(),
		}
		if err := store.InsertContactMessage(cm); err != nil {
			fail("Nepodarilo sa odoslať formulár: " + err.Error())
			return
		}

		services.Confirm.ContactSubmitted(cm)
		http.Redirect(w, r, "/kontakt/dakujeme", http.StatusSeeOther)
	}
}

// GET /kontakt/dakujeme
func ContactThanks(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "contact_thanks.tmpl", "contact_thanks.tmpl", map[string]any{
			"Title": "Správa odoslaná",
		})
	}
}
