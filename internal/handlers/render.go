package handlers

import (
	"html/template"
	"net/http"
)

// render clones the base template set, parses one page on top of it and
// executes it. Pages live under templates/pages.
func render(w http.ResponseWriter, t *template.Template, page, name string, data map[string]any) {
	view, err := t.Clone()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if _, err := view.ParseFiles("templates/pages/" + page); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if err := view.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

// Health handles GET /healthz.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
