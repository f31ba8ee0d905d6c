package handlers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"html/template"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const adminCookieName = "admin_session"

// Sessions live server-side: the cookie only carries a random token. A
// restart logs admins out, which is acceptable for a single shared secret.
var adminSessions = struct {
	sync.Mutex
	tokens map[string]struct{}
}{tokens: make(map[string]struct{})}

var adminPassword string

// SetAdminPassword configures the shared admin secret. Empty disables login
// entirely (the login form reports it).
func SetAdminPassword(pw string) { adminPassword = pw }

func newSessionToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func adminAuthed(r *http.Request) bool {
	c, err := r.Cookie(adminCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	adminSessions.Lock()
	defer adminSessions.Unlock()
	_, ok := adminSessions.tokens[c.Value]
	return ok
}

// RequireAdmin blocks access unless logged in, remembering the requested
// path for the post-login redirect.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !adminAuthed(r) {
			http.Redirect(w, r, "/admin/prihlasenie?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GET /admin/prihlasenie
func AdminLoginForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if adminAuthed(r) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		render(w, t, "admin/login.tmpl", "admin/login.tmpl", map[string]any{
			"Title":    "Prihlásenie admin",
			"Next":     r.URL.Query().Get("next"),
			"Disabled": adminPassword == "",
			"Flash":    MakeFlash(r, "", ""),
		})
	}
}

// POST /admin/prihlasenie
func AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	next := r.FormValue("next")
	if adminPassword == "" {
		http.Redirect(w, r, "/admin/prihlasenie?error=no_password&next="+url.QueryEscape(next), http.StatusSeeOther)
		return
	}
	pw := r.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pw), []byte(adminPassword)) != 1 {
		http.Redirect(w, r, "/admin/prihlasenie?error=bad_password&next="+url.QueryEscape(next), http.StatusSeeOther)
		return
	}

	token := newSessionToken()
	adminSessions.Lock()
	adminSessions.tokens[token] = struct{}{}
	adminSessions.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	if next == "" {
		next = "/admin"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// POST /admin/odhlasenie
func AdminLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(adminCookieName); err == nil {
		adminSessions.Lock()
		delete(adminSessions.tokens, c.Value)
		adminSessions.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
