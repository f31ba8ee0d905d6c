package handlers

import (
	"net/http"
	"strings"
)

type Flash struct {
	Kind string // "ok" or "error"
	Text string
}

var okText = map[string]string{
	"saved":       "Uložené.",
	"terms_saved": "Termíny kurzu uložené.",
	"price_saved": "Ceny uložené.",
	"camp_saved":  "Nastavenia tábora uložené.",
}

var errText = map[string]string{
	"no_password":  "Heslo pre admina nie je nastavené na serveri.",
	"bad_password": "Nesprávne heslo.",
	"missing":      "Vyplňte všetky povinné polia.",
	"rls_denied":   "Zápis zamietnutý úložiskom – skontrolujte prístupové (RLS) politiky tabuľky.",
}

// MakeFlash builds a flash message from ?ok= / ?error= query params or from
// the explicit strings. Unknown keys pass through verbatim, which is how
// degraded-success and raw store messages travel across the redirect.
func MakeFlash(r *http.Request, errStr, msgStr string) *Flash {
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("error")); raw != "" {
		if t, ok := errText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "error", Text: t}
		}
		return &Flash{Kind: "error", Text: raw}
	}
	if raw := strings.TrimSpace(q.Get("ok")); raw != "" {
		if t, ok := okText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "ok", Text: t}
		}
		return &Flash{Kind: "ok", Text: raw}
	}

	if errStr != "" {
		return &Flash{Kind: "error", Text: errStr}
	}
	if msgStr != "" {
		return &Flash{Kind: "ok", Text: msgStr}
	}
	return nil
}
