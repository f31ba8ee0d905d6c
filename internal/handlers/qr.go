package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// Printable posters link straight to the two public forms.
var qrTargets = map[string]string{
	"lekcie": "/lekcie/prihlasenie",
	"tabor":  "/letny-tabor/prihlasenie",
}

// GET /admin/qr/{form}.png
func AdminQR(w http.ResponseWriter, r *http.Request) {
	target, ok := qrTargets[chi.URLParam(r, "form")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	png, err := qrcode.Encode("https://"+r.Host+target, qrcode.Medium, 512)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
