package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// templates are parsed relative to the repo root
	if err := os.Chdir("../.."); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRouterHealthz(t *testing.T) {
	r := Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	r := Router()
	req := httptest.NewRequest(http.MethodGet, "/admin/nastavenia", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if want := "/admin/prihlasenie?next=%2Fadmin%2Fnastavenia"; loc != want {
		t.Fatalf("expected login redirect %q, got %q", want, loc)
	}
}
