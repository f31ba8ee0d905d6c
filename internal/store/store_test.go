package store

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/swimshark/website/internal/models"
)

// fakeRest is a minimal PostgREST stand-in. Each table maps to a handler;
// every request body is recorded for assertions.
type fakeRest struct {
	tables   map[string]http.HandlerFunc
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Table  string
	Body   string
}

func (f *fakeRest) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
		body, _ := io.ReadAll(r.Body)
		f.requests = append(f.requests, recordedRequest{Method: r.Method, Table: table, Body: string(body)})
		if h, ok := f.tables[table]; ok {
			h(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}
}

func postgrestError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}

// startStore points the package at a fake PostgREST for the duration of the
// test.
func startStore(t *testing.T, fake *fakeRest, shims bool) {
	t.Helper()
	ts := httptest.NewServer(fake.handler())
	t.Cleanup(ts.Close)
	if err := Init(ts.URL, "test-anon-key", shims); err != nil {
		t.Fatalf("store init: %v", err)
	}
	t.Cleanup(func() { client = nil; compatShims = true })
}

func TestErrorClassification(t *testing.T) {
	drift := errors.New(`(PGRST204) Could not find the 'parent_phone' column of 'camp_registrations' in the schema cache`)
	if !IsUnknownColumn(drift, "parent_phone") {
		t.Error("drift error should match parent_phone")
	}
	if IsUnknownColumn(drift, "course_name") {
		t.Error("drift error must not match a different column")
	}
	if got := UnknownColumn(drift); got != "parent_phone" {
		t.Errorf("UnknownColumn = %q, want parent_phone", got)
	}
	if UnknownColumn(errors.New("connection refused")) != "" {
		t.Error("generic error must not name a column")
	}

	rls := errors.New(`(42501) new row violates row-level security policy for table "lesson_inquiries"`)
	if !IsPermissionDenied(rls) {
		t.Error("RLS violation should classify as permission denied")
	}
	if IsPermissionDenied(drift) {
		t.Error("drift error is not a permission problem")
	}
}

func TestInsertCampRegistrationDriftRetry(t *testing.T) {
	fake := &fakeRest{tables: map[string]http.HandlerFunc{}}
	calls := 0
	fake.tables["camp_registrations"] = func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			postgrestError(w, http.StatusBadRequest, "PGRST204",
				"Could not find the 'parent_phone' column of 'camp_registrations' in the schema cache")
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
	startStore(t, fake, true)

	phone := "0900 123 456"
	note := "Alergia na chlór"
	reg := models.CampRegistration{
		ParentName:  "Jana Malá",
		Email:       "jana@example.sk",
		ParentPhone: &phone,
		Notes:       &note,
		Campers:     []models.Camper{{Name: "Miško Malý", DOB: "2018-05-01"}},
	}
	if err := InsertCampRegistration(reg); err != nil {
		t.Fatalf("insert should succeed on retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 inserts, got %d", calls)
	}

	retryBody := fake.requests[len(fake.requests)-1].Body
	if strings.Contains(retryBody, "parent_phone") {
		t.Error("retry must not carry parent_phone")
	}
	var sent struct {
		Notes string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(retryBody), &sent); err != nil {
		t.Fatalf("retry body: %v", err)
	}
	if want := "Alergia na chlór\nTelefón: 0900 123 456"; sent.Notes != want {
		t.Errorf("notes = %q, want %q", sent.Notes, want)
	}
}

func TestInsertCampRegistrationDriftShimsOff(t *testing.T) {
	fake := &fakeRest{tables: map[string]http.HandlerFunc{}}
	calls := 0
	fake.tables["camp_registrations"] = func(w http.ResponseWriter, r *http.Request) {
		calls++
		postgrestError(w, http.StatusBadRequest, "PGRST204",
			"Could not find the 'parent_phone' column of 'camp_registrations' in the schema cache")
	}
	startStore(t, fake, false)

	phone := "0900 123 456"
	err := InsertCampRegistration(models.CampRegistration{
		ParentName:  "Jana Malá",
		Email:       "jana@example.sk",
		ParentPhone: &phone,
	})
	if err == nil {
		t.Fatal("with shims off the drift error must surface")
	}
	if calls != 1 {
		t.Fatalf("expected a single insert, got %d", calls)
	}
}

func TestSaveLessonTermsDegraded(t *testing.T) {
	fake := &fakeRest{tables: map[string]http.HandlerFunc{}}
	calls := 0
	fake.tables["lesson_terms"] = func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			postgrestError(w, http.StatusBadRequest, "PGRST204",
				"Could not find the 'course_name' column of 'lesson_terms' in the schema cache")
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
	startStore(t, fake, true)

	degraded, err := SaveLessonTerms(models.LessonTerms{
		StartDate: "2026-09-01", EndDate: "2026-12-18", CourseName: "Jesenný kurz",
	})
	if err != nil {
		t.Fatalf("save should degrade, not fail: %v", err)
	}
	if !strings.Contains(degraded, "course_name") {
		t.Errorf("degraded message should name the column, got %q", degraded)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 upserts, got %d", calls)
	}
	if strings.Contains(fake.requests[len(fake.requests)-1].Body, "course_name") {
		t.Error("retry must not carry course_name")
	}
}

func TestSaveLessonTermsCleanStore(t *testing.T) {
	fake := &fakeRest{tables: map[string]http.HandlerFunc{
		"lesson_terms": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		},
	}}
	startStore(t, fake, true)

	degraded, err := SaveLessonTerms(models.LessonTerms{StartDate: "2026-09-01", EndDate: "2026-12-18"})
	if err != nil || degraded != "" {
		t.Fatalf("clean save: degraded=%q err=%v", degraded, err)
	}
	if len(fake.requests) != 1 {
		t.Fatalf("expected a single upsert, got %d", len(fake.requests))
	}
}

func TestListTurnusyPlaceholders(t *testing.T) {
	fake := &fakeRest{tables: map[string]http.HandlerFunc{}}
	startStore(t, fake, true)

	rows, err := ListTurnusy()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != turnusPlaceholders {
		t.Fatalf("expected %d placeholders, got %d", turnusPlaceholders, len(rows))
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Errorf("placeholder %d has position %d", i, row.Position)
		}
		if row.ID != nil || row.Label != "" {
			t.Errorf("placeholder %d must be empty: %+v", i, row)
		}
	}
	for _, req := range fake.requests {
		if req.Method != http.MethodGet {
			t.Errorf("placeholders must never be written, saw %s", req.Method)
		}
	}
}

func TestSaveTurnusyDropsEmptyAndRenumbers(t *testing.T) {
	fake := &fakeRest{tables: map[string]http.HandlerFunc{}}
	id := int64(7)
	fake.tables["camp_turnusy"] = func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":7,"position":1,"label":"1. turnus","start_date":"2026-07-06","end_date":"2026-07-10","is_full":false}]`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
	startStore(t, fake, true)

	saved, err := SaveTurnusy([]models.CampTurnus{
		{Position: 1, Label: ""},
		{ID: &id, Position: 2, Label: "1. turnus", StartDate: "2026-07-06", EndDate: "2026-07-10"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(saved) != 1 || saved[0].Label != "1. turnus" {
		t.Fatalf("expected reload of the single saved row, got %+v", saved)
	}

	var wrote bool
	for _, req := range fake.requests {
		if req.Method != http.MethodPost {
			continue
		}
		wrote = true
		if strings.Contains(req.Body, `""`) && strings.Contains(req.Body, `"label":""`) {
			t.Error("empty-label rows must not be written")
		}
		if !strings.Contains(req.Body, `"position":1`) {
			t.Errorf("kept row should be renumbered to position 1, body: %s", req.Body)
		}
	}
	if !wrote {
		t.Fatal("no write reached the store")
	}
}

func TestListPricesMergeAndNulls(t *testing.T) {
	fake := &fakeRest{tables: map[string]http.HandlerFunc{
		"lesson_prices": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"course_key":"plutvove","course_label":"Plutvové plávanie","price_2x":50,"price_1x":null},
				{"course_key":"kondicne","course_label":"Kondičné plávanie","price_2x":80,"price_1x":45}
			]`))
		},
	}}
	startStore(t, fake, true)

	prices, err := ListPrices()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(prices) != len(models.CourseKeys)+1 {
		t.Fatalf("expected %d rows, got %d", len(models.CourseKeys)+1, len(prices))
	}
	for i, key := range models.CourseKeys {
		if prices[i].CourseKey != key {
			t.Errorf("row %d: key %q, want %q", i, prices[i].CourseKey, key)
		}
	}
	last := prices[len(prices)-1]
	if last.CourseKey != "plutvove" {
		t.Errorf("unknown key should come last, got %q", last.CourseKey)
	}
	if last.Price1x != nil {
		t.Error("null price must stay nil")
	}
	if last.Price2x == nil || *last.Price2x != 50 {
		t.Errorf("stored price lost: %+v", last)
	}
	// skupinove is not in the store, it must come back empty, not zero-priced
	if prices[0].CourseKey != "skupinove" || prices[0].Price2x != nil {
		t.Errorf("missing course must have nil prices: %+v", prices[0])
	}
}

func TestGetLessonTermsEmptyStore(t *testing.T) {
	fake := &fakeRest{tables: map[string]http.HandlerFunc{}}
	startStore(t, fake, true)

	terms, err := GetLessonTerms()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if terms.ID != 1 || terms.StartDate != "" {
		t.Fatalf("empty store should yield the zero singleton, got %+v", terms)
	}
}

func TestNotConfigured(t *testing.T) {
	client = nil
	if err := InsertContactMessage(models.ContactMessage{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := ListLessonInquiries(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
