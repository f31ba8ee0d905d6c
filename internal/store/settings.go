package store

import (
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"github.com/swimshark/website/internal/models"
)

// turnusPlaceholders is how many empty rows the editor is seeded with when
// the store has no turnus rows yet. Seeds are never persisted until saved.
const turnusPlaceholders = 3

// saveSingleton upserts a fixed-id settings row. When the store rejects the
// write because one of the row's optional columns has not been migrated yet,
// the upsert is retried once without that column and a degraded-success
// message is returned instead of the error.
func saveSingleton(table string, row any) (degraded string, err error) {
	if client == nil {
		return "", ErrNotConfigured
	}
	_, _, err = client.From(table).Insert(row, true, "id", "", "").Execute()
	if err == nil || !compatShims {
		return "", err
	}
	col := UnknownColumn(err)
	if col == "" || col == "id" {
		return "", err
	}
	raw, merr := json.Marshal(row)
	if merr != nil {
		return "", err
	}
	var m map[string]any
	if json.Unmarshal(raw, &m) != nil {
		return "", err
	}
	if _, ok := m[col]; !ok {
		return "", err
	}
	delete(m, col)
	_, _, rerr := client.From(table).Insert(m, true, "id", "", "").Execute()
	if rerr != nil {
		return "", rerr
	}
	return fmt.Sprintf("Uložené bez poľa %s – v databáze chýba stĺpec (spustite migráciu).", col), nil
}

// GetLessonTerms loads the advertised course window (singleton, id 1).
// A store without the row yet yields an empty value with the fixed id.
func GetLessonTerms() (models.LessonTerms, error) {
	terms := models.LessonTerms{ID: 1}
	if client == nil {
		return terms, ErrNotConfigured
	}
	data, _, err := client.From("lesson_terms").Select("*", "", false).Eq("id", "1").Execute()
	if err != nil {
		return terms, err
	}
	var rows []models.LessonTerms
	if err := json.Unmarshal(data, &rows); err != nil {
		return terms, err
	}
	if len(rows) > 0 {
		terms = rows[0]
	}
	terms.ID = 1
	return terms, nil
}

// SaveLessonTerms upserts the course window. On a store that has not
// migrated course_name yet this degrades to saving the dates only.
func SaveLessonTerms(terms models.LessonTerms) (degraded string, err error) {
	terms.ID = 1
	return saveSingleton("lesson_terms", terms)
}

// GetCampSettings loads the singleton camp configuration row.
func GetCampSettings() (models.CampSettings, error) {
	settings := models.CampSettings{ID: 1}
	if client == nil {
		return settings, ErrNotConfigured
	}
	data, _, err := client.From("camp_settings").Select("*", "", false).Eq("id", "1").Execute()
	if err != nil {
		return settings, err
	}
	var rows []models.CampSettings
	if err := json.Unmarshal(data, &rows); err != nil {
		return settings, err
	}
	if len(rows) > 0 {
		settings = rows[0]
	}
	settings.ID = 1
	return settings, nil
}

// SaveCampSettings upserts the camp configuration row.
func SaveCampSettings(settings models.CampSettings) (degraded string, err error) {
	settings.ID = 1
	return saveSingleton("camp_settings", settings)
}

// ListTurnusy returns the camp sessions ordered by position. An empty store
// yields placeholder rows for the editor; those only reach the store once
// the admin saves them.
func ListTurnusy() ([]models.CampTurnus, error) {
	if client == nil {
		return nil, ErrNotConfigured
	}
	data, _, err := client.From("camp_turnusy").
		Select("*", "", false).
		Order("position", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, err
	}
	var rows []models.CampTurnus
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		rows = make([]models.CampTurnus, turnusPlaceholders)
		for i := range rows {
			rows[i].Position = i + 1
		}
	}
	return rows, nil
}

// SaveTurnusy persists the session list: rows the store already knows are
// upserted by id, new rows are inserted, rows with an empty label are
// dropped. Ids are store-assigned, so the saved list is reloaded rather
// than trusted from local state.
func SaveTurnusy(list []models.CampTurnus) ([]models.CampTurnus, error) {
	if client == nil {
		return nil, ErrNotConfigured
	}
	var existing, fresh []models.CampTurnus
	pos := 1
	for _, t := range list {
		if t.Label == "" {
			continue
		}
		t.Position = pos
		pos++
		if t.ID != nil {
			existing = append(existing, t)
		} else {
			fresh = append(fresh, t)
		}
	}
	if len(existing) > 0 {
		if _, _, err := client.From("camp_turnusy").Insert(existing, true, "id", "", "").Execute(); err != nil {
			return nil, err
		}
	}
	if len(fresh) > 0 {
		if _, _, err := client.From("camp_turnusy").Insert(fresh, false, "", "", "").Execute(); err != nil {
			return nil, err
		}
	}
	return ListTurnusy()
}

// ListPrices returns one price row per known course in the fixed order,
// merging in whatever the store has. Unknown course keys from the store are
// appended after the known set. Nil prices stay nil.
func ListPrices() ([]models.LessonPrice, error) {
	if client == nil {
		return nil, ErrNotConfigured
	}
	data, _, err := client.From("lesson_prices").Select("*", "", false).Execute()
	if err != nil {
		return nil, err
	}
	var stored []models.LessonPrice
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	byKey := make(map[string]models.LessonPrice, len(stored))
	for _, p := range stored {
		byKey[p.CourseKey] = p
	}
	out := make([]models.LessonPrice, 0, len(models.CourseKeys))
	for _, key := range models.CourseKeys {
		if p, ok := byKey[key]; ok {
			out = append(out, p)
			delete(byKey, key)
			continue
		}
		out = append(out, models.LessonPrice{CourseKey: key, CourseLabel: models.CourseLabels[key]})
	}
	for _, p := range stored {
		if _, leftover := byKey[p.CourseKey]; leftover {
			out = append(out, p)
		}
	}
	return out, nil
}

// SavePrices upserts the price rows by course_key.
func SavePrices(rows []models.LessonPrice) error {
	if client == nil {
		return ErrNotConfigured
	}
	_, _, err := client.From("lesson_prices").Insert(rows, true, "course_key", "", "").Execute()
	return err
}
