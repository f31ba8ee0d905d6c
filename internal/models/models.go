package models

import "time"

// Swimmer levels accepted on the lesson inquiry form. LevelUnclassified is
// the sentinel stored when the visitor did not pick one.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelUnclassified = "unclassified"
)

// Levels lists the selectable (non-sentinel) levels in display order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// LessonInquiry is one submission of the lesson inquiry form. Rows are
// insert-only; the id is assigned by the store.
type LessonInquiry struct {
	ID               string  `json:"id,omitempty"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	StudentFirstName string  `json:"student_first_name"`
	StudentLastName  string  `json:"student_last_name"`
	// Concatenated first + last name of the swimmer. Older rows only have
	// this column, so it is still written on every insert.
	StudentName     string    `json:"student_name"`
	StudentDOB      string    `json:"student_dob"` // ISO date
	Timeslots       []string  `json:"timeslots"`
	Level           string    `json:"level"`
	Preferences     *string   `json:"preferences"`
	HasHealthIssues *bool     `json:"has_health_issues"`
	HealthIssues    *string   `json:"health_issues"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// Camper is one child on a camp registration (1–5 per submission).
type Camper struct {
	Name       string `json:"name"`
	DOB        string `json:"dob"` // ISO date
	TShirtSize string `json:"t_shirt_size"`
}

// CampRegistration is one submission of the summer camp form.
// camper_name, camper_dob and t_shirt_size mirror the first camper for rows
// written before multi-camper support; SyncLegacy fills them.
type CampRegistration struct {
	ID         string `json:"id,omitempty"`
	ParentName string `json:"parent_name"`
	Email      string `json:"email"`
	// Added after the initial schema; the insert path tolerates its absence.
	ParentPhone *string `json:"parent_phone,omitempty"`

	CamperName string   `json:"camper_name"`
	CamperDOB  string   `json:"camper_dob"`
	Campers    []Camper `json:"campers"`

	PreferredWeek string    `json:"preferred_week"`
	TShirtSize    string    `json:"t_shirt_size"`
	Notes         *string   `json:"notes"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// SyncLegacy computes the single-camper compatibility columns from the first
// entry of Campers. Called at the serialization boundary, never kept as
// independent state.
func (r *CampRegistration) SyncLegacy() {
	if len(r.Campers) == 0 {
		return
	}
	r.CamperName = r.Campers[0].Name
	r.CamperDOB = r.Campers[0].DOB
	r.TShirtSize = r.Campers[0].TShirtSize
}

// ContactMessage is one submission of the contact form.
type ContactMessage struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// LessonTerms is the advertised course window, a singleton row with id 1.
type LessonTerms struct {
	ID        int    `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	// Seasonal course name; the column may be missing on stores that have
	// not run the migration yet, the save path tolerates that.
	CourseName string `json:"course_name,omitempty"`
}

// CourseNames are the seasonal names selectable for LessonTerms.
var CourseNames = []string{"Jarný kurz", "Letný kurz", "Jesenný kurz", "Zimný kurz"}

// CampTurnus is one selectable week-long camp session. Ordering is by
// Position; IsFull keeps the option visible but disabled on the form.
type CampTurnus struct {
	ID        *int64 `json:"id,omitempty"` // store-assigned on insert
	Position  int    `json:"position"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsFull    bool   `json:"is_full"`
}

// DateRange renders the turnus window the way the site shows it,
// e.g. "30.6 – 4.7.2025".
func (t CampTurnus) DateRange() string {
	if t.StartDate == "" && t.EndDate == "" {
		return ""
	}
	return t.StartDate + " – " + t.EndDate
}

// CampSettings is the singleton camp configuration row (id 1).
type CampSettings struct {
	ID       int     `json:"id"`
	PriceEUR float64 `json:"price_eur"`
}

// LessonPrice is the price row for one course, keyed by CourseKey for
// upserts. Prices are per plan: two visits a week vs one. A nil price means
// "not offered", which must survive a save/load round-trip as nil.
type LessonPrice struct {
	CourseKey   string   `json:"course_key"`
	CourseLabel string   `json:"course_label"`
	Price2x     *float64 `json:"price_2x"`
	Price1x     *float64 `json:"price_1x"`
}

// CourseKeys is the fixed, ordered set of known courses. Unknown keys coming
// back from the store are appended after these.
var CourseKeys = []string{"skupinove", "kondicne", "deti_3_4", "deti_11"}

// CourseLabels maps course keys to display names.
var CourseLabels = map[string]string{
	"skupinove": "Skupinové plávanie",
	"kondicne":  "Kondičné plávanie",
	"deti_3_4":  "Kurz pre 3–4 ročné deti",
	"deti_11":   "Deti 11+",
}
