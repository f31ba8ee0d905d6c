package handlers

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/swimshark/website/internal/models"
	"github.com/swimshark/website/internal/store"
)

// GET /admin — submission tables, one tab per form.
func AdminSubmissions(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := r.URL.Query().Get("tab")
		switch tab {
		case "tabor", "spravy":
		default:
			tab = "lekcie"
		}

		data := map[string]any{
			"Title": "Administrácia",
			"Tab":   tab,
			"Flash": MakeFlash(r, "", ""),
		}
		var err error
		switch tab {
		case "tabor":
			var rows []models.CampRegistration
			rows, err = store.ListCampRegistrations()
			data["Camp"] = rows
		case "spravy":
			var rows []models.ContactMessage
			rows, err = store.ListContactMessages()
			data["Messages"] = rows
		default:
			var rows []models.LessonInquiry
			rows, err = store.ListLessonInquiries()
			data["Lessons"] = rows
		}
		if err != nil {
			slog.Warn("admin list failed", "tab", tab, "err", err)
			data["LoadError"] = err.Error()
		}
		render(w, t, "admin/submissions.tmpl", "admin/submissions.tmpl", data)
	}
}

func csvHeader(w http.ResponseWriter, filename string) *csv.Writer {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	return csv.NewWriter(w)
}

// GET /admin/lekcie.csv
func AdminLessonsCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := store.ListLessonInquiries()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	cw := csvHeader(w, "lesson_inquiries.csv")
	_ = cw.Write([]string{
		"submitted_at", "first_name", "last_name", "email", "phone",
		"student_name", "student_dob", "timeslots", "level", "preferences",
		"has_health_issues", "health_issues", "id",
	})
	for _, q := range rows {
		_ = cw.Write([]string{
			fmtDateTime(q.SubmittedAt),
			q.FirstName, q.LastName, q.Email, deref(q.Phone),
			q.StudentName, q.StudentDOB, strings.Join(q.Timeslots, "; "),
			q.Level, deref(q.Preferences),
			boolStr(q.HasHealthIssues), deref(q.HealthIssues),
			q.ID,
		})
	}
	cw.Flush()
}

// GET /admin/tabor.csv
func AdminCampCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := store.ListCampRegistrations()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	cw := csvHeader(w, "camp_registrations.csv")
	_ = cw.Write([]string{
		"submitted_at", "parent_name", "email", "parent_phone",
		"campers", "preferred_week", "notes", "id",
	})
	for _, reg := range rows {
		campers := make([]string, 0, len(reg.Campers))
		for _, c := range reg.Campers {
			campers = append(campers, fmt.Sprintf("%s (%s, %s)", c.Name, c.DOB, c.TShirtSize))
		}
		if len(campers) == 0 && reg.CamperName != "" {
			// pre-multi-camper rows only carry the legacy columns
			campers = append(campers, fmt.Sprintf("%s (%s, %s)", reg.CamperName, reg.CamperDOB, reg.TShirtSize))
		}
		_ = cw.Write([]string{
			fmtDateTime(reg.SubmittedAt),
			reg.ParentName, reg.Email, deref(reg.ParentPhone),
			strings.Join(campers, "; "), reg.PreferredWeek, deref(reg.Notes),
			reg.ID,
		})
	}
	cw.Flush()
}

// GET /admin/spravy.csv
func AdminMessagesCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := store.ListContactMessages()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	cw := csvHeader(w, "contact_messages.csv")
	_ = cw.Write([]string{"submitted_at", "name", "email", "message", "id"})
	for _, m := range rows {
		_ = cw.Write([]string{fmtDateTime(m.SubmittedAt), m.Name, m.Email, m.Message, m.ID})
	}
	cw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolStr(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
