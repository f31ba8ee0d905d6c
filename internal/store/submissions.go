package store

import (
	"encoding/json"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"github.com/swimshark/website/internal/models"
)

// InsertLessonInquiry writes one inquiry row. Any store error is returned
// verbatim so the form can show it to the visitor.
func InsertLessonInquiry(inq models.LessonInquiry) error {
	if client == nil {
		return ErrNotConfigured
	}
	inq.StudentName = strings.TrimSpace(inq.StudentFirstName + " " + inq.StudentLastName)
	_, _, err := client.From("lesson_inquiries").Insert(inq, false, "", "", "").Execute()
	return err
}

// InsertCampRegistration writes one camp registration. parent_phone was
// added after the initial deployment: when the store still lacks the column
// the insert is retried once without it, folding the phone into the notes so
// the information is not lost.
func InsertCampRegistration(reg models.CampRegistration) error {
	if client == nil {
		return ErrNotConfigured
	}
	reg.SyncLegacy()
	_, _, err := client.From("camp_registrations").Insert(reg, false, "", "", "").Execute()
	if err == nil {
		return nil
	}
	if compatShims && reg.ParentPhone != nil && IsUnknownColumn(err, "parent_phone") {
		retry := reg
		note := "Telefón: " + *reg.ParentPhone
		if retry.Notes != nil && strings.TrimSpace(*retry.Notes) != "" {
			note = strings.TrimSpace(*retry.Notes) + "\n" + note
		}
		retry.Notes = &note
		retry.ParentPhone = nil
		_, _, err = client.From("camp_registrations").Insert(retry, false, "", "", "").Execute()
	}
	return err
}

// InsertContactMessage writes one contact-form row.
func InsertContactMessage(msg models.ContactMessage) error {
	if client == nil {
		return ErrNotConfigured
	}
	_, _, err := client.From("contact_messages").Insert(msg, false, "", "", "").Execute()
	return err
}

func listNewestFirst(table string, dst any) error {
	if client == nil {
		return ErrNotConfigured
	}
	data, _, err := client.From(table).
		Select("*", "", false).
		Order("submitted_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// ListLessonInquiries returns all inquiries, newest first.
func ListLessonInquiries() ([]models.LessonInquiry, error) {
	var rows []models.LessonInquiry
	err := listNewestFirst("lesson_inquiries", &rows)
	return rows, err
}

// ListCampRegistrations returns all camp registrations, newest first.
func ListCampRegistrations() ([]models.CampRegistration, error) {
	var rows []models.CampRegistration
	err := listNewestFirst("camp_registrations", &rows)
	return rows, err
}

// ListContactMessages returns all contact messages, newest first.
func ListContactMessages() ([]models.ContactMessage, error) {
	var rows []models.ContactMessage
	err := listNewestFirst("contact_messages", &rows)
	return rows, err
}
