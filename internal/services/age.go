package services

import "time"

// MinCampAge is the youngest camper the summer camp takes.
const MinCampAge = 4

// ParseISODate parses the yyyy-mm-dd value date inputs submit.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Years returns full elapsed years between dob and on: the calendar-year
// difference, minus one if on's month/day haven't reached the birthday yet.
func Years(dob, on time.Time) int {
	years := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		years--
	}
	return years
}
