package handlers

import "time"

// Europe/Bratislava for all display formatting.
var tzBratislava *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/Bratislava")
	if err != nil {
		tzBratislava = time.UTC
		return
	}
	tzBratislava = loc
}

// fmtDateTime renders a submission timestamp, e.g. "02.01.2006 15:04".
func fmtDateTime(t time.Time) string {
	return t.In(tzBratislava).Format("02.01.2006 15:04")
}
