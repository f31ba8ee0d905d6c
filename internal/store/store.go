// Package store talks to the hosted Supabase database through PostgREST.
// The store owns all data; nothing is cached here. Submission tables are
// insert-only, settings are small singleton/list rows edited from the admin
// area.
package store

import (
	"errors"
	"regexp"
	"strings"

	supa "github.com/supabase-community/supabase-go"
)

var (
	client      *supa.Client
	compatShims = true
)

// ErrNotConfigured is returned by every operation until Init succeeds.
var ErrNotConfigured = errors.New("databáza nie je nakonfigurovaná")

// Init connects the package to the hosted store. shims controls the
// schema-drift retries (see spec notes: they bridge a store whose migrations
// lag behind the code and should be switched off once obsolete).
func Init(url, anonKey string, shims bool) error {
	c, err := supa.NewClient(url, anonKey, nil)
	if err != nil {
		return err
	}
	client = c
	compatShims = shims
	return nil
}

// Ready reports whether Init has been called successfully.
func Ready() bool { return client != nil }

// unknownColumnRE pulls the column name out of PostgREST's "Could not find
// the 'x' column of 'table' in the schema cache" message.
var unknownColumnRE = regexp.MustCompile(`'([a-z0-9_]+)' column`)

// IsUnknownColumn reports whether err is the store rejecting a write because
// the named column does not exist in the deployed schema.
func IsUnknownColumn(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, strings.ToLower(column)) {
		return false
	}
	return strings.Contains(msg, "column") || strings.Contains(msg, "schema cache")
}

// UnknownColumn returns the missing column named in err, or "" when err is
// not an unknown-column failure.
func UnknownColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "column") && !strings.Contains(msg, "schema cache") {
		return ""
	}
	if m := unknownColumnRE.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return ""
}

// IsPermissionDenied reports whether err is the store denying a write due to
// its access policy (row-level security), as opposed to a generic failure.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "row-level security") ||
		strings.Contains(msg, "42501") ||
		strings.Contains(msg, "permission denied")
}
