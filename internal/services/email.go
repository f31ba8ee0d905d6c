package services

import (
	"net/mail"
	"strings"
)

// NormEmail lowercases and validates an address. Forms here always require
// one, so empty is not ok.
func NormEmail(s string) (string, bool) {
	e := strings.TrimSpace(strings.ToLower(s))
	if e == "" {
		return "", false
	}
	_, err := mail.ParseAddress(e)
	return e, err == nil
}
