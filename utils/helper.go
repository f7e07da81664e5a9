package utils

import (
	"regexp"
	"strings"
	"time"
)

// NormalizeResi canonicalizes a raw resi (tracking) number: trim + uppercase.
// Every comparison in the system (duplicate check, courier detection,
// matching) runs on the normalized form; raw values are never compared.
func NormalizeResi(val string) string {
	return strings.ToUpper(strings.TrimSpace(val))
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NilIfEmpty maps "" to nil so optional columns store NULL, not empty string.
func NilIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	return &trimmed
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDateOrNow parses a date field from imported text. Missing or
// unparseable values default to the ingestion time.
func ParseDateOrNow(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}
