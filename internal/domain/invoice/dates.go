package invoice

import (
	"errors"
	"strings"
	"time"
)

// Sentinel errors for the date resolver and age calculator. Rule code
// checks them with errors.Is and converts them into findings; they never
// escape a validation call.
var (
	ErrEmptyDate         = errors.New("fecha de atención vacía")
	ErrInvalidDateFormat = errors.New("formato de fecha de atención inválido")
	ErrInvalidBirthDate  = errors.New("fecha de nacimiento inválida")
)

const dateOnlyLayout = "2006-01-02"

// attentionLayouts are tried in order; more specific layouts come before
// the lossy 10-character prefix fallback so an ISO timestamp is parsed
// whole rather than truncated.
var attentionLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ResolveAttentionDate parses a loosely formatted fechaInicioAtencion
// string into a calendar date. An empty or blank string fails with
// ErrEmptyDate; a string that matches none of the known layouts and has
// no parseable yyyy-MM-dd prefix fails with ErrInvalidDateFormat.
func ResolveAttentionDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, ErrEmptyDate
	}
	for _, layout := range attentionLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Truncate(24 * time.Hour), nil
		}
	}
	if len(s) >= 10 {
		if t, err := time.Parse(dateOnlyLayout, s[:10]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}

// ParseBirthDate parses a fechaNacimiento string, which is always
// expected in yyyy-MM-dd form.
func ParseBirthDate(s string) (time.Time, error) {
	t, err := time.Parse(dateOnlyLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidBirthDate
	}
	return t, nil
}

// AgeAt returns the whole-years age (calendar period difference, leap
// years included) and the whole-days age (flat day count) between birth
// and attention.
func AgeAt(birth, attention time.Time) (years int, days int) {
	years = attention.Year() - birth.Year()
	if attention.Month() < birth.Month() ||
		(attention.Month() == birth.Month() && attention.Day() < birth.Day()) {
		years--
	}
	days = int(attention.Sub(birth) / (24 * time.Hour))
	return years, days
}

// dateKeyOf returns the date-only portion of an attention date string for
// duplicate keys: the first 10 characters when available, otherwise the
// raw value.
func dateKeyOf(fecha string) string {
	if len(fecha) >= 10 {
		return fecha[:10]
	}
	return fecha
}
