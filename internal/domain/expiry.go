package domain

import (
	"strings"
	"time"
)

// DefaultWindowDays is the "expiring soon" horizon used when none is given.
const DefaultWindowDays = 30

// ExpiryStatus classifies an expiry date against a reference day.
type ExpiryStatus string

const (
	ExpiryUndefined    ExpiryStatus = "UNDEFINED"
	ExpiryExpired      ExpiryStatus = "EXPIRED"
	ExpiryExpiringSoon ExpiryStatus = "EXPIRING_SOON"
	ExpiryValid        ExpiryStatus = "VALID"
)

// Label returns the display label used on screens and reports.
func (s ExpiryStatus) Label() string {
	switch s {
	case ExpiryExpired:
		return "Vencido"
	case ExpiryExpiringSoon:
		return "A vencer"
	case ExpiryValid:
		return "Vigente"
	default:
		return "Indefinido"
	}
}

// ParseExpiryStatus accepts the query vocabularies used by the listing screens
// (vencidos/a_vencer/validos and vencido/a_vencer/vigente) plus the English names.
func ParseExpiryStatus(raw string) (ExpiryStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "vencidos", "vencido", "expired":
		return ExpiryExpired, true
	case "a_vencer", "avencer", "expiring", "expiring_soon":
		return ExpiryExpiringSoon, true
	case "validos", "vigente", "vigentes", "valid":
		return ExpiryValid, true
	default:
		return "", false
	}
}

// Classify returns the status of expiresOn relative to today. The window is
// inclusive on both ends: a date equal to today or to today+windowDays is
// ExpiringSoon.
func Classify(expiresOn *time.Time, today time.Time, windowDays int) ExpiryStatus {
	if expiresOn == nil {
		return ExpiryUndefined
	}
	exp := DateOf(*expiresOn)
	ref := DateOf(today)
	switch {
	case exp.Before(ref):
		return ExpiryExpired
	case !exp.After(WindowEnd(ref, windowDays)):
		return ExpiryExpiringSoon
	default:
		return ExpiryValid
	}
}

// NormalizeWindowDays replaces non-positive windows with the default.
func NormalizeWindowDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	return days
}

// WindowEnd returns the last day still considered "expiring soon".
func WindowEnd(today time.Time, windowDays int) time.Time {
	return DateOf(today).AddDate(0, 0, NormalizeWindowDays(windowDays))
}

// DateOf truncates t to its calendar date at 00:00 UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole days between reference and expiresOn. Negative
// values mean the date is already past.
func DaysUntil(expiresOn, reference time.Time) int {
	return int(DateOf(expiresOn).Sub(DateOf(reference)).Hours() / 24)
}

// Category identifies one of the per-employee mandatory documents.
type Category string

const (
	CategoryHealth     Category = "aso"
	CategoryCredential Category = "carteira"
	CategoryToxicology Category = "toxico"
)

// Categories lists the employee document categories in display order.
var Categories = []Category{CategoryHealth, CategoryCredential, CategoryToxicology}

// ParseCategory maps the "doc" query parameter to a Category.
func ParseCategory(raw string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "aso", "health":
		return CategoryHealth, true
	case "carteira", "cnh", "credential":
		return CategoryCredential, true
	case "toxico", "toxicologico", "toxicology":
		return CategoryToxicology, true
	default:
		return "", false
	}
}

// Title returns the human readable category name.
func (c Category) Title() string {
	switch c {
	case CategoryHealth:
		return "ASO"
	case CategoryCredential:
		return "Carteira/CNH"
	case CategoryToxicology:
		return "Exame Toxicológico"
	default:
		return string(c)
	}
}

// ExpiryEntry is a (name, date) pair shown on dashboard cards.
type ExpiryEntry struct {
	Name      string    `json:"name"`
	ExpiresOn time.Time `json:"expires_on"`
}
