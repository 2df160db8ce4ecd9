package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical published_date form. Everything stored passes
// through NormalizePublishedDate first, which is what makes lexicographic
// range filtering on the column valid.
const DateLayout = "2006-01-02"

// NormalizeTagName trims surrounding whitespace from a tag name.
func NormalizeTagName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeCounterpart strips all whitespace from a counterpart name
// ("Goldman Sachs" -> "GoldmanSachs") to tolerate formatting drift between
// the taxonomy file and extraction payloads. Applied identically on the
// linking and query paths so stored and queried forms agree. Counterpart
// only — other categories match verbatim.
func NormalizeCounterpart(name string) string {
	return strings.Join(strings.Fields(name), "")
}

// datePlaceholders are values upstream systems emit when the publication
// date is unknown. They normalize to "today" rather than failing ingestion.
var datePlaceholders = map[string]struct{}{
	"":        {},
	"-":       {},
	"n/a":     {},
	"na":      {},
	"none":    {},
	"null":    {},
	"tbd":     {},
	"unknown": {},
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// NormalizePublishedDate coerces a free-form date to canonical YYYY-MM-DD.
// Missing or placeholder values default to now's date; anything unparseable
// is a validation error.
func NormalizePublishedDate(raw string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if _, ok := datePlaceholders[strings.ToLower(trimmed)]; ok {
		return now.Format(DateLayout), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", NewValidationError("published_date", fmt.Sprintf("unrecognized date %q", raw))
}

// ValidateDateFilter checks a query-side date bound. Empty means unset.
func ValidateDateFilter(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return NewValidationError(field, fmt.Sprintf("must be YYYY-MM-DD, got %q", value))
	}
	return nil
}
