package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeCounterpart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Goldman Sachs", "GoldmanSachs"},
		{"GoldmanSachs", "GoldmanSachs"},
		{"  JP  Morgan ", "JPMorgan"},
		{"UBS", "UBS"},
		{"", ""},
		{"  \t ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeCounterpart(tt.in); got != tt.want {
			t.Errorf("NormalizeCounterpart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePublishedDate(t *testing.T) {
	now := time.Date(2025, 11, 20, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso date", "2025-11-09", "2025-11-09"},
		{"rfc3339", "2025-11-09T10:30:00Z", "2025-11-09"},
		{"timestamp without zone", "2025-11-09T10:30:00", "2025-11-09"},
		{"slash form", "2025/11/09", "2025-11-09"},
		{"long month", "November 9, 2025", "2025-11-09"},
		{"short month", "Nov 9, 2025", "2025-11-09"},
		{"surrounding space", "  2025-11-09  ", "2025-11-09"},
		{"empty defaults to today", "", "2025-11-20"},
		{"placeholder defaults to today", "N/A", "2025-11-20"},
		{"unknown defaults to today", "unknown", "2025-11-20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePublishedDate(tt.in, now)
			if err != nil {
				t.Fatalf("NormalizePublishedDate(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePublishedDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizePublishedDateRejectsGarbage(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"not a date", "2025-13-45", "9th of November"} {
		_, err := NormalizePublishedDate(in, now)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("NormalizePublishedDate(%q) error = %v, want ErrValidation", in, err)
		}
	}
}

func TestValidateDateFilter(t *testing.T) {
	if err := ValidateDateFilter("start_date", ""); err != nil {
		t.Errorf("empty bound should be valid, got %v", err)
	}
	if err := ValidateDateFilter("start_date", "2025-01-02"); err != nil {
		t.Errorf("ISO bound should be valid, got %v", err)
	}
	if err := ValidateDateFilter("start_date", "01/02/2025"); !errors.Is(err, ErrValidation) {
		t.Errorf("non-ISO bound error = %v, want ErrValidation", err)
	}
}
