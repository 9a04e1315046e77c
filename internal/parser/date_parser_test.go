package parser

import (
	"testing"
	"time"

	"github.com/timeblockhq/timeblock/internal/apperr"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"iso date", "2026-08-10", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), false},
		{"single digit parts", "2026-8-5", time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), false},
		{"today", "today", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), false},
		{"yesterday", "yesterday", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow", "TOMORROW", time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), false},
		{"padded input", "  today  ", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), false},
		{"feb 30 rejected", "2026-02-30", time.Time{}, true},
		{"month 13 rejected", "2026-13-01", time.Time{}, true},
		{"day 32 rejected", "2026-01-32", time.Time{}, true},
		{"slashes rejected", "2026/08/10", time.Time{}, true},
		{"garbage rejected", "next tuesday", time.Time{}, true},
		{"empty rejected", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			if tt.wantErr {
				if !apperr.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantYear  int
		wantMonth int
		wantErr   bool
	}{
		{"full month", "2026-08", 2026, 8, false},
		{"single digit", "2026-8", 2026, 8, false},
		{"month 13 rejected", "2026-13", 0, 0, true},
		{"month zero rejected", "2026-0", 0, 0, true},
		{"date rejected", "2026-08-10", 0, 0, true},
		{"garbage rejected", "august", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month, err := ParseMonth(tt.input)
			if tt.wantErr {
				if !apperr.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("expected %d-%d, got %d-%d", tt.wantYear, tt.wantMonth, year, month)
			}
		})
	}
}

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"bare minutes", "25", 1500, false},
		{"go duration minutes", "25m", 1500, false},
		{"hours and minutes", "1h30m", 5400, false},
		{"seconds", "90s", 90, false},
		{"zero rejected", "0", 0, true},
		{"negative rejected", "-5", 0, true},
		{"negative duration rejected", "-5m", 0, true},
		{"garbage rejected", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDurationSeconds(tt.input)
			if tt.wantErr {
				if !apperr.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d seconds, got %d", tt.want, got)
			}
		})
	}
}
