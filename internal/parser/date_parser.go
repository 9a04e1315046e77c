package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

var (
	dateRegex  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	monthRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

// ParseDate parses a calendar date.
// Supported formats:
// - yyyy-mm-dd (e.g., "2026-09-01")
// - "today" / "yesterday" / "tomorrow"
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "today":
		return models.DateOf(now), nil
	case "yesterday":
		return models.DateOf(now).AddDate(0, 0, -1), nil
	case "tomorrow":
		return models.DateOf(now).AddDate(0, 0, 1), nil
	}

	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, apperr.Validationf("invalid date %q, use yyyy-mm-dd", input)
	}

	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	day, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return time.Time{}, apperr.Validationf("month must be between 1 and 12, got %d", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, apperr.Validationf("day must be between 1 and 31, got %d", day)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// Reject dates that normalized away (e.g. Feb 30)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, apperr.Validationf("invalid date %q", input)
	}

	return date, nil
}

// ParseMonth parses a "yyyy-mm" month reference.
func ParseMonth(input string) (year, month int, err error) {
	input = strings.TrimSpace(input)

	matches := monthRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return 0, 0, apperr.Validationf("invalid month %q, use yyyy-mm", input)
	}

	year, _ = strconv.Atoi(matches[1])
	month, _ = strconv.Atoi(matches[2])
	if month < 1 || month > 12 {
		return 0, 0, apperr.Validationf("month must be between 1 and 12, got %d", month)
	}
	return year, month, nil
}

// ParseDurationSeconds parses a timer duration into seconds.
// Supported formats:
// - bare minutes (e.g., "25")
// - Go durations (e.g., "25m", "1h30m")
func ParseDurationSeconds(input string) (int, error) {
	input = strings.TrimSpace(input)

	if minutes, err := strconv.Atoi(input); err == nil {
		if minutes <= 0 {
			return 0, apperr.Validationf("duration must be positive, got %d minutes", minutes)
		}
		return minutes * 60, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, apperr.Validationf("invalid duration %q, use minutes or 1h30m", input)
	}
	if d <= 0 {
		return 0, apperr.Validationf("duration must be positive, got %s", d)
	}
	return int(d.Seconds()), nil
}
