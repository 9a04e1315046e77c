package heatmap

import (
	"testing"
	"time"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{1, 1},
		{59, 1},
		{60, 1},
		{61, 2},
		{180, 2},
		{181, 3},
		{300, 3},
		{301, 4},
		{1440, 4},
	}

	for _, tt := range tests {
		if got := Level(tt.minutes); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	focus := map[time.Time]int{
		day(2024, time.December, 30): 45,  // window start, a Monday
		day(2025, time.January, 1):   200, // Wednesday of week 0
		day(2025, time.March, 10):    350, // Monday of week 10
	}

	grid, err := Build(2025, focus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Dec 31 2025 is a Wednesday; minus 364 days lands on Jan 1 2025,
	// which walks back to Monday Dec 30 2024.
	if !grid.StartDate.Equal(day(2024, time.December, 30)) {
		t.Errorf("unexpected start date %v", grid.StartDate)
	}
	if grid.StartDate.Weekday() != time.Monday {
		t.Errorf("start date is %v, want Monday", grid.StartDate.Weekday())
	}
	if !grid.EndDate.Equal(day(2025, time.December, 31)) {
		t.Errorf("unexpected end date %v", grid.EndDate)
	}

	cells := []struct {
		name        string
		day, week   int
		wantMinutes int
		wantLevel   int
	}{
		{"window start", 0, 0, 45, 1},
		{"new year's day", 2, 0, 200, 3},
		{"march monday", 0, 10, 350, 4},
		{"quiet day", 1, 0, 0, 0},
	}
	for _, c := range cells {
		if got := grid.Minutes[c.day][c.week]; got != c.wantMinutes {
			t.Errorf("%s: minutes[%d][%d] = %d, want %d", c.name, c.day, c.week, got, c.wantMinutes)
		}
		if got := grid.Levels[c.day][c.week]; got != c.wantLevel {
			t.Errorf("%s: levels[%d][%d] = %d, want %d", c.name, c.day, c.week, got, c.wantLevel)
		}
	}

	if grid.Legend != Legend {
		t.Errorf("unexpected legend %v", grid.Legend)
	}

	// Week 0 always gets a tick; week 1 starts Jan 6 so it gets the
	// January label.
	if len(grid.MonthTicks) < 2 {
		t.Fatalf("expected at least 2 month ticks, got %d", len(grid.MonthTicks))
	}
	if grid.MonthTicks[0].Week != 0 || grid.MonthTicks[0].Label != "Dec" {
		t.Errorf("unexpected first tick %+v", grid.MonthTicks[0])
	}
	if grid.MonthTicks[1].Week != 1 || grid.MonthTicks[1].Label != "Jan" {
		t.Errorf("unexpected second tick %+v", grid.MonthTicks[1])
	}
}

func TestBuildYearValidation(t *testing.T) {
	for _, year := range []int{1999, 2101} {
		if _, err := Build(year, nil); !apperr.IsValidation(err) {
			t.Errorf("Build(%d): expected validation error, got %v", year, err)
		}
	}
}

func TestFocusByDay(t *testing.T) {
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	sessions := []models.TimerSession{
		{StartedAt: monday.Add(9 * time.Hour), ElapsedTime: 125, Status: models.StatusCompleted},
		{StartedAt: monday.Add(15 * time.Hour), ElapsedTime: 100, Status: models.StatusCompleted},
		{StartedAt: monday.AddDate(0, 0, 1).Add(10 * time.Hour), ElapsedTime: 3600, Status: models.StatusCompleted},
	}

	got := FocusByDay(sessions)

	// 225 seconds on Monday floors to 3 minutes only after summing.
	if got[monday] != 3 {
		t.Errorf("expected 3 minutes on Monday, got %d", got[monday])
	}
	if got[monday.AddDate(0, 0, 1)] != 60 {
		t.Errorf("expected 60 minutes on Tuesday, got %d", got[monday.AddDate(0, 0, 1)])
	}
	if len(got) != 2 {
		t.Errorf("expected 2 days, got %d", len(got))
	}
}
