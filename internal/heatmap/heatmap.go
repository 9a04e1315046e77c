// Package heatmap buckets a year of daily focus minutes into a
// GitHub-style 7x52 activity grid. It produces the grid and its
// metadata only; drawing it (terminal cells, JSON for a frontend) is
// the caller's concern.
package heatmap

import (
	"time"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

const (
	// Weeks is the number of grid columns.
	Weeks = 52
	// Days is the number of grid rows, Monday first.
	Days = 7
)

// Legend describes the five activity levels, index = level.
var Legend = [5]string{"No activity", "< 1h", "1-3h", "3-5h", "5h+"}

// DayNames labels the grid rows.
var DayNames = [Days]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthTick marks the week column where a month label is drawn.
type MonthTick struct {
	Week  int    `json:"week"`
	Label string `json:"label"`
}

// Grid is the bucketized year. Cells are addressed [day][week] with
// day 0 = Monday. Cells past EndDate stay zero.
type Grid struct {
	Year      int       `json:"year"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Levels  [Days][Weeks]int `json:"levels"`
	Minutes [Days][Weeks]int `json:"minutes"`

	MonthTicks []MonthTick `json:"month_ticks"`
	Legend     [5]string   `json:"legend"`
}

// Level buckets daily focus minutes into the 0-4 activity tiers. Band
// upper bounds are inclusive: exactly 60 minutes is still level 1.
func Level(minutes int) int {
	switch {
	case minutes == 0:
		return 0
	case minutes <= 60:
		return 1
	case minutes <= 180:
		return 2
	case minutes <= 300:
		return 3
	default:
		return 4
	}
}

// Build bucketizes focusByDay (date -> focus minutes, dates normalized
// via models.DateOf) into the grid for the 52 weeks ending Dec 31 of
// year. The window start is walked back to a Monday so week columns
// align.
func Build(year int, focusByDay map[time.Time]int) (*Grid, error) {
	if year < 2000 || year > 2100 {
		return nil, apperr.Validationf("year must be between 2000 and 2100, got %d", year)
	}

	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -364)
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}

	grid := &Grid{
		Year:      year,
		StartDate: start,
		EndDate:   end,
		Legend:    Legend,
	}

	// Column-major fill in calendar order.
	current := start
	for week := 0; week < Weeks; week++ {
		for day := 0; day < Days; day++ {
			if !current.After(end) {
				minutes := focusByDay[current]
				grid.Minutes[day][week] = minutes
				grid.Levels[day][week] = Level(minutes)
				current = current.AddDate(0, 0, 1)
			}
		}
	}

	grid.MonthTicks = monthTicks(start)
	return grid, nil
}

// monthTicks marks every week whose start day falls in the first seven
// days of a month, plus week 0 unconditionally.
func monthTicks(start time.Time) []MonthTick {
	ticks := []MonthTick{}
	current := start
	for week := 0; week < Weeks; week++ {
		if current.Day() <= 7 || week == 0 {
			ticks = append(ticks, MonthTick{Week: week, Label: current.Format("Jan")})
		}
		current = current.AddDate(0, 0, 7)
	}
	return ticks
}

// FocusByDay folds completed sessions into the per-day minute totals
// Build consumes.
func FocusByDay(sessions []models.TimerSession) map[time.Time]int {
	seconds := make(map[time.Time]int)
	for _, s := range sessions {
		seconds[models.DateOf(s.StartedAt)] += s.ElapsedTime
	}
	minutes := make(map[time.Time]int, len(seconds))
	for day, total := range seconds {
		minutes[day] = total / 60
	}
	return minutes
}
