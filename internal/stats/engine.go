// Package stats derives daily, weekly and monthly productivity reports
// from stored time blocks and completed timer sessions. Reports are
// read-only and recomputed from current data on every call.
package stats

import (
	"sort"
	"time"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Engine computes reports against a Source.
type Engine struct {
	src Source
}

// New returns an engine reading from src.
func New(src Source) *Engine {
	return &Engine{src: src}
}

// Daily computes the report for a single date.
func (e *Engine) Daily(ownerID uint, date time.Time) (*DailyStats, error) {
	day := models.DateOf(date)

	sessions, err := e.src.CompletedSessionsInRange(ownerID, day, day)
	if err != nil {
		return nil, err
	}
	blocks, err := e.src.BlocksForDate(ownerID, day)
	if err != nil {
		return nil, err
	}

	totalSeconds := 0
	for _, s := range sessions {
		totalSeconds += s.ElapsedTime
	}

	completed := 0
	for _, b := range blocks {
		if b.IsCompleted {
			completed++
		}
	}

	return &DailyStats{
		Date:                day,
		TotalFocusMinutes:   totalSeconds / 60,
		TotalBlocks:         len(blocks),
		CompletedBlocks:     completed,
		BlockCompletionRate: models.BlockCompletionRate(blocks),
		ExecutionRate:       aggregateExecutionRate(blocks),
		CategoryBreakdown:   categoryBreakdown(blocks),
		HourlyBreakdown:     hourlyBreakdown(blocks),
	}, nil
}

// Weekly computes the report for the 7-day window [start, start+6].
func (e *Engine) Weekly(ownerID uint, start time.Time) (*WeeklyStats, error) {
	startDay := models.DateOf(start)
	endDay := startDay.AddDate(0, 0, 6)

	sessions, err := e.src.CompletedSessionsInRange(ownerID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	dated, err := e.src.BlocksInRange(ownerID, startDay, endDay)
	if err != nil {
		return nil, err
	}

	secondsByDay, totalSeconds := focusSecondsByDay(sessions)
	totalFocus := totalSeconds / 60

	completed := 0
	blocks := make([]models.TimeBlock, len(dated))
	for i, d := range dated {
		blocks[i] = d.TimeBlock
		if d.IsCompleted {
			completed++
		}
	}

	// One bucket per day, zero-activity days included.
	daily := make([]DayBucket, 0, 7)
	for i := 0; i < 7; i++ {
		day := startDay.AddDate(0, 0, i)
		bucket := DayBucket{
			Date:         day,
			FocusMinutes: secondsByDay[day] / 60,
		}
		for _, d := range dated {
			if d.Date.Equal(day) {
				bucket.BlockCount++
				if d.IsCompleted {
					bucket.CompletedBlocks++
				}
			}
		}
		daily = append(daily, bucket)
	}

	avg := 0
	if totalFocus > 0 {
		avg = totalFocus / 7
	}

	return &WeeklyStats{
		StartDate:           startDay,
		EndDate:             endDay,
		TotalFocusMinutes:   totalFocus,
		AverageDailyFocus:   avg,
		TotalBlocks:         len(blocks),
		CompletedBlocks:     completed,
		BlockCompletionRate: models.BlockCompletionRate(blocks),
		ExecutionRate:       aggregateExecutionRate(blocks),
		DailyBreakdown:      daily,
		CategoryBreakdown:   categoryBreakdown(blocks),
	}, nil
}

// Monthly computes the report for a calendar month.
func (e *Engine) Monthly(ownerID uint, year, month int) (*MonthlyStats, error) {
	if month < 1 || month > 12 {
		return nil, apperr.Validationf("month must be between 1 and 12, got %d", month)
	}
	if year < 2000 || year > 2100 {
		return nil, apperr.Validationf("year must be between 2000 and 2100, got %d", year)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	last := first.AddDate(0, 0, daysInMonth-1)

	sessions, err := e.src.CompletedSessionsInRange(ownerID, first, last)
	if err != nil {
		return nil, err
	}
	dated, err := e.src.BlocksInRange(ownerID, first, last)
	if err != nil {
		return nil, err
	}

	secondsByDay, totalSeconds := focusSecondsByDay(sessions)
	totalFocus := totalSeconds / 60

	completed := 0
	blocks := make([]models.TimeBlock, len(dated))
	for i, d := range dated {
		blocks[i] = d.TimeBlock
		if d.IsCompleted {
			completed++
		}
	}

	avg := 0
	if totalFocus > 0 {
		avg = totalFocus / daysInMonth
	}

	day, hour := mostProductive(dated)

	return &MonthlyStats{
		Year:                year,
		Month:               month,
		TotalFocusMinutes:   totalFocus,
		AverageDailyFocus:   avg,
		TotalBlocks:         len(blocks),
		CompletedBlocks:     completed,
		BlockCompletionRate: models.BlockCompletionRate(blocks),
		ExecutionRate:       aggregateExecutionRate(blocks),
		WeeklyBreakdown:     weeklyBreakdown(first, last, month, secondsByDay, dated),
		CategoryBreakdown:   categoryBreakdown(blocks),
		MostProductiveDay:   day,
		MostProductiveHour:  hour,
	}, nil
}

// MondayOf walks back to the Monday of the week containing d.
func MondayOf(d time.Time) time.Time {
	d = models.DateOf(d)
	back := (int(d.Weekday()) + 6) % 7 // Weekday has Sunday=0
	return d.AddDate(0, 0, -back)
}

// focusSecondsByDay folds completed sessions into per-day elapsed
// second totals, keyed by start date.
func focusSecondsByDay(sessions []models.TimerSession) (map[time.Time]int, int) {
	byDay := make(map[time.Time]int)
	total := 0
	for _, s := range sessions {
		byDay[models.DateOf(s.StartedAt)] += s.ElapsedTime
		total += s.ElapsedTime
	}
	return byDay, total
}

// aggregateExecutionRate is sum(actual) / sum(planned) over all blocks,
// as a percentage with 2 decimals. No planned minutes yields 0.
func aggregateExecutionRate(blocks []models.TimeBlock) float64 {
	planned, actual := 0, 0
	for _, b := range blocks {
		planned += b.PlannedDuration
		actual += b.ActualDuration
	}
	if planned == 0 {
		return 0
	}
	return models.Round2(float64(actual) / float64(planned) * 100)
}

// categoryBreakdown sums actual minutes per category label.
func categoryBreakdown(blocks []models.TimeBlock) map[string]int {
	breakdown := make(map[string]int)
	for _, b := range blocks {
		category := b.Category
		if category == "" {
			category = "uncategorized"
		}
		breakdown[category] += b.ActualDuration
	}
	return breakdown
}

// hourlyBreakdown groups the date's blocks by their (period, hour)
// slot, keeps the slots with nonzero focus and orders them by wall
// clock hour.
func hourlyBreakdown(blocks []models.TimeBlock) []HourBucket {
	byWallHour := make(map[int]*HourBucket)
	for _, b := range blocks {
		wall := b.WallHour()
		bucket, ok := byWallHour[wall]
		if !ok {
			bucket = &HourBucket{Period: b.Period, Hour: b.Hour, WallHour: wall}
			byWallHour[wall] = bucket
		}
		bucket.FocusMinutes += b.ActualDuration
		bucket.BlockCount++
	}

	hours := make([]int, 0, len(byWallHour))
	for wall, bucket := range byWallHour {
		if bucket.FocusMinutes > 0 {
			hours = append(hours, wall)
		}
	}
	sort.Ints(hours)

	breakdown := make([]HourBucket, 0, len(hours))
	for _, wall := range hours {
		breakdown = append(breakdown, *byWallHour[wall])
	}
	return breakdown
}

// weeklyBreakdown partitions the month into Monday-aligned week buckets
// and keeps the ones with nonzero focus.
func weeklyBreakdown(first, last time.Time, month int, secondsByDay map[time.Time]int, dated []DatedBlock) []WeekBucket {
	breakdown := []WeekBucket{}
	weekStart := MondayOf(first)

	for week := 0; week < 6; week++ {
		start := weekStart.AddDate(0, 0, 7*week)
		end := start.AddDate(0, 0, 6)
		if int(start.Month()) != month && int(end.Month()) != month {
			continue
		}

		bucket := WeekBucket{WeekStart: start, WeekEnd: end}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			bucket.FocusMinutes += secondsByDay[d] / 60
		}
		for _, b := range dated {
			if !b.Date.Before(start) && !b.Date.After(end) {
				bucket.BlockCount++
			}
		}
		if bucket.FocusMinutes > 0 {
			breakdown = append(breakdown, bucket)
		}
	}
	return breakdown
}

// mostProductive sums block actual minutes per weekday (Monday=0) and
// per wall clock hour, then picks the maximum of each. Keys are reduced
// in sorted order so ties go to the lowest key. Both results are nil
// when no block contributed minutes.
func mostProductive(dated []DatedBlock) (*string, *int) {
	dayTotals := make(map[int]int)
	hourTotals := make(map[int]int)
	for _, b := range dated {
		if b.ActualDuration == 0 {
			continue
		}
		weekday := (int(b.Date.Weekday()) + 6) % 7
		dayTotals[weekday] += b.ActualDuration
		hourTotals[b.WallHour()] += b.ActualDuration
	}

	var day *string
	if best, ok := maxKey(dayTotals); ok {
		name := weekdayNames[best]
		day = &name
	}
	var hour *int
	if best, ok := maxKey(hourTotals); ok {
		h := best
		hour = &h
	}
	return day, hour
}

// maxKey returns the key with the largest total, lowest key winning
// ties. ok is false for an empty map.
func maxKey(totals map[int]int) (int, bool) {
	if len(totals) == 0 {
		return 0, false
	}
	keys := make([]int, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if totals[k] > totals[best] {
			best = k
		}
	}
	return best, true
}
