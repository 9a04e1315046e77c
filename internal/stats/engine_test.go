package stats

import (
	"testing"
	"time"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

// fakeSource serves fixtures and applies the same ownership-free range
// filtering the db layer would.
type fakeSource struct {
	dated    []DatedBlock
	sessions []models.TimerSession
}

func (f fakeSource) BlocksForDate(ownerID uint, date time.Time) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	for _, d := range f.dated {
		if d.Date.Equal(date) {
			blocks = append(blocks, d.TimeBlock)
		}
	}
	return blocks, nil
}

func (f fakeSource) BlocksInRange(ownerID uint, from, to time.Time) ([]DatedBlock, error) {
	var out []DatedBlock
	for _, d := range f.dated {
		if !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f fakeSource) CompletedSessionsInRange(ownerID uint, from, to time.Time) ([]models.TimerSession, error) {
	var out []models.TimerSession
	for _, s := range f.sessions {
		day := models.DateOf(s.StartedAt)
		if s.Status == models.StatusCompleted && !day.Before(from) && !day.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func completedSession(startedAt time.Time, elapsed int) models.TimerSession {
	return models.TimerSession{
		UserID:            1,
		ScheduledDuration: elapsed,
		ElapsedTime:       elapsed,
		Status:            models.StatusCompleted,
		StartedAt:         startedAt,
	}
}

func block(period models.Period, hour, planned, actual int, completed bool, category string) models.TimeBlock {
	return models.TimeBlock{
		Period:          period,
		Hour:            hour,
		PlannedDuration: planned,
		ActualDuration:  actual,
		IsCompleted:     completed,
		Category:        category,
	}
}

func TestDaily(t *testing.T) {
	day := date(2026, time.August, 10)
	src := fakeSource{
		dated: []DatedBlock{
			{Date: day, TimeBlock: block(models.PeriodAM, 9, 60, 90, true, "deep work")},
			{Date: day, TimeBlock: block(models.PeriodPM, 2, 60, 120, true, "")},
			{Date: day, TimeBlock: block(models.PeriodPM, 2, 60, 150, true, "deep work")},
			{Date: day, TimeBlock: block(models.PeriodAM, 11, 60, 0, false, "email")},
			// Next day's block must not leak in.
			{Date: day.AddDate(0, 0, 1), TimeBlock: block(models.PeriodAM, 9, 60, 60, true, "")},
		},
		sessions: []models.TimerSession{
			completedSession(day.Add(9*time.Hour), 1800),
			completedSession(day.Add(14*time.Hour), 700),
			{UserID: 1, StartedAt: day.Add(15 * time.Hour), ElapsedTime: 999, Status: models.StatusCancelled},
		},
	}

	got, err := New(src).Daily(1, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalFocusMinutes != 41 {
		t.Errorf("expected 41 focus minutes, got %d", got.TotalFocusMinutes)
	}
	if got.TotalBlocks != 4 || got.CompletedBlocks != 3 {
		t.Errorf("expected 3/4 blocks completed, got %d/%d", got.CompletedBlocks, got.TotalBlocks)
	}
	if got.BlockCompletionRate != 75.00 {
		t.Errorf("expected completion rate 75.00, got %.2f", got.BlockCompletionRate)
	}
	// 360 actual over 240 planned: execution rate is not capped at 100.
	if got.ExecutionRate != 150.00 {
		t.Errorf("expected execution rate 150.00, got %.2f", got.ExecutionRate)
	}

	if got.CategoryBreakdown["deep work"] != 240 {
		t.Errorf("expected deep work 240, got %d", got.CategoryBreakdown["deep work"])
	}
	if got.CategoryBreakdown["uncategorized"] != 120 {
		t.Errorf("expected uncategorized 120, got %d", got.CategoryBreakdown["uncategorized"])
	}

	// 11am contributed no minutes and is dropped; order is by wall hour.
	if len(got.HourlyBreakdown) != 2 {
		t.Fatalf("expected 2 hourly buckets, got %d", len(got.HourlyBreakdown))
	}
	nine := got.HourlyBreakdown[0]
	if nine.WallHour != 9 || nine.Period != models.PeriodAM || nine.Hour != 9 {
		t.Errorf("unexpected first bucket: %+v", nine)
	}
	if nine.FocusMinutes != 90 || nine.BlockCount != 1 {
		t.Errorf("expected 9am bucket 90m/1 block, got %dm/%d", nine.FocusMinutes, nine.BlockCount)
	}
	two := got.HourlyBreakdown[1]
	if two.WallHour != 14 || two.FocusMinutes != 270 || two.BlockCount != 2 {
		t.Errorf("expected 2pm bucket 270m/2 blocks, got %+v", two)
	}
}

func TestWeekly(t *testing.T) {
	monday := date(2026, time.August, 10)
	src := fakeSource{
		dated: []DatedBlock{
			{Date: monday.AddDate(0, 0, 1), TimeBlock: block(models.PeriodAM, 10, 60, 60, true, "")},
		},
		sessions: []models.TimerSession{
			completedSession(monday.Add(9*time.Hour), 36000),
			completedSession(monday.AddDate(0, 0, 3).Add(20*time.Hour), 6000),
			// Outside the window.
			completedSession(monday.AddDate(0, 0, 7), 6000),
		},
	}

	got, err := New(src).Weekly(1, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalFocusMinutes != 700 {
		t.Errorf("expected 700 focus minutes, got %d", got.TotalFocusMinutes)
	}
	if got.AverageDailyFocus != 100 {
		t.Errorf("expected average 100, got %d", got.AverageDailyFocus)
	}
	if !got.EndDate.Equal(monday.AddDate(0, 0, 6)) {
		t.Errorf("unexpected end date %v", got.EndDate)
	}

	if len(got.DailyBreakdown) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(got.DailyBreakdown))
	}
	wantFocus := []int{600, 0, 0, 100, 0, 0, 0}
	for i, bucket := range got.DailyBreakdown {
		if !bucket.Date.Equal(monday.AddDate(0, 0, i)) {
			t.Errorf("day %d: unexpected date %v", i, bucket.Date)
		}
		if bucket.FocusMinutes != wantFocus[i] {
			t.Errorf("day %d: expected %dm, got %dm", i, wantFocus[i], bucket.FocusMinutes)
		}
	}
	tuesday := got.DailyBreakdown[1]
	if tuesday.BlockCount != 1 || tuesday.CompletedBlocks != 1 {
		t.Errorf("expected tuesday 1/1 blocks, got %d/%d", tuesday.CompletedBlocks, tuesday.BlockCount)
	}
}

func TestWeeklyEmpty(t *testing.T) {
	got, err := New(fakeSource{}).Weekly(1, date(2026, time.August, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalFocusMinutes != 0 || got.AverageDailyFocus != 0 {
		t.Errorf("expected zero totals, got %d total / %d avg", got.TotalFocusMinutes, got.AverageDailyFocus)
	}
	if got.BlockCompletionRate != 0 || got.ExecutionRate != 0 {
		t.Errorf("expected zero rates, got %.2f / %.2f", got.BlockCompletionRate, got.ExecutionRate)
	}
	if len(got.DailyBreakdown) != 7 {
		t.Errorf("expected 7 day buckets even when empty, got %d", len(got.DailyBreakdown))
	}
}

func TestMonthly(t *testing.T) {
	// August 2026: the 4th is a Tuesday, the 6th a Thursday.
	src := fakeSource{
		dated: []DatedBlock{
			{Date: date(2026, time.August, 4), TimeBlock: block(models.PeriodAM, 9, 60, 30, true, "writing")},
			{Date: date(2026, time.August, 6), TimeBlock: block(models.PeriodPM, 2, 60, 30, false, "writing")},
		},
		sessions: []models.TimerSession{
			completedSession(date(2026, time.August, 4).Add(9*time.Hour), 3100),
		},
	}

	got, err := New(src).Monthly(1, 2026, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalFocusMinutes != 51 {
		t.Errorf("expected 51 focus minutes, got %d", got.TotalFocusMinutes)
	}
	if got.AverageDailyFocus != 1 {
		t.Errorf("expected average 1, got %d", got.AverageDailyFocus)
	}
	if got.TotalBlocks != 2 || got.CompletedBlocks != 1 {
		t.Errorf("expected 1/2 blocks completed, got %d/%d", got.CompletedBlocks, got.TotalBlocks)
	}

	// 30m on Tuesday vs 30m on Thursday, 30m at 9 vs 30m at 14: ties go
	// to the earlier day and hour.
	if got.MostProductiveDay == nil || *got.MostProductiveDay != "Tuesday" {
		t.Errorf("expected most productive day Tuesday, got %v", got.MostProductiveDay)
	}
	if got.MostProductiveHour == nil || *got.MostProductiveHour != 9 {
		t.Errorf("expected most productive hour 9, got %v", got.MostProductiveHour)
	}

	if len(got.WeeklyBreakdown) != 1 {
		t.Fatalf("expected 1 week bucket, got %d", len(got.WeeklyBreakdown))
	}
	week := got.WeeklyBreakdown[0]
	if !week.WeekStart.Equal(date(2026, time.August, 3)) {
		t.Errorf("expected week start Aug 3, got %v", week.WeekStart)
	}
	if week.FocusMinutes != 51 || week.BlockCount != 2 {
		t.Errorf("expected week 51m/2 blocks, got %dm/%d", week.FocusMinutes, week.BlockCount)
	}
}

func TestMonthlyEmpty(t *testing.T) {
	got, err := New(fakeSource{}).Monthly(1, 2026, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MostProductiveDay != nil {
		t.Errorf("expected nil most productive day, got %q", *got.MostProductiveDay)
	}
	if got.MostProductiveHour != nil {
		t.Errorf("expected nil most productive hour, got %d", *got.MostProductiveHour)
	}
	if len(got.WeeklyBreakdown) != 0 {
		t.Errorf("expected no week buckets, got %d", len(got.WeeklyBreakdown))
	}
}

func TestMonthlyValidation(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
	}{
		{"month zero", 2026, 0},
		{"month thirteen", 2026, 13},
		{"year too early", 1999, 6},
		{"year too late", 2101, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(fakeSource{}).Monthly(1, tt.year, tt.month)
			if !apperr.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestMondayOf(t *testing.T) {
	monday := date(2026, time.August, 10)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday itself", monday},
		{"midweek", date(2026, time.August, 12)},
		{"sunday", date(2026, time.August, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MondayOf(tt.in); !got.Equal(monday) {
				t.Errorf("expected %v, got %v", monday, got)
			}
		})
	}
}
