package stats

import (
	"time"

	"github.com/timeblockhq/timeblock/internal/models"
)

// DatedBlock is a time block paired with the date of its owning plan,
// which blocks themselves don't carry.
type DatedBlock struct {
	models.TimeBlock
	Date time.Time
}

// Source is the stored-entity query interface the engine folds over.
// internal/db provides the production implementation; tests inject
// fixtures.
type Source interface {
	// BlocksForDate returns the blocks of the owner's plan on that date,
	// empty when no plan exists.
	BlocksForDate(ownerID uint, date time.Time) ([]models.TimeBlock, error)
	// BlocksInRange returns the owner's blocks for all plan dates within
	// [from, to] inclusive.
	BlocksInRange(ownerID uint, from, to time.Time) ([]DatedBlock, error)
	// CompletedSessionsInRange returns the owner's Completed sessions
	// started within [from, to] inclusive.
	CompletedSessionsInRange(ownerID uint, from, to time.Time) ([]models.TimerSession, error)
}

// HourBucket is one entry of the daily hourly breakdown. Blocks store
// a 1-12 hour plus an am/pm period; entries carry both alongside the
// normalized 0-23 wall hour the breakdown is ordered by.
type HourBucket struct {
	Period       models.Period `json:"period"`
	Hour         int           `json:"hour"`
	WallHour     int           `json:"wall_hour"`
	FocusMinutes int           `json:"focus_minutes"`
	BlockCount   int           `json:"block_count"`
}

// DailyStats is the per-day report.
type DailyStats struct {
	Date                time.Time      `json:"date"`
	TotalFocusMinutes   int            `json:"total_focus_minutes"`
	TotalBlocks         int            `json:"total_blocks"`
	CompletedBlocks     int            `json:"completed_blocks"`
	BlockCompletionRate float64        `json:"block_completion_rate"`
	ExecutionRate       float64        `json:"execution_rate"`
	CategoryBreakdown   map[string]int `json:"category_breakdown"`
	HourlyBreakdown     []HourBucket   `json:"hourly_breakdown"`
}

// DayBucket is one day of the weekly breakdown. Zero-activity days are
// included.
type DayBucket struct {
	Date            time.Time `json:"date"`
	FocusMinutes    int       `json:"focus_minutes"`
	BlockCount      int       `json:"block_count"`
	CompletedBlocks int       `json:"completed_blocks"`
}

// WeeklyStats is the 7-day report starting at StartDate.
type WeeklyStats struct {
	StartDate           time.Time      `json:"start_date"`
	EndDate             time.Time      `json:"end_date"`
	TotalFocusMinutes   int            `json:"total_focus_minutes"`
	AverageDailyFocus   int            `json:"average_daily_focus"`
	TotalBlocks         int            `json:"total_blocks"`
	CompletedBlocks     int            `json:"completed_blocks"`
	BlockCompletionRate float64        `json:"block_completion_rate"`
	ExecutionRate       float64        `json:"execution_rate"`
	DailyBreakdown      []DayBucket    `json:"daily_breakdown"`
	CategoryBreakdown   map[string]int `json:"category_breakdown"`
}

// WeekBucket is one Monday-aligned week of the monthly breakdown.
// Only weeks with nonzero focus are emitted.
type WeekBucket struct {
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	FocusMinutes int       `json:"focus_minutes"`
	BlockCount   int       `json:"block_count"`
}

// MonthlyStats is the calendar-month report. MostProductiveDay and
// MostProductiveHour are nil when no block contributed any minutes.
type MonthlyStats struct {
	Year                int            `json:"year"`
	Month               int            `json:"month"`
	TotalFocusMinutes   int            `json:"total_focus_minutes"`
	AverageDailyFocus   int            `json:"average_daily_focus"`
	TotalBlocks         int            `json:"total_blocks"`
	CompletedBlocks     int            `json:"completed_blocks"`
	BlockCompletionRate float64        `json:"block_completion_rate"`
	ExecutionRate       float64        `json:"execution_rate"`
	WeeklyBreakdown     []WeekBucket   `json:"weekly_breakdown"`
	CategoryBreakdown   map[string]int `json:"category_breakdown"`
	MostProductiveDay   *string        `json:"most_productive_day"`
	MostProductiveHour  *int           `json:"most_productive_hour"`
}
