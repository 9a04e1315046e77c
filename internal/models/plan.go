package models

import (
	"math"
	"time"
)

// Period splits the day the way the planner UI does: AM covers the
// morning hours (4-12), PM the afternoon and evening (1-12).
type Period string

const (
	PeriodAM Period = "am"
	PeriodPM Period = "pm"
)

// Valid reports whether p is one of the two known periods.
func (p Period) Valid() bool {
	return p == PeriodAM || p == PeriodPM
}

// MaxPriorities is the number of priority slots on a daily plan.
const MaxPriorities = 3

// DailyPlan is a per-user, per-day container of time blocks, up to
// three priorities and a free-form brain dump. One plan per (user, date).
type DailyPlan struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint      `gorm:"not null;uniqueIndex:idx_plan_user_date" json:"user_id"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_plan_user_date" json:"date"`

	Priorities []string `gorm:"serializer:json" json:"priorities"`
	BrainDump  string   `json:"brain_dump"`

	// Percent of blocks marked completed, 2 decimals. Mutated only by
	// an explicit recompute or automatically when a block completes.
	CompletionRate float64 `gorm:"default:0" json:"completion_rate"`

	// Relationships
	TimeBlocks []TimeBlock `gorm:"foreignKey:DailyPlanID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"time_blocks,omitempty"`
}

// TimeBlock is a fixed hour slot within a daily plan. One block per
// (plan, period, hour).
type TimeBlock struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DailyPlanID uint `gorm:"not null;uniqueIndex:idx_block_plan_period_hour" json:"daily_plan_id"`

	Period Period `gorm:"not null;uniqueIndex:idx_block_plan_period_hour" json:"period"`
	Hour   int    `gorm:"not null;uniqueIndex:idx_block_plan_period_hour" json:"hour"` // 1-12

	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `gorm:"index" json:"category"`

	// Durations are in minutes.
	PlannedDuration int `gorm:"default:60" json:"planned_duration"`
	ActualDuration  int `gorm:"default:0" json:"actual_duration"`

	IsCompleted bool `gorm:"default:false;index" json:"is_completed"`
}

// ExecutionRate is actual vs planned minutes as a percentage, 2 decimals.
// Values over 100 are meaningful over-runs and are not clamped.
func (b *TimeBlock) ExecutionRate() float64 {
	if b.PlannedDuration == 0 {
		return 0
	}
	return Round2(float64(b.ActualDuration) / float64(b.PlannedDuration) * 100)
}

// WallHour normalizes the block's (period, hour) pair to a 0-23 wall
// clock hour using the standard convention (12am -> 0, 12pm -> 12).
func (b *TimeBlock) WallHour() int {
	return WallClockHour(b.Period, b.Hour)
}

// WallClockHour maps a (period, 1-12 hour) pair onto the 0-23 domain.
func WallClockHour(period Period, hour int) int {
	h := hour % 12
	if period == PeriodPM {
		h += 12
	}
	return h
}

// BlockCompletionRate is the percentage of blocks marked completed,
// 2 decimals. An empty slice yields 0.
func BlockCompletionRate(blocks []TimeBlock) float64 {
	if len(blocks) == 0 {
		return 0
	}
	completed := 0
	for _, b := range blocks {
		if b.IsCompleted {
			completed++
		}
	}
	return Round2(float64(completed) / float64(len(blocks)) * 100)
}

// Round2 rounds to two decimal places, matching how rates are stored.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
