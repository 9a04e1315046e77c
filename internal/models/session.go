package models

import (
	"time"
)

// SessionStatus is the lifecycle state of a timer session.
// Sessions are created Running and only ever change status through
// the transitions in internal/timer.
type SessionStatus string

const (
	StatusRunning   SessionStatus = "running"
	StatusPaused    SessionStatus = "paused"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// Terminal reports whether no further transition can leave this status.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// TimerSession records one timed focus interval. It can optionally link
// to a TimeBlock; completing the session credits the elapsed whole
// minutes to that block.
type TimerSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      uint  `gorm:"not null;index:idx_session_user_started" json:"user_id"`
	TimeBlockID *uint `gorm:"index" json:"time_block_id"`

	// Durations are in seconds. Invariant: 0 <= ElapsedTime <= ScheduledDuration.
	ScheduledDuration int `gorm:"not null" json:"scheduled_duration"`
	ElapsedTime       int `gorm:"default:0" json:"elapsed_time"`

	Status SessionStatus `gorm:"default:running;index" json:"status"`

	StartedAt   time.Time  `gorm:"not null;index:idx_session_user_started" json:"started_at"`
	PausedAt    *time.Time `json:"paused_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relationships
	TimeBlock *TimeBlock `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"time_block,omitempty"`
}

// RemainingTime returns the seconds left until the scheduled duration.
func (s *TimerSession) RemainingTime() int {
	if remaining := s.ScheduledDuration - s.ElapsedTime; remaining > 0 {
		return remaining
	}
	return 0
}

// CompletionPercentage returns elapsed vs scheduled, capped at 100.
func (s *TimerSession) CompletionPercentage() float64 {
	if s.ScheduledDuration == 0 {
		return 0
	}
	pct := Round2(float64(s.ElapsedTime) / float64(s.ScheduledDuration) * 100)
	if pct > 100 {
		return 100
	}
	return pct
}
