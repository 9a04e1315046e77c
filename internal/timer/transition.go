// Package timer implements the timer session state machine as pure
// functions over a TimerSession value. Each transition validates its
// guard and mutates the passed session in memory; persistence (and the
// compare-and-set that makes the transition atomic against concurrent
// callers) lives in internal/db.
package timer

import (
	"fmt"
	"time"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

// Pause moves a Running session to Paused and stamps PausedAt.
func Pause(s *models.TimerSession, now time.Time) error {
	if s.Status != models.StatusRunning {
		return fmt.Errorf("%w: cannot pause a %s session", apperr.ErrStateConflict, s.Status)
	}
	s.Status = models.StatusPaused
	t := now
	s.PausedAt = &t
	return nil
}

// Resume moves a Paused session back to Running and clears PausedAt.
func Resume(s *models.TimerSession) error {
	if s.Status != models.StatusPaused {
		return fmt.Errorf("%w: cannot resume a %s session", apperr.ErrStateConflict, s.Status)
	}
	s.Status = models.StatusRunning
	s.PausedAt = nil
	return nil
}

// Complete moves a session to Completed and stamps CompletedAt. It
// returns the whole minutes to credit to a linked time block
// (floor(elapsed/60)). Only an already-Completed session is rejected.
func Complete(s *models.TimerSession, now time.Time) (minutes int, err error) {
	if s.Status == models.StatusCompleted {
		return 0, fmt.Errorf("%w: session already completed", apperr.ErrStateConflict)
	}
	s.Status = models.StatusCompleted
	t := now
	s.CompletedAt = &t
	return s.ElapsedTime / 60, nil
}

// Cancel moves any non-terminal session to Cancelled.
func Cancel(s *models.TimerSession) error {
	if s.Status.Terminal() {
		return fmt.Errorf("%w: session already %s", apperr.ErrStateConflict, s.Status)
	}
	s.Status = models.StatusCancelled
	return nil
}

// UpdateElapsed sets the client-reported elapsed seconds, clamped to
// [0, ScheduledDuration]. It deliberately carries no status guard:
// clients flush a final elapsed value after a terminal transition has
// already landed, and rejecting that write would drop real data.
func UpdateElapsed(s *models.TimerSession, seconds int) error {
	if seconds < 0 {
		return apperr.Validationf("elapsed seconds must not be negative, got %d", seconds)
	}
	if seconds > s.ScheduledDuration {
		seconds = s.ScheduledDuration
	}
	s.ElapsedTime = seconds
	return nil
}
