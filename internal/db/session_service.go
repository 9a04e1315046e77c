package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
	"github.com/timeblockhq/timeblock/internal/timer"
)

// StartSession creates a new Running timer session. A block reference,
// if given, must resolve to a block on one of the caller's plans.
func StartSession(userID uint, scheduledSeconds int, blockID *uint, clk timer.Clock) (*models.TimerSession, error) {
	if scheduledSeconds <= 0 {
		return nil, apperr.Validationf("scheduled duration must be positive, got %d", scheduledSeconds)
	}
	if blockID != nil {
		if _, err := getOwnedBlock(userID, *blockID); err != nil {
			// A foreign block is reported the same as a missing one.
			return nil, apperr.Validationf("time block #%d not found", *blockID)
		}
	}

	session := models.TimerSession{
		UserID:            userID,
		TimeBlockID:       blockID,
		ScheduledDuration: scheduledSeconds,
		Status:            models.StatusRunning,
		StartedAt:         clk.Now(),
	}
	if err := DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// getOwnedSession loads a session owned by the user.
func getOwnedSession(userID, sessionID uint) (*models.TimerSession, error) {
	var session models.TimerSession
	err := DB.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session #%d: %w", sessionID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &session, nil
}

// casUpdate writes the transition result guarded by the status the
// transition was computed from. Losing the compare-and-set to a
// concurrent writer is a state conflict like any other guard failure.
func casUpdate(sessionID, userID uint, expect models.SessionStatus, updates map[string]any) error {
	res := DB.Model(&models.TimerSession{}).
		Where("id = ? AND user_id = ? AND status = ?", sessionID, userID, expect).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: session #%d changed concurrently", apperr.ErrStateConflict, sessionID)
	}
	return nil
}

// PauseSession pauses a running session.
func PauseSession(userID, sessionID uint, clk timer.Clock) (*models.TimerSession, error) {
	session, err := getOwnedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	prev := session.Status
	if err := timer.Pause(session, clk.Now()); err != nil {
		return nil, err
	}
	err = casUpdate(sessionID, userID, prev, map[string]any{
		"status":    session.Status,
		"paused_at": session.PausedAt,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ResumeSession resumes a paused session.
func ResumeSession(userID, sessionID uint) (*models.TimerSession, error) {
	session, err := getOwnedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	prev := session.Status
	if err := timer.Resume(session); err != nil {
		return nil, err
	}
	err = casUpdate(sessionID, userID, prev, map[string]any{
		"status":    session.Status,
		"paused_at": nil,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteSession completes a session and, when it links to a time
// block, credits the elapsed whole minutes to that block's actual
// duration in the same transaction.
func CompleteSession(userID, sessionID uint, clk timer.Clock) (*models.TimerSession, error) {
	session, err := getOwnedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	prev := session.Status
	minutes, err := timer.Complete(session, clk.Now())
	if err != nil {
		return nil, err
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TimerSession{}).
			Where("id = ? AND user_id = ? AND status = ?", sessionID, userID, prev).
			Updates(map[string]any{
				"status":       session.Status,
				"completed_at": session.CompletedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: session #%d changed concurrently", apperr.ErrStateConflict, sessionID)
		}
		if session.TimeBlockID != nil && minutes > 0 {
			err := tx.Model(&models.TimeBlock{}).
				Where("id = ?", *session.TimeBlockID).
				UpdateColumn("actual_duration", gorm.Expr("actual_duration + ?", minutes)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CancelSession cancels any non-terminal session.
func CancelSession(userID, sessionID uint) (*models.TimerSession, error) {
	session, err := getOwnedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	prev := session.Status
	if err := timer.Cancel(session); err != nil {
		return nil, err
	}
	err = casUpdate(sessionID, userID, prev, map[string]any{"status": session.Status})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateElapsed stores the client-reported elapsed seconds, clamped to
// the scheduled duration. No status guard: see timer.UpdateElapsed.
func UpdateElapsed(userID, sessionID uint, seconds int) (*models.TimerSession, error) {
	session, err := getOwnedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := timer.UpdateElapsed(session, seconds); err != nil {
		return nil, err
	}
	err = DB.Model(&models.TimerSession{}).Where("id = ?", session.ID).
		Update("elapsed_time", session.ElapsedTime).Error
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetActiveSession returns the user's most recent running or paused
// session, if any. No active session is not an error.
func GetActiveSession(userID uint) (*models.TimerSession, error) {
	var session models.TimerSession
	err := DB.Where("user_id = ? AND status IN ?", userID,
		[]models.SessionStatus{models.StatusRunning, models.StatusPaused}).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// SessionsForDate returns the user's sessions started on the given day,
// oldest first.
func SessionsForDate(userID uint, date time.Time) ([]models.TimerSession, error) {
	day := models.DateOf(date)
	var sessions []models.TimerSession
	err := DB.Where("user_id = ? AND started_at >= ? AND started_at < ?",
		userID, day, day.AddDate(0, 0, 1)).
		Order("started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// CompletedSessionsInRange returns the user's Completed sessions started
// within [from, to] (whole days, inclusive).
func CompletedSessionsInRange(userID uint, from, to time.Time) ([]models.TimerSession, error) {
	var sessions []models.TimerSession
	err := DB.Where("user_id = ? AND status = ? AND started_at >= ? AND started_at < ?",
		userID, models.StatusCompleted, models.DateOf(from), models.DateOf(to).AddDate(0, 0, 1)).
		Order("started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
