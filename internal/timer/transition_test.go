package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

func newSession(status models.SessionStatus) *models.TimerSession {
	return &models.TimerSession{
		ID:                1,
		UserID:            1,
		ScheduledDuration: 1500,
		Status:            status,
		StartedAt:         time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestPauseGuards(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 10, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  models.SessionStatus
		wantErr bool
	}{
		{"running pauses", models.StatusRunning, false},
		{"paused rejects", models.StatusPaused, true},
		{"completed rejects", models.StatusCompleted, true},
		{"cancelled rejects", models.StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.status)
			err := Pause(s, now)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrStateConflict) {
					t.Fatalf("expected state conflict, got %v", err)
				}
				if s.Status != tt.status {
					t.Errorf("status changed on rejected transition: %s", s.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Status != models.StatusPaused {
				t.Errorf("expected paused, got %s", s.Status)
			}
			if s.PausedAt == nil || !s.PausedAt.Equal(now) {
				t.Errorf("expected PausedAt %v, got %v", now, s.PausedAt)
			}
		})
	}
}

func TestResumeGuards(t *testing.T) {
	tests := []struct {
		name    string
		status  models.SessionStatus
		wantErr bool
	}{
		{"paused resumes", models.StatusPaused, false},
		{"running rejects", models.StatusRunning, true},
		{"completed rejects", models.StatusCompleted, true},
		{"cancelled rejects", models.StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.status)
			pausedAt := time.Date(2026, 9, 1, 9, 5, 0, 0, time.UTC)
			s.PausedAt = &pausedAt

			err := Resume(s)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrStateConflict) {
					t.Fatalf("expected state conflict, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Status != models.StatusRunning {
				t.Errorf("expected running, got %s", s.Status)
			}
			if s.PausedAt != nil {
				t.Errorf("expected PausedAt cleared, got %v", s.PausedAt)
			}
		})
	}
}

func TestCompleteGuards(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  models.SessionStatus
		wantErr bool
	}{
		{"running completes", models.StatusRunning, false},
		{"paused completes", models.StatusPaused, false},
		{"cancelled completes", models.StatusCancelled, false},
		{"completed rejects", models.StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.status)
			_, err := Complete(s, now)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrStateConflict) {
					t.Fatalf("expected state conflict, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Status != models.StatusCompleted {
				t.Errorf("expected completed, got %s", s.Status)
			}
			if s.CompletedAt == nil || !s.CompletedAt.Equal(now) {
				t.Errorf("expected CompletedAt %v, got %v", now, s.CompletedAt)
			}
		})
	}
}

func TestCompleteBlockMinutes(t *testing.T) {
	tests := []struct {
		name        string
		elapsed     int
		wantMinutes int
	}{
		{"125 seconds floors to 2", 125, 2},
		{"59 seconds floors to 0", 59, 0},
		{"exactly one minute", 60, 1},
		{"zero elapsed", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(models.StatusRunning)
			s.ElapsedTime = tt.elapsed

			minutes, err := Complete(s, time.Now())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if minutes != tt.wantMinutes {
				t.Errorf("expected %d minutes, got %d", tt.wantMinutes, minutes)
			}
		})
	}
}

func TestCancelGuards(t *testing.T) {
	tests := []struct {
		name    string
		status  models.SessionStatus
		wantErr bool
	}{
		{"running cancels", models.StatusRunning, false},
		{"paused cancels", models.StatusPaused, false},
		{"completed rejects", models.StatusCompleted, true},
		{"cancelled rejects", models.StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.status)
			err := Cancel(s)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrStateConflict) {
					t.Fatalf("expected state conflict, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Status != models.StatusCancelled {
				t.Errorf("expected cancelled, got %s", s.Status)
			}
		})
	}
}

func TestUpdateElapsedClamp(t *testing.T) {
	tests := []struct {
		name        string
		seconds     int
		wantElapsed int
		wantErr     bool
	}{
		{"within range", 600, 600, false},
		{"at the boundary", 1500, 1500, false},
		{"clamped to scheduled", 9999, 1500, false},
		{"zero", 0, 0, false},
		{"negative rejected", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(models.StatusRunning)
			err := UpdateElapsed(s, tt.seconds)
			if tt.wantErr {
				if !apperr.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if s.ElapsedTime != 0 {
					t.Errorf("elapsed mutated on rejected input: %d", s.ElapsedTime)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.ElapsedTime != tt.wantElapsed {
				t.Errorf("expected elapsed %d, got %d", tt.wantElapsed, s.ElapsedTime)
			}
		})
	}
}

// The invariant 0 <= elapsed <= scheduled holds across any sequence of
// updates, including on terminal sessions where updates still land.
func TestUpdateElapsedSequenceInvariant(t *testing.T) {
	s := newSession(models.StatusRunning)
	sequence := []int{10, 250, 1500, 2000, 3, 1499, 99999}

	for _, seconds := range sequence {
		if err := UpdateElapsed(s, seconds); err != nil {
			t.Fatalf("unexpected error at %d: %v", seconds, err)
		}
		if s.ElapsedTime < 0 || s.ElapsedTime > s.ScheduledDuration {
			t.Fatalf("invariant violated after %d: elapsed=%d", seconds, s.ElapsedTime)
		}
	}

	// No status guard: a completed session still accepts updates
	if _, err := Complete(s, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := UpdateElapsed(s, 42); err != nil {
		t.Fatalf("update on completed session should succeed, got %v", err)
	}
	if s.ElapsedTime != 42 {
		t.Errorf("expected elapsed 42, got %d", s.ElapsedTime)
	}
}
