package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/heatmap"
	"github.com/timeblockhq/timeblock/internal/models"
	"github.com/timeblockhq/timeblock/internal/parser"
	"github.com/timeblockhq/timeblock/internal/stats"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the core error kinds onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, apperr.ErrStateConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func pathID(r *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
}

func (s *Server) issueToken(w http.ResponseWriter, user *models.User) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Name:      user.Name,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, apperr.Validationf("invalid request body"))
		return
	}
	if creds.Password == "" {
		writeError(w, apperr.Validationf("password must not be empty"))
		return
	}
	user, err := db.CreateUser(creds.Name, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	s.issueToken(w, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, apperr.Validationf("invalid request body"))
		return
	}
	user, err := db.AuthenticateUser(creds.Name, creds.Password)
	if err != nil {
		// Same response for unknown user and wrong password
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	s.issueToken(w, user)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScheduledDuration int   `json:"scheduled_duration"`
		TimeBlockID       *uint `json:"time_block_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validationf("invalid request body"))
		return
	}
	session, err := db.StartSession(ownerID(r), req.ScheduledDuration, req.TimeBlockID, s.clock)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	session, err := db.PauseSession(ownerID(r), pathID(r), s.clock)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	session, err := db.ResumeSession(ownerID(r), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	session, err := db.CompleteSession(ownerID(r), pathID(r), s.clock)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	session, err := db.CancelSession(ownerID(r), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleUpdateElapsed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ElapsedSeconds *int `json:"elapsed_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ElapsedSeconds == nil {
		writeError(w, apperr.Validationf("elapsed_seconds is required"))
		return
	}
	session, err := db.UpdateElapsed(ownerID(r), pathID(r), *req.ElapsedSeconds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"elapsed_time":          session.ElapsedTime,
		"remaining_time":        session.RemainingTime(),
		"completion_percentage": session.CompletionPercentage(),
	})
}

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := db.GetActiveSession(ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if session == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleTodaySessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := db.SessionsForDate(ownerID(r), s.clock.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleDailyStats(w http.ResponseWriter, r *http.Request) {
	date := models.DateOf(s.clock.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		var err error
		date, err = parser.ParseDate(raw, s.clock.Now())
		if err != nil {
			writeError(w, err)
			return
		}
	}
	report, err := s.engine.Daily(ownerID(r), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	start := stats.MondayOf(s.clock.Now())
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		var err error
		start, err = parser.ParseDate(raw, s.clock.Now())
		if err != nil {
			writeError(w, err)
			return
		}
	}
	report, err := s.engine.Weekly(ownerID(r), start)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	now := s.clock.Now()
	year, month := now.Year(), int(now.Month())

	rawYear, rawMonth := r.URL.Query().Get("year"), r.URL.Query().Get("month")
	if rawYear != "" || rawMonth != "" {
		y, err := strconv.Atoi(rawYear)
		if err != nil {
			writeError(w, apperr.Validationf("invalid year %q", rawYear))
			return
		}
		m, err := strconv.Atoi(rawMonth)
		if err != nil {
			writeError(w, apperr.Validationf("invalid month %q", rawMonth))
			return
		}
		year, month = y, m
	}

	report, err := s.engine.Monthly(ownerID(r), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	year := s.clock.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		var err error
		year, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperr.Validationf("invalid year %q", raw))
			return
		}
	}

	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	sessions, err := db.CompletedSessionsInRange(ownerID(r), end.AddDate(0, 0, -370), end)
	if err != nil {
		writeError(w, err)
		return
	}
	grid, err := heatmap.Build(year, heatmap.FocusByDay(sessions))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	rate, err := db.RecalculateCompletion(ownerID(r), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"completion_rate": rate})
}
