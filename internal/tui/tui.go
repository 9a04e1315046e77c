package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeblockhq/timeblock/internal/models"
)

// RunTimerTUI starts the interactive countdown for a session.
func RunTimerTUI(session *models.TimerSession, blockTitle string, notify bool) error {
	model := NewTimerModel(session, blockTitle, notify)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Handle exit messages after TUI closes
	if m, ok := finalModel.(TimerModel); ok {
		switch m.outcome {
		case "completed":
			fmt.Printf("✅ Session #%d completed after %s of focus.\n", m.session.ID, formatSeconds(m.elapsed))
		case "cancelled":
			fmt.Printf("🚫 Session #%d cancelled.\n", m.session.ID)
		case "detached":
			fmt.Printf("⏱️  Session #%d left %s. Pick it up with 'timeblock resume' or 'timeblock complete'.\n", m.session.ID, m.status)
		}
		if m.err != nil {
			return m.err
		}
	}

	return nil
}

// RunPlanTUI starts the plan priorities/brain-dump wizard.
func RunPlanTUI(userID uint, date time.Time, existing *models.DailyPlan) error {
	model := NewPlanModel(userID, date, existing)

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(PlanModel); ok {
		if m.cancelled {
			fmt.Println("❌ Plan editing cancelled.")
		} else if m.completed {
			fmt.Printf("✅ Plan for %s saved.\n", date.Format("2006-01-02"))
		} else if m.err != nil {
			return m.err
		}
	}

	return nil
}
