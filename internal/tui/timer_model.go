package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"

	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/models"
	"github.com/timeblockhq/timeblock/internal/timer"
)

// elapsed sync cadence, in ticks (seconds)
const syncEvery = 15

// TimerModel is the interactive countdown for one timer session.
type TimerModel struct {
	width  int
	height int

	session    *models.TimerSession
	blockTitle string
	notify     bool

	// Timer state, mirrored locally so the display doesn't wait on
	// storage round-trips
	elapsed   int
	status    models.SessionStatus
	tickCount int
	notified  bool

	progress progress.Model

	// Outcome after quit
	outcome string
	err     error
}

type countdownTickMsg struct{}

// NewTimerModel creates the countdown model for a freshly started session.
func NewTimerModel(session *models.TimerSession, blockTitle string, notify bool) TimerModel {
	return TimerModel{
		session:    session,
		blockTitle: blockTitle,
		notify:     notify,
		elapsed:    session.ElapsedTime,
		status:     session.Status,
		progress:   progress.New(progress.WithDefaultGradient()),
	}
}

func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg{}
	})
}

// Init starts the per-second tick.
func (m TimerModel) Init() tea.Cmd {
	return countdownTick()
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownTickMsg:
		if m.outcome != "" {
			return m, nil
		}
		if m.status == models.StatusRunning {
			if m.elapsed < m.session.ScheduledDuration {
				m.elapsed++
			}
			m.tickCount++
			if m.tickCount%syncEvery == 0 {
				m.flushElapsed()
			}
			if m.elapsed >= m.session.ScheduledDuration && !m.notified {
				m.notified = true
				if m.notify {
					beeep.Notify("timeblock", "Time's up! Press c to complete the session.", "")
				}
			}
		}
		return m, countdownTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 50)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			if m.status == models.StatusRunning {
				m.flushElapsed()
				if _, err := db.PauseSession(m.session.UserID, m.session.ID, timer.System); err != nil {
					m.err = err
				} else {
					m.status = models.StatusPaused
				}
			}
			return m, nil
		case "r":
			if m.status == models.StatusPaused {
				if _, err := db.ResumeSession(m.session.UserID, m.session.ID); err != nil {
					m.err = err
				} else {
					m.status = models.StatusRunning
				}
			}
			return m, nil
		case "c":
			m.flushElapsed()
			if _, err := db.CompleteSession(m.session.UserID, m.session.ID, timer.System); err != nil {
				m.err = err
				return m, nil
			}
			m.status = models.StatusCompleted
			m.outcome = "completed"
			return m, tea.Quit
		case "x":
			if _, err := db.CancelSession(m.session.UserID, m.session.ID); err != nil {
				m.err = err
				return m, nil
			}
			m.status = models.StatusCancelled
			m.outcome = "cancelled"
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			// Leave the session as it is; it stays resumable
			m.flushElapsed()
			m.outcome = "detached"
			return m, tea.Quit
		}
	}

	return m, nil
}

// flushElapsed pushes the locally counted elapsed seconds to storage.
func (m *TimerModel) flushElapsed() {
	if _, err := db.UpdateElapsed(m.session.UserID, m.session.ID, m.elapsed); err != nil {
		m.err = err
	}
}

// View renders the countdown screen.
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var components []string

	header := "◎  FOCUS SESSION"
	if m.status == models.StatusPaused {
		header = "⏸  PAUSED"
	}
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, headerStyle.Render(header))

	if m.blockTitle != "" {
		blockStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, blockStyle.Render(m.blockTitle))
	}

	// Big countdown of the remaining time
	remaining := m.session.ScheduledDuration - m.elapsed
	if remaining < 0 {
		remaining = 0
	}
	clock := renderBigClock(remaining)
	clockStyle := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)
	components = append(components, clockStyle.Render(clock))

	// Progress toward the scheduled duration
	pct := float64(m.elapsed) / float64(m.session.ScheduledDuration)
	if pct > 1 {
		pct = 1
	}
	components = append(components, clockStyle.Render(m.progress.ViewAs(pct)))

	info := fmt.Sprintf("Started at %s · scheduled %s",
		m.session.StartedAt.Format("15:04:05"),
		formatSeconds(m.session.ScheduledDuration))
	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, infoStyle.Render(info))

	if m.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, errStyle.Render(m.err.Error()))
	}

	content := strings.Join(components, "\n\n")

	body := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelpBar())
}

func (m TimerModel) renderHelpBar() string {
	var keys []string
	switch m.status {
	case models.StatusRunning:
		keys = []string{"p pause", "c complete", "x cancel", "q leave running"}
	case models.StatusPaused:
		keys = []string{"r resume", "c complete", "x cancel", "q leave paused"}
	default:
		keys = []string{"q quit"}
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width)
	return helpStyle.Render(strings.Join(keys, "  ·  "))
}

func formatSeconds(seconds int) string {
	d := time.Duration(seconds) * time.Second
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
