package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/models"
)

// planFieldCount: three priorities plus the brain dump.
const planFieldCount = models.MaxPriorities + 1

// PlanModel is a small wizard for the day's priorities and brain dump.
type PlanModel struct {
	userID uint
	date   time.Time

	inputs  []textinput.Model
	current int

	width  int
	height int

	completed bool
	cancelled bool
	err       error
}

// NewPlanModel creates the plan wizard, prefilled from an existing plan.
func NewPlanModel(userID uint, date time.Time, existing *models.DailyPlan) PlanModel {
	inputs := make([]textinput.Model, planFieldCount)
	for i := range inputs {
		input := textinput.New()
		input.CharLimit = 200
		input.Width = 60
		input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
		input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		if i < models.MaxPriorities {
			input.Placeholder = fmt.Sprintf("Priority %d (optional)", i+1)
		} else {
			input.Placeholder = "Brain dump (optional)"
			input.CharLimit = 2000
		}
		inputs[i] = input
	}

	if existing != nil {
		for i, p := range existing.Priorities {
			if i < models.MaxPriorities {
				inputs[i].SetValue(p)
			}
		}
		inputs[models.MaxPriorities].SetValue(existing.BrainDump)
	}
	inputs[0].Focus()

	return PlanModel{userID: userID, date: date, inputs: inputs}
}

func (m PlanModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter", "tab", "down":
			if msg.String() == "enter" && m.current == planFieldCount-1 {
				m.save()
				return m, tea.Quit
			}
			m.inputs[m.current].Blur()
			m.current = (m.current + 1) % planFieldCount
			m.inputs[m.current].Focus()
			return m, nil
		case "shift+tab", "up":
			m.inputs[m.current].Blur()
			m.current = (m.current + planFieldCount - 1) % planFieldCount
			m.inputs[m.current].Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.current], cmd = m.inputs[m.current].Update(msg)
	return m, cmd
}

func (m *PlanModel) save() {
	priorities := []string{}
	for i := 0; i < models.MaxPriorities; i++ {
		if v := strings.TrimSpace(m.inputs[i].Value()); v != "" {
			priorities = append(priorities, v)
		}
	}
	if _, err := db.SetPriorities(m.userID, m.date, priorities); err != nil {
		m.err = err
		return
	}
	if _, err := db.SetBrainDump(m.userID, m.date, strings.TrimSpace(m.inputs[models.MaxPriorities].Value())); err != nil {
		m.err = err
		return
	}
	m.completed = true
}

func (m PlanModel) View() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	b.WriteString(headerStyle.Render(fmt.Sprintf("Plan for %s", m.date.Format("Mon, Jan 2 2006"))))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	for i, input := range m.inputs {
		label := fmt.Sprintf("Priority %d", i+1)
		if i == models.MaxPriorities {
			label = "Brain dump"
		}
		b.WriteString(labelStyle.Render(label) + "\n")
		b.WriteString(input.View() + "\n\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	b.WriteString(helpStyle.Render("enter next · tab/shift+tab move · enter on last field saves · esc cancel"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
