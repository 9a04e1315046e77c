package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/timeblockhq/timeblock/internal/heatmap"
)

// GitHub-style activity palette, index = level
var heatmapColors = [5]string{"#2D333B", "#9BE9A8", "#40C463", "#30A14E", "#216E39"}

// RenderHeatmap draws the activity grid as terminal cells with month
// labels above and the legend below.
func RenderHeatmap(grid *heatmap.Grid) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d Focus Time Heatmap", grid.Year)))
	b.WriteString("\n\n")

	// Month labels, two columns per week cell ("■ ")
	labels := make([]byte, heatmap.Weeks*2)
	for i := range labels {
		labels[i] = ' '
	}
	for _, tick := range grid.MonthTicks {
		for i, c := range []byte(tick.Label) {
			pos := tick.Week*2 + i
			if pos < len(labels) {
				labels[pos] = c
			}
		}
	}
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString("    " + labelStyle.Render(string(labels)) + "\n")

	cellStyles := [5]lipgloss.Style{}
	for i, color := range heatmapColors {
		cellStyles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}

	dayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	for day := 0; day < heatmap.Days; day++ {
		b.WriteString(dayStyle.Render(heatmap.DayNames[day]) + " ")
		for week := 0; week < heatmap.Weeks; week++ {
			b.WriteString(cellStyles[grid.Levels[day][week]].Render("■ "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n    ")
	for level, label := range grid.Legend {
		b.WriteString(cellStyles[level].Render("■"))
		b.WriteString(" " + labelStyle.Render(label) + "   ")
	}
	b.WriteString("\n")

	return b.String()
}
