package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/models"
	"github.com/timeblockhq/timeblock/internal/parser"
	"github.com/timeblockhq/timeblock/internal/timer"
	"github.com/timeblockhq/timeblock/internal/tui"
)

var planCmd = &cobra.Command{
	Use:   "plan [date]",
	Short: "Show or edit a daily plan",
	Long: `Show the plan for a date (default today): priorities, brain dump and
the hour blocks with their completion and execution rates.

Examples:
  timeblock plan                # today's plan
  timeblock plan 2026-09-01
  timeblock plan --edit         # priorities + brain dump wizard`,
	Args: cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		date := models.DateOf(timer.System.Now())
		if len(args) > 0 {
			date, err = parser.ParseDate(args[0], timer.System.Now())
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		if edit, _ := cmd.Flags().GetBool("edit"); edit {
			existing, err := db.GetPlanByDate(user.ID, date)
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if err := tui.RunPlanTUI(user.ID, date, existing); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		plan, err := db.GetPlanByDate(user.ID, date)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				fmt.Printf("No plan for %s. Create one with 'timeblock plan --edit' or 'timeblock block add'.\n",
					date.Format("2006-01-02"))
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}

		printPlan(plan)
	}),
}

var planPrioritiesCmd = &cobra.Command{
	Use:   "priorities [p1] [p2] [p3]",
	Short: "Set the day's top priorities",
	Long: `Set up to three priorities on a plan (default today). Replaces the
existing list; run with no arguments to clear it.

Examples:
  timeblock plan priorities "Ship release" "Review PRs"
  timeblock plan priorities --date tomorrow "Prep talk"`,
	Args: cobra.MaximumNArgs(models.MaxPriorities),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		date, err := flagDate(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		plan, err := db.SetPriorities(user.ID, date, args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(plan.Priorities) == 0 {
			fmt.Printf("📝 Cleared priorities for %s\n", date.Format("2006-01-02"))
			return
		}
		fmt.Printf("📝 Priorities for %s:\n", date.Format("2006-01-02"))
		for i, p := range plan.Priorities {
			fmt.Printf("  %d. %s\n", i+1, p)
		}
	}),
}

var planNoteCmd = &cobra.Command{
	Use:   "note [text]",
	Short: "Set the day's brain dump",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		date, err := flagDate(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if _, err := db.SetBrainDump(user.ID, date, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📝 Saved brain dump for %s\n", date.Format("2006-01-02"))
	}),
}

// flagDate resolves the --date flag, defaulting to today.
func flagDate(cmd *cobra.Command) (time.Time, error) {
	now := timer.System.Now()
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		return parser.ParseDate(raw, now)
	}
	return models.DateOf(now), nil
}

var recalcCmd = &cobra.Command{
	Use:   "recalc [plan-id]",
	Short: "Recompute a plan's completion rate",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		planID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid plan ID '%s'\n", args[0])
			return
		}

		rate, err := db.RecalculateCompletion(user.ID, uint(planID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Completion rate of plan #%d: %.2f%%\n", planID, rate)
	}),
}

func printPlan(plan *models.DailyPlan) {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess))

	fmt.Println(titleStyle.Render(fmt.Sprintf("Plan #%d · %s · %.2f%% complete",
		plan.ID, plan.Date.Format("Mon, Jan 2 2006"), plan.CompletionRate)))

	if len(plan.Priorities) > 0 {
		fmt.Println()
		for i, p := range plan.Priorities {
			fmt.Printf("  %d. %s\n", i+1, p)
		}
	}

	if plan.BrainDump != "" {
		fmt.Println()
		fmt.Println(dimStyle.Render(plan.BrainDump))
	}

	fmt.Println()
	if len(plan.TimeBlocks) == 0 {
		fmt.Println(dimStyle.Render("No time blocks yet."))
		return
	}

	for _, block := range plan.TimeBlocks {
		marker := "○"
		if block.IsCompleted {
			marker = doneStyle.Render("●")
		}
		title := block.Title
		if title == "" {
			title = "(untitled)"
		}
		line := fmt.Sprintf("  %s #%-3d %s %2d:00  %-30s %3dm/%3dm  %6.2f%%",
			marker, block.ID, strings.ToUpper(string(block.Period)), block.Hour,
			title, block.ActualDuration, block.PlannedDuration, block.ExecutionRate())
		if block.Category != "" {
			line += dimStyle.Render("  [" + block.Category + "]")
		}
		fmt.Println(line)
	}
}

func init() {
	planCmd.Flags().Bool("edit", false, "Edit priorities and brain dump interactively")
	planPrioritiesCmd.Flags().String("date", "", "Plan date (yyyy-mm-dd, default today)")
	planNoteCmd.Flags().String("date", "", "Plan date (yyyy-mm-dd, default today)")

	planCmd.AddCommand(planPrioritiesCmd)
	planCmd.AddCommand(planNoteCmd)
	planCmd.AddCommand(recalcCmd)
}
