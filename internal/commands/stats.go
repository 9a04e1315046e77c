package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/models"
	"github.com/timeblockhq/timeblock/internal/parser"
	"github.com/timeblockhq/timeblock/internal/stats"
	"github.com/timeblockhq/timeblock/internal/timer"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Productivity statistics",
}

var statsDailyCmd = &cobra.Command{
	Use:   "daily [date]",
	Short: "Statistics for one day (default today)",
	Args:  cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		now := timer.System.Now()
		date := models.DateOf(now)
		if len(args) > 0 {
			date, err = parser.ParseDate(args[0], now)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		report, err := stats.New(db.StatsSource{}).Daily(user.ID, date)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📊 %s\n", report.Date.Format("Mon, Jan 2 2006"))
		fmt.Printf("Focus time:      %s\n", formatMinutes(report.TotalFocusMinutes))
		fmt.Printf("Blocks:          %d/%d completed (%.2f%%)\n",
			report.CompletedBlocks, report.TotalBlocks, report.BlockCompletionRate)
		fmt.Printf("Execution rate:  %.2f%%\n", report.ExecutionRate)
		printCategories(report.CategoryBreakdown)

		if len(report.HourlyBreakdown) > 0 {
			fmt.Println("\nBy hour:")
			for _, h := range report.HourlyBreakdown {
				fmt.Printf("  %s %2d:00  %s across %d block(s)\n",
					strings.ToUpper(string(h.Period)), h.Hour, formatMinutes(h.FocusMinutes), h.BlockCount)
			}
		}
	}),
}

var statsWeeklyCmd = &cobra.Command{
	Use:   "weekly [start-date]",
	Short: "Statistics for a 7-day window (default current week)",
	Args:  cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		now := timer.System.Now()
		start := stats.MondayOf(now)
		if len(args) > 0 {
			start, err = parser.ParseDate(args[0], now)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		report, err := stats.New(db.StatsSource{}).Weekly(user.ID, start)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📊 Week of %s – %s\n",
			report.StartDate.Format("Jan 2"), report.EndDate.Format("Jan 2 2006"))
		fmt.Printf("Focus time:      %s (avg %s/day)\n",
			formatMinutes(report.TotalFocusMinutes), formatMinutes(report.AverageDailyFocus))
		fmt.Printf("Blocks:          %d/%d completed (%.2f%%)\n",
			report.CompletedBlocks, report.TotalBlocks, report.BlockCompletionRate)
		fmt.Printf("Execution rate:  %.2f%%\n", report.ExecutionRate)

		fmt.Println("\nBy day:")
		for _, d := range report.DailyBreakdown {
			bar := strings.Repeat("█", d.FocusMinutes/15)
			fmt.Printf("  %s  %-8s %s\n", d.Date.Format("Mon 02"), formatMinutes(d.FocusMinutes), bar)
		}
		printCategories(report.CategoryBreakdown)
	}),
}

var statsMonthlyCmd = &cobra.Command{
	Use:   "monthly [yyyy-mm]",
	Short: "Statistics for a calendar month (default current month)",
	Args:  cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		now := timer.System.Now()
		year, month := now.Year(), int(now.Month())
		if len(args) > 0 {
			year, month, err = parser.ParseMonth(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		report, err := stats.New(db.StatsSource{}).Monthly(user.ID, year, month)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📊 %s %d\n", monthName(month), year)
		fmt.Printf("Focus time:      %s (avg %s/day)\n",
			formatMinutes(report.TotalFocusMinutes), formatMinutes(report.AverageDailyFocus))
		fmt.Printf("Blocks:          %d/%d completed (%.2f%%)\n",
			report.CompletedBlocks, report.TotalBlocks, report.BlockCompletionRate)
		fmt.Printf("Execution rate:  %.2f%%\n", report.ExecutionRate)
		if report.MostProductiveDay != nil {
			fmt.Printf("Best weekday:    %s\n", *report.MostProductiveDay)
		}
		if report.MostProductiveHour != nil {
			fmt.Printf("Best hour:       %02d:00\n", *report.MostProductiveHour)
		}

		if len(report.WeeklyBreakdown) > 0 {
			fmt.Println("\nBy week:")
			for _, w := range report.WeeklyBreakdown {
				fmt.Printf("  %s – %s  %s across %d block(s)\n",
					w.WeekStart.Format("Jan 02"), w.WeekEnd.Format("Jan 02"),
					formatMinutes(w.FocusMinutes), w.BlockCount)
			}
		}
		printCategories(report.CategoryBreakdown)
	}),
}

// printCategories prints the category totals in a stable order.
func printCategories(breakdown map[string]int) {
	if len(breakdown) == 0 {
		return
	}
	categories := make([]string, 0, len(breakdown))
	for c := range breakdown {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Println("\nBy category:")
	for _, c := range categories {
		fmt.Printf("  %-20s %s\n", c, formatMinutes(breakdown[c]))
	}
}

func formatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

func monthName(month int) string {
	return [...]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}[month-1]
}

func init() {
	statsCmd.AddCommand(statsDailyCmd)
	statsCmd.AddCommand(statsWeeklyCmd)
	statsCmd.AddCommand(statsMonthlyCmd)
}
