package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/models"
	"github.com/timeblockhq/timeblock/internal/parser"
	"github.com/timeblockhq/timeblock/internal/timer"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage the time blocks of a daily plan",
}

var blockAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a time block to a plan",
	Long: `Add an hour block to a daily plan (default today).

Examples:
  timeblock block add "Deep work" --period am --hour 9
  timeblock block add "Review" --period pm --hour 2 --category work --planned 45`,
	Args: cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		now := timer.System.Now()
		date := models.DateOf(now)
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			date, err = parser.ParseDate(raw, now)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		title := ""
		if len(args) > 0 {
			title = args[0]
		}
		period, _ := cmd.Flags().GetString("period")
		hour, _ := cmd.Flags().GetInt("hour")
		category, _ := cmd.Flags().GetString("category")
		description, _ := cmd.Flags().GetString("description")
		planned, _ := cmd.Flags().GetInt("planned")

		block, err := db.AddBlock(user.ID, db.AddBlockRequest{
			Date:            date,
			Period:          models.Period(period),
			Hour:            hour,
			Title:           title,
			Description:     description,
			Category:        category,
			PlannedDuration: planned,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📦 Added block #%d at %s %d:00 on %s\n",
			block.ID, block.Period, block.Hour, date.Format("2006-01-02"))
	}),
}

var blockDoneCmd = &cobra.Command{
	Use:   "done [block-id]",
	Short: "Mark a time block as completed",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		blockID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid block ID '%s'\n", args[0])
			return
		}

		block, rate, err := db.MarkBlockCompleted(user.ID, uint(blockID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ Marked block #%d as done\n", block.ID)
		fmt.Printf("Plan completion rate: %.2f%%\n", rate)
	}),
}

var blockTimeCmd = &cobra.Command{
	Use:   "time [block-id] [minutes]",
	Short: "Add worked minutes to a block",
	Args:  cobra.ExactArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		blockID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid block ID '%s'\n", args[0])
			return
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("Error: invalid minutes '%s'\n", args[1])
			return
		}

		block, err := db.AddBlockTime(user.ID, uint(blockID), minutes)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("⏲️  Block #%d now has %dm worked of %dm planned (%.2f%%)\n",
			block.ID, block.ActualDuration, block.PlannedDuration, block.ExecutionRate())
	}),
}

var blockRmCmd = &cobra.Command{
	Use:   "rm [block-id]",
	Short: "Delete a time block",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		blockID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid block ID '%s'\n", args[0])
			return
		}

		if err := db.DeleteBlock(user.ID, uint(blockID)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted block #%d\n", blockID)
	}),
}

func init() {
	blockAddCmd.Flags().String("date", "", "Plan date (yyyy-mm-dd, default today)")
	blockAddCmd.Flags().String("period", "", "am or pm")
	blockAddCmd.Flags().Int("hour", 0, "Hour slot, 1-12")
	blockAddCmd.Flags().String("category", "", "Category label")
	blockAddCmd.Flags().String("description", "", "Block description")
	blockAddCmd.Flags().Int("planned", 60, "Planned duration in minutes")

	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockDoneCmd)
	blockCmd.AddCommand(blockTimeCmd)
	blockCmd.AddCommand(blockRmCmd)
}
