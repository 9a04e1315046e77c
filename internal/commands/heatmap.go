package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/heatmap"
	"github.com/timeblockhq/timeblock/internal/timer"
	"github.com/timeblockhq/timeblock/internal/tui"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap [year]",
	Short: "Show the focus time heatmap for a year",
	Args:  cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		year := timer.System.Now().Year()
		if len(args) > 0 {
			year, err = strconv.Atoi(args[0])
			if err != nil {
				fmt.Printf("Error: invalid year '%s'\n", args[0])
				return
			}
		}

		end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		sessions, err := db.CompletedSessionsInRange(user.ID, end.AddDate(0, 0, -370), end)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		grid, err := heatmap.Build(year, heatmap.FocusByDay(sessions))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Println(tui.RenderHeatmap(grid))
	}),
}
