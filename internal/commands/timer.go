package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/models"
	"github.com/timeblockhq/timeblock/internal/parser"
	"github.com/timeblockhq/timeblock/internal/timer"
	"github.com/timeblockhq/timeblock/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [duration]",
	Short: "Start a focus session",
	Long: `Start a timed focus session. Opens the interactive timer by default,
use --no-ui for a simple start.

Examples:
  timeblock start 25              # 25 minute session with interactive UI
  timeblock start 1h30m --no-ui   # plain start
  timeblock start 50 --block 12   # link the session to time block #12`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		seconds, err := parser.ParseDurationSeconds(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var blockID *uint
		blockTitle := ""
		if raw, _ := cmd.Flags().GetUint("block"); raw != 0 {
			id := raw
			blockID = &id
			if block, err := db.GetBlock(user.ID, id); err == nil {
				blockTitle = block.Title
			}
		}

		session, err := db.StartSession(user.ID, seconds, blockID, timer.System)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("⏱️  Started session #%d for %s\n", session.ID, args[0])
			fmt.Printf("Started at: %s\n", session.StartedAt.Format("15:04:05"))
			return
		}

		if err := tui.RunTimerTUI(session, blockTitle, cfg.Notify); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

var pauseCmd = &cobra.Command{
	Use:   "pause [session-id]",
	Short: "Pause the running session",
	Args:  cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		runTransition(args, "⏸️  Paused session #%d\n", func(userID, sessionID uint) (*models.TimerSession, error) {
			return db.PauseSession(userID, sessionID, timer.System)
		})
	}),
}

var resumeCmd = &cobra.Command{
	Use:   "resume [session-id]",
	Short: "Resume a paused session",
	Args:  cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		runTransition(args, "▶️  Resumed session #%d\n", func(userID, sessionID uint) (*models.TimerSession, error) {
			return db.ResumeSession(userID, sessionID)
		})
	}),
}

var completeCmd = &cobra.Command{
	Use:   "complete [session-id]",
	Short: "Complete a session and credit its minutes to the linked block",
	Args:  cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		runTransition(args, "✅ Completed session #%d\n", func(userID, sessionID uint) (*models.TimerSession, error) {
			return db.CompleteSession(userID, sessionID, timer.System)
		})
	}),
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [session-id]",
	Short: "Cancel a session",
	Args:  cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		runTransition(args, "🚫 Cancelled session #%d\n", func(userID, sessionID uint) (*models.TimerSession, error) {
			return db.CancelSession(userID, sessionID)
		})
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current focus session",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := db.GetActiveSession(user.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No active focus session")
			return
		}

		fmt.Printf("⏱️  Session #%d is %s\n", session.ID, session.Status)
		fmt.Printf("Started at: %s\n", session.StartedAt.Format("15:04:05"))
		fmt.Printf("Elapsed: %d:%02d of %d:%02d scheduled\n",
			session.ElapsedTime/60, session.ElapsedTime%60,
			session.ScheduledDuration/60, session.ScheduledDuration%60)
		if session.TimeBlockID != nil {
			fmt.Printf("Linked to block #%d\n", *session.TimeBlockID)
		}
	}),
}

// runTransition applies a transition to the session named on the
// command line, falling back to the active session.
func runTransition(args []string, successFormat string, fn func(userID, sessionID uint) (*models.TimerSession, error)) {
	user, err := currentUser()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	var sessionID uint
	if len(args) > 0 {
		parsed, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid session ID '%s'\n", args[0])
			return
		}
		sessionID = uint(parsed)
	} else {
		active, err := db.GetActiveSession(user.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if active == nil {
			fmt.Println("No active focus session")
			return
		}
		sessionID = active.ID
	}

	session, err := fn(user.ID, sessionID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf(successFormat, session.ID)
}

func init() {
	startCmd.Flags().Uint("block", 0, "Time block ID to credit this session to")
	startCmd.Flags().Bool("no-ui", false, "Start timer without interactive UI")
}
