package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timeblockhq/timeblock/internal/config"
	"github.com/timeblockhq/timeblock/internal/db"
	"github.com/timeblockhq/timeblock/internal/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg is loaded once per invocation by initApp
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "timeblock",
	Short: "A daily time-boxing planner and focus timer",
	Long: `timeblock plans your day in hour blocks, times your focus sessions
and shows you where the time actually went: daily, weekly and monthly
statistics plus a GitHub-style focus heatmap.`,
}

// initApp loads the config and initializes the database, panicking on
// failure
func initApp() {
	loaded, err := config.Load()
	if err != nil {
		panic(err)
	}
	cfg = loaded
	if err := db.Initialize(cfg.Database); err != nil {
		panic(err)
	}
}

// withDB wraps a command function to initialize config and storage first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		initApp()
		fn(cmd, args)
	}
}

// currentUser resolves the acting owner from the config, creating the
// account on first use.
func currentUser() (*models.User, error) {
	user, err := db.FindOrCreateUser(cfg.User)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user %q: %w", cfg.User, err)
	}
	return user, nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands here
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
