package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timeblockhq/timeblock/internal/db"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage local accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an account",
	Long: `Create a local account. Give it a password with --password if it
should be able to log in to the HTTP API.`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		password, _ := cmd.Flags().GetString("password")
		user, err := db.CreateUser(args[0], password)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("👤 Created user %q (#%d)\n", user.Name, user.ID)
	}),
}

var userSwitchCmd = &cobra.Command{
	Use:   "switch [name]",
	Short: "Switch the account the CLI acts as",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := db.FindOrCreateUser(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		cfg.User = user.Name
		if err := cfg.Save(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("👤 Now acting as %q\n", user.Name)
	}),
}

var userCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the account the CLI acts as",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := currentUser()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("👤 %s (#%d)\n", user.Name, user.ID)
	}),
}

func init() {
	userCreateCmd.Flags().String("password", "", "Password for HTTP API login")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userSwitchCmd)
	userCmd.AddCommand(userCurrentCmd)
}
