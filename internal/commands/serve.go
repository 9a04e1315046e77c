package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timeblockhq/timeblock/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the JWT-authenticated HTTP API for frontend clients. Requires
server.jwt_secret to be set in ~/.timeblock/config.yaml.`,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		srv, err := server.New(cfg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := srv.Run(); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
}
