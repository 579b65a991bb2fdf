package cmd

import (
	"quiz_scoring_backend/internal/app"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Run database migration on start even in release mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.ForceMigrate, _ = cmd.Flags().GetBool("migrate")

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	application.Run()
	return nil
}
