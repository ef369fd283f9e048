package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Skotchmaster/academic_records/internal/config"
	"github.com/Skotchmaster/academic_records/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "records-auth",
	Short: "Authentication and role authorization for the academic records app",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if dsn, _ := cmd.Flags().GetString("db-url"); dsn != "" {
			cfg.DatabaseURL = dsn
		}
		logger = logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
		slog.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db-url", "", "Database URL, postgres://... or sqlite://path (env: DATABASE_URL)")

	rootCmd.AddCommand(serveCmd, migrateCmd, rolesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
