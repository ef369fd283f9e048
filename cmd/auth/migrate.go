package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/academic_records/internal/db"
	"github.com/Skotchmaster/academic_records/internal/repo"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users and roles tables and seed the default roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := cfg.ValidateStore(); err != nil {
			return err
		}
		gdb, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.Migrate(ctx, gdb); err != nil {
			return err
		}
		if err := db.SeedRoles(ctx, gdb); err != nil {
			return err
		}
		logger.Info("migration complete")
		return nil
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the seeded roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := cfg.ValidateStore(); err != nil {
			return err
		}
		gdb, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		roles, err := repo.NewGormRepo(gdb).ListRoles(ctx)
		if err != nil {
			return err
		}
		for _, r := range roles {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.ID, r.RoleName)
		}
		return nil
	},
}
