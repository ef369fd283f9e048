package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/academic_records/internal/app"
	"github.com/Skotchmaster/academic_records/internal/db"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		gdb, err := db.Open(initCtx, cfg.DatabaseURL)
		if err == nil {
			err = db.Migrate(initCtx, gdb)
		}
		if err == nil {
			err = db.SeedRoles(initCtx, gdb)
		}
		cancel()
		if err != nil {
			return fmt.Errorf("db init: %w", err)
		}
		defer func() {
			if err := db.Close(gdb); err != nil {
				logger.Error("db close error", "error", err)
			}
		}()

		a := app.New(cfg, gdb, logger, nil)
		defer func() {
			if err := a.Events.Close(); err != nil {
				logger.Error("kafka close error", "error", err)
			}
		}()

		go func() {
			logger.Info("listening", "addr", cfg.HTTPAddr)
			if err := a.Echo.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("echo start", "error", err)
				os.Exit(1)
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop

		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			logger.Error("echo shutdown", "error", err)
		}
		logger.Info("shutdown complete")
		return nil
	},
}
