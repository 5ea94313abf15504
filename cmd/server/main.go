package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
)

const shutdownTimeout = 45 * time.Second

func main() {
	config.SetLogLevel()

	app, cfg := internal.SetupApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down server")

		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			slog.Error("Failed to shut down server", "error", err)
		}
	}()

	address := cfg.ServerHost + ":" + cfg.ServerPort
	slog.Info("Starting server", "address", address, "prefork", cfg.Prefork, "ai_depth", cfg.AI.Depth,
		"ai_time_budget", cfg.AI.TimeBudget, "ai_workers", cfg.AI.Workers)

	if err := app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
