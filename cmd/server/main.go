package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitness-scheduler/internal/app"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	application := app.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- application.Run()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			slog.Error("fitness-scheduler stopped serving", "error", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
		slog.Info("fitness-scheduler received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("fitness-scheduler shutdown incomplete", "error", err)
		os.Exit(1)
	}

	slog.Info("fitness-scheduler exited gracefully", "version", app.Version)
}
