package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/events-portal/backend/internal/config"
	"example.com/events-portal/backend/internal/database"
	"example.com/events-portal/backend/internal/metrics"
	"example.com/events-portal/backend/internal/server"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.Level}))
	slog.SetDefault(logger)

	deps := server.Deps{Logger: logger, Metrics: metrics.New()}

	if cfg.Database.HasDatabase() {
		db, err := database.Open(context.Background(), cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()

		deps.DB = db
	} else {
		logger.Info("DATABASE_URL is empty, readiness check skips database")
	}

	e, err := server.New(cfg, deps)
	if err != nil {
		logger.Error("failed to build server", slog.String("error", err.Error()))
		os.Exit(1)
	}
	httpServer := server.NewHTTPServer(cfg.Server, e)

	logger.Info("http server started",
		slog.String("addr", httpServer.Addr),
		slog.String("environment", cfg.Env),
	)
	serverErr := startServer(e, httpServer)

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)

	if err := waitForShutdown(serverErr, shutdownSignal); err != nil {
		logger.Error("http server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// startServer запускает сервер в горутине; канал получает ошибку, если сервер упал не из-за Shutdown.
func startServer(e *echo.Echo, httpServer *http.Server) <-chan error {
	serverErr := make(chan error, 1)

	go func() {
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	return serverErr
}

// waitForShutdown ждет сигнала остановки или ошибки сервера.
func waitForShutdown(serverErr <-chan error, signals <-chan os.Signal) error {
	select {
	case err, ok := <-serverErr:
		if ok {
			return err
		}
		return nil
	case <-signals:
		return nil
	}
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
		return
	}

	if _, err := os.Stat("../.env"); err == nil {
		_ = os.Setenv("ENV_FILE", "../.env")
	}
}
