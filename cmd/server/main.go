package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taskforge/taskforge/internal/api"
	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/internal/database"
	"github.com/taskforge/taskforge/internal/mailer"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/internal/team"
	"github.com/taskforge/taskforge/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := user.NewRepository(db.Pool())
	teamRepo := team.NewRepository(db.Pool())
	taskRepo := task.NewRepository(db.Pool())
	tokenRepo := auth.NewTokenRepository(db.Pool())

	userService := user.NewService(userRepo, cfg.BcryptCost)
	authService := auth.NewService(
		[]byte(cfg.JWTSecret),
		time.Duration(cfg.AccessTokenTTL)*time.Minute,
		time.Duration(cfg.RefreshTokenTTL)*time.Hour,
		tokenRepo,
	)
	teamService := team.NewService(teamRepo, userRepo)
	taskService := task.NewService(taskRepo, teamRepo, userRepo)

	mailQueue := mailer.NewQueue(newSender(cfg), cfg.MailQueueSize)
	go mailQueue.Run(ctx)

	router := api.NewRouter(api.RouterDeps{
		Users:    userService,
		Auth:     authService,
		Teams:    teamService,
		Tasks:    taskService,
		Mail:     mailQueue,
		DBPinger: db,
		Version:  cfg.Version,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting taskforge server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

func newSender(cfg *config.Config) mailer.Sender {
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		slog.Warn("mailgun not configured, emails will be discarded")
		return mailer.NoopSender{}
	}
	return mailer.NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)
}
