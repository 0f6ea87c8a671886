package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/myit/inventory/internal/api"
	"github.com/myit/inventory/internal/auth"
	"github.com/myit/inventory/internal/config"
	"github.com/myit/inventory/internal/db"
	"github.com/myit/inventory/internal/imaging"
	"github.com/myit/inventory/internal/store"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "passwd":
			os.Exit(cmdPasswd(args[1:]))
		case "serve":
			args = args[1:]
		}
	}
	os.Exit(cmdServe(args))
}

func cmdServe(args []string) int {
	cfg, err := config.Load(args, os.Getenv, os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		return 1
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		return 1
	}

	accounts := store.DefaultAccounts
	if cfg.UsersFile != "" {
		accounts, err = store.LoadSeedAccounts(cfg.UsersFile)
		if err != nil {
			slog.Error("failed to load seed accounts", "error", err)
			return 1
		}
	}
	seeded, err := store.SeedUsers(context.Background(), database, accounts)
	if err != nil {
		slog.Error("failed to seed users", "error", err)
		return 1
	}
	if seeded > 0 {
		slog.Warn("seeded initial accounts, change their passwords", "count", seeded)
	}

	slog.Info("database ready", "path", cfg.DBPath)

	router := api.NewRouter(database, auth.NewSessions(), api.Options{
		DBPath:       cfg.DBPath,
		CORSOrigin:   cfg.CORSOrigin,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Images:       imaging.NewProcessor(cfg.ImageMaxDimension),
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		return 1
	}

	slog.Info("server stopped, closing database")
	return 0
}
