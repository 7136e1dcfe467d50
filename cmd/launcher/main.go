package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/rtsp-agents/cameras-backend/internal/launcher"
)

func main() {
	cfg := launcher.DefaultConfig()

	flag.StringVar(&cfg.Root, "root", cfg.Root, "repository root containing the java subdirectory")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "port the backend binds to")
	flag.StringVar(&cfg.Host, "host", cfg.Host, "address the backend binds to")
	flag.StringVar(&cfg.DatabaseHost, "database-host", cfg.DatabaseHost, "database host")
	flag.IntVar(&cfg.DatabasePort, "database-port", cfg.DatabasePort, "database port")
	flag.StringVar(&cfg.DatabaseName, "database-name", cfg.DatabaseName, "database name")
	flag.StringVar(&cfg.DatabaseUser, "database-user", cfg.DatabaseUser, "database user")
	flag.StringVar(&cfg.DatabasePassword, "database-password", cfg.DatabasePassword, "database password")
	flag.Parse()

	log := slog.New(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	l := launcher.New(log, cfg)

	// The backend keeps running after the launcher exits.
	if _, err := l.Start(); err != nil {
		os.Exit(1)
	}
}
