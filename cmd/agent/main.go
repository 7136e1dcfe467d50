package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rtsp-agents/cameras-backend/internal/lib/sl"
	healthcheckservice "github.com/rtsp-agents/cameras-backend/internal/services/healthcheck"
	"github.com/rtsp-agents/cameras-backend/internal/services/healthcheck/backend"
)

const (
	defaultBackendURL = "http://10.8.0.1:8080"
	defaultSleepTimer = 10 * time.Second
	defaultOutputDir  = "health-check"
	defaultThreads    = 50
	probeTimeout      = 10 * time.Second
)

func main() {
	var (
		backendURL  string
		healthCheck bool
		daemon      bool
		sleepTimer  time.Duration
		outputDir   string
		threads     int
	)

	flag.StringVar(&backendURL, "rtsp-backend-url", defaultBackendURL, "URL of the backend API")
	flag.BoolVar(&healthCheck, "health-check", false, "recheck the status of known cameras and push the results back")
	flag.BoolVar(&daemon, "daemon", false, "keep rechecking with the sleep timer interval")
	flag.DurationVar(&sleepTimer, "sleep-timer", defaultSleepTimer, "interval between passes in daemon mode")
	flag.StringVar(&outputDir, "output", defaultOutputDir, "directory for per-camera artifacts")
	flag.IntVar(&threads, "threads", defaultThreads, "number of concurrent probes")
	flag.Parse()

	log := slog.New(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	if !healthCheck {
		flag.Usage()
		os.Exit(1)
	}

	client := backend.New(backendURL)

	email := os.Getenv("AGENT_EMAIL")
	password := os.Getenv("AGENT_PASSWORD")
	if email == "" || password == "" {
		panic("AGENT_EMAIL and AGENT_PASSWORD are required")
	}

	if err := client.Login(email, password); err != nil {
		log.Error("failed to login to the backend", sl.Err(err))
		os.Exit(1)
	}

	service := healthcheckservice.New(
		log,
		client,
		healthcheckservice.NewRTSPProber(probeTimeout),
		outputDir,
		threads,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if daemon {
		log.Info("starting the health-check daemon", slog.Duration("sleep_timer", sleepTimer))

		err = service.RunDaemon(ctx, sleepTimer)
	} else {
		err = service.Run(ctx)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("health-check failed", sl.Err(err))
		os.Exit(1)
	}
}
