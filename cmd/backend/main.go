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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rtsp-agents/cameras-backend/internal/config"
	authhandler "github.com/rtsp-agents/cameras-backend/internal/http-server/handlers/auth"
	camerashandler "github.com/rtsp-agents/cameras-backend/internal/http-server/handlers/cameras"
	authmiddleware "github.com/rtsp-agents/cameras-backend/internal/http-server/middleware/auth"
	"github.com/rtsp-agents/cameras-backend/internal/http-server/middleware/logger"
	"github.com/rtsp-agents/cameras-backend/internal/lib/sl"
	authservice "github.com/rtsp-agents/cameras-backend/internal/services/auth"
	cameraservice "github.com/rtsp-agents/cameras-backend/internal/services/cameras"
	"github.com/rtsp-agents/cameras-backend/internal/storage/mariadb"
	authstorage "github.com/rtsp-agents/cameras-backend/internal/storage/mariadb/auth"
	camerastorage "github.com/rtsp-agents/cameras-backend/internal/storage/mariadb/cameras"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting application", slog.String("env", cfg.Env), slog.String("address", cfg.HTTPServer.Address))

	if cfg.DB.Password == "" {
		cfg.DB.Password = os.Getenv("MARIADB_PASSWORD")
	}
	if cfg.DB.Password == "" {
		panic("MARIADB_PASSWORD is required")
	}

	storage, err := mariadb.New(cfg.DB)
	if err != nil {
		panic(err)
	}

	authStorage := authstorage.New(storage)
	cameraStorage := camerastorage.New(storage)

	authService := authservice.New(log, authStorage, authStorage, cfg.TokenTTL, cfg.Secret)
	cameraService := cameraservice.New(log, cfg.SnapshotsPath, cameraStorage)

	if os.Getenv("ADMIN_EMAIL") != "" {
		if err := authService.CreateInitialAdmin(); err != nil {
			panic(err)
		}
	}

	authHandler := authhandler.New(log, authService)
	cameraHandler := camerashandler.New(log, cameraService)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(logger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.RegisterNewUser)
		r.Post("/login", authHandler.Login)
	})

	router.Route("/cameras", func(r chi.Router) {
		r.Get("/", cameraHandler.Camera)
		r.Get("/ids", cameraHandler.CameraIDs)

		r.Group(func(r chi.Router) {
			r.Use(authmiddleware.JWTAuth(cfg.Secret))

			r.Put("/import", cameraHandler.Import)

			// Registering new cameras is reserved for admins; agents
			// only push status reports.
			r.With(authmiddleware.AdminRequired).Post("/", cameraHandler.SaveCamera)
		})
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", sl.Err(err))
			stop()
		}
	}()

	log.Info("server started")

	<-ctx.Done()

	log.Info("stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", sl.Err(err))
	}

	log.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
