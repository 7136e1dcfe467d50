package healthcheckservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rtsp-agents/cameras-backend/internal/domain/models"
	"github.com/rtsp-agents/cameras-backend/internal/lib/sl"
)

type HealthCheckService struct {
	log       *slog.Logger
	backend   Backend
	prober    Prober
	outputDir string
	threads   int
}

type Backend interface {
	CameraIDs() ([]string, error)
	Camera(cameraID string) (models.Camera, error)
	Import(report models.CameraImport) (models.Camera, error)
}

type Prober interface {
	Probe(rtspURL string) string
}

func New(log *slog.Logger, backend Backend, prober Prober, outputDir string, threads int) *HealthCheckService {
	if threads < 1 {
		threads = 1
	}

	return &HealthCheckService{
		log:       log,
		backend:   backend,
		prober:    prober,
		outputDir: outputDir,
		threads:   threads,
	}
}

// Run performs a single health-check pass: download the camera list,
// probe every stream with a bounded worker pool, write the per-camera
// artifacts and push the results back to the backend.
func (s *HealthCheckService) Run(ctx context.Context) error {
	const op = "service.healthcheck.Run"

	if err := ctx.Err(); err != nil {
		return err
	}

	log := s.log.With(slog.String("op", op))

	log.Info("downloading camera ids from the backend")

	ids, err := s.backend.CameraIDs()
	if err != nil {
		log.Error("failed to download camera ids", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	if len(ids) == 0 {
		log.Info("no cameras have been downloaded from the backend")

		return nil
	}

	log.Info("camera ids discovered", slog.Int("count", len(ids)))

	cameras := make([]models.Camera, 0, len(ids))
	for _, id := range ids {
		cam, err := s.backend.Camera(id)
		if err != nil {
			log.Error("failed to get camera", slog.String("camera_id", id), sl.Err(err))

			continue
		}

		cameras = append(cameras, cam)
	}

	if len(cameras) == 0 {
		log.Info("no cameras have been passed for the health-check")

		return nil
	}

	if err := os.MkdirAll(s.outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("starting health-check", slog.Int("cameras", len(cameras)), slog.Int("threads", s.threads))

	jobs := make(chan models.Camera)

	var wg sync.WaitGroup
	for i := 0; i < s.threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for cam := range jobs {
				s.checkCamera(cam)
			}
		}()
	}

	for _, cam := range cameras {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()

			return ctx.Err()
		case jobs <- cam:
		}
	}

	close(jobs)
	wg.Wait()

	return nil
}

// RunDaemon repeats health-check passes with the given interval until the
// context is cancelled.
func (s *HealthCheckService) RunDaemon(ctx context.Context, interval time.Duration) error {
	const op = "service.healthcheck.RunDaemon"

	log := s.log.With(slog.String("op", op))

	for {
		if err := s.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			log.Error("health-check pass failed", sl.Err(err))
		}

		log.Info("sleeping", slog.Duration("interval", interval))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (s *HealthCheckService) checkCamera(cam models.Camera) {
	log := s.log.With(
		slog.String("camera_id", cam.CameraID),
		slog.String("rtsp_url", cam.RTSPURL),
	)

	status := s.prober.Probe(cam.RTSPURL)

	cam.Status = status

	if err := s.writeArtifact(cam); err != nil {
		log.Error("failed to write artifact", sl.Err(err))
	}

	_, err := s.backend.Import(models.CameraImport{
		URL:    cam.RTSPURL,
		Status: status,
		Labels: cam.Labels,
	})
	if err != nil {
		log.Error("health check of the camera has failed", sl.Err(err))

		return
	}

	log.Info("health check of the camera has been completed", slog.String("status", status))
}

func (s *HealthCheckService) writeArtifact(cam models.Camera) error {
	artifact := struct {
		CountryCode string `json:"countryCode"`
		CountryName string `json:"countryName"`
		City        string `json:"city"`
		RTSPURL     string `json:"rtspUrl"`
		CameraID    string `json:"cameraId"`
		Status      string `json:"status"`
	}{
		CountryCode: cam.CountryCode,
		CountryName: cam.CountryName,
		City:        cam.City,
		RTSPURL:     cam.RTSPURL,
		CameraID:    cam.CameraID,
		Status:      cam.Status,
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		return err
	}

	path := filepath.Join(s.outputDir, cam.CameraID+".json")

	return os.WriteFile(path, data, 0o644)
}
