package cameraservice

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lithammer/shortuuid/v3"

	"github.com/rtsp-agents/cameras-backend/internal/domain/constants"
	"github.com/rtsp-agents/cameras-backend/internal/domain/errs"
	"github.com/rtsp-agents/cameras-backend/internal/domain/models"
	"github.com/rtsp-agents/cameras-backend/internal/lib/sl"
)

type CameraService struct {
	log           *slog.Logger
	snapshotsPath string
	storage       CameraStorage
}

type CameraStorage interface {
	SaveCamera(cam models.Camera) (models.Camera, error)
	Camera(cameraID string) (models.Camera, error)
	CameraByURL(rtspURL string) (models.Camera, error)
	CameraIDs() ([]string, error)
	UpdateStatus(rtspURL, status string, labels models.Labels, checkedAt time.Time) (models.Camera, error)
}

func New(log *slog.Logger, snapshotsPath string, storage CameraStorage) *CameraService {
	return &CameraService{
		log:           log,
		snapshotsPath: snapshotsPath,
		storage:       storage,
	}
}

func (s *CameraService) SaveCamera(rtspURL, countryCode, countryName, city string) (models.Camera, error) {
	const op = "service.cameras.SaveCamera"

	log := s.log.With(
		slog.String("op", op),
		slog.String("rtsp_url", rtspURL),
	)

	log.Info("save camera")

	cam := models.Camera{
		CameraID:    shortuuid.New(),
		RTSPURL:     rtspURL,
		CountryCode: countryCode,
		CountryName: countryName,
		City:        city,
		Status:      constants.StatusUnconnected,
		CheckedAt:   time.Now(),
	}

	cam, err := s.storage.SaveCamera(cam)
	if err != nil {
		log.Error("failed to save camera", sl.Err(err))

		return models.Camera{}, err
	}

	return cam, nil
}

// Camera resolves a single camera by id or by RTSP URL. Exactly one
// selector must be set.
func (s *CameraService) Camera(cameraID, rtspURL string) (models.Camera, error) {
	const op = "service.cameras.Camera"

	log := s.log.With(
		slog.String("op", op),
		slog.String("camera_id", cameraID),
		slog.String("rtsp_url", rtspURL),
	)

	if cameraID != "" && rtspURL != "" {
		log.Warn("both selectors supplied")

		return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrAmbiguousSelector)
	}

	var (
		cam models.Camera
		err error
	)

	switch {
	case cameraID != "":
		cam, err = s.storage.Camera(cameraID)
	case rtspURL != "":
		cam, err = s.storage.CameraByURL(rtspURL)
	default:
		return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrCameraNotFound)
	}

	if err != nil {
		log.Error("failed to get camera", sl.Err(err))

		return models.Camera{}, err
	}

	return cam, nil
}

func (s *CameraService) CameraIDs() ([]string, error) {
	const op = "service.cameras.CameraIDs"

	ids, err := s.storage.CameraIDs()
	if err != nil {
		s.log.Error("failed to list camera ids", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

// Import stores a status report from a health-check agent. A screenshot,
// when present, is written next to the camera's id under the snapshots
// directory before the database row is touched.
func (s *CameraService) Import(report models.CameraImport) (models.Camera, error) {
	const op = "service.cameras.Import"

	log := s.log.With(
		slog.String("op", op),
		slog.String("rtsp_url", report.URL),
		slog.String("status", report.Status),
	)

	if !constants.IsValidStatus(report.Status) {
		log.Warn("unknown status in report")

		return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrInvalidStatus)
	}

	cam, err := s.storage.CameraByURL(report.URL)
	if err != nil {
		log.Error("failed to get camera", sl.Err(err))

		return models.Camera{}, err
	}

	if report.Base64ImageData != "" {
		if err := s.saveSnapshot(cam.CameraID, report.Base64ImageData); err != nil {
			log.Error("failed to save snapshot", sl.Err(err))

			return models.Camera{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	labels := cam.Labels
	if report.Labels != nil {
		labels = report.Labels
	}

	cam, err = s.storage.UpdateStatus(report.URL, report.Status, labels, time.Now())
	if err != nil {
		log.Error("failed to update status", sl.Err(err))

		return models.Camera{}, errs.ErrWriteToDB
	}

	log.Info("camera status imported")

	return cam, nil
}

func (s *CameraService) saveSnapshot(cameraID, base64Data string) error {
	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return fmt.Errorf("failed to decode screenshot: %w", err)
	}

	if err := os.MkdirAll(s.snapshotsPath, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(s.snapshotsPath, cameraID+".jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}
