package camerastorage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/rtsp-agents/cameras-backend/internal/domain/errs"
	"github.com/rtsp-agents/cameras-backend/internal/domain/models"
	"github.com/rtsp-agents/cameras-backend/internal/storage/mariadb"
)

const duplicateEntry = 1062

type CameraStorage struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *CameraStorage {
	return &CameraStorage{
		db: db,
	}
}

func (s *CameraStorage) SaveCamera(cam models.Camera) (models.Camera, error) {
	const op = "storage.mariadb.cameras.SaveCamera"

	query := fmt.Sprintf(`INSERT INTO %s (camera_id, rtsp_url, country_code, country_name, city, status, labels, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, mariadb.CamerasTable)

	_, err := s.db.Exec(query,
		cam.CameraID, cam.RTSPURL, cam.CountryCode, cam.CountryName, cam.City, cam.Status, cam.Labels, cam.CheckedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntry {
			return cam, fmt.Errorf("%s: %w", op, errs.ErrCameraAlreadyExists)
		}

		return cam, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (s *CameraStorage) Camera(cameraID string) (models.Camera, error) {
	const op = "storage.mariadb.cameras.Camera"

	var cam models.Camera
	query := fmt.Sprintf("SELECT camera_id, rtsp_url, country_code, country_name, city, status, labels, checked_at FROM %s WHERE camera_id = ?", mariadb.CamerasTable)

	if err := s.db.Get(&cam, query, cameraID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrCameraNotFound)
		}

		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (s *CameraStorage) CameraByURL(rtspURL string) (models.Camera, error) {
	const op = "storage.mariadb.cameras.CameraByURL"

	var cam models.Camera
	query := fmt.Sprintf("SELECT camera_id, rtsp_url, country_code, country_name, city, status, labels, checked_at FROM %s WHERE rtsp_url = ?", mariadb.CamerasTable)

	if err := s.db.Get(&cam, query, rtspURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Camera{}, fmt.Errorf("%s: %w", op, errs.ErrCameraNotFound)
		}

		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (s *CameraStorage) CameraIDs() ([]string, error) {
	const op = "storage.mariadb.cameras.CameraIDs"

	var ids []string
	query := fmt.Sprintf("SELECT camera_id FROM %s ORDER BY camera_id", mariadb.CamerasTable)

	if err := s.db.Select(&ids, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

func (s *CameraStorage) UpdateStatus(rtspURL, status string, labels models.Labels, checkedAt time.Time) (models.Camera, error) {
	const op = "storage.mariadb.cameras.UpdateStatus"

	query := fmt.Sprintf("UPDATE %s SET status = ?, labels = ?, checked_at = ? WHERE rtsp_url = ?", mariadb.CamerasTable)

	// RowsAffected is 0 both for a missing row and for an unchanged one,
	// so existence is settled by the follow-up select.
	if _, err := s.db.Exec(query, status, labels, checkedAt, rtspURL); err != nil {
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.CameraByURL(rtspURL)
}
