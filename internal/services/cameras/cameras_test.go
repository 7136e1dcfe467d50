package cameraservice

import (
	"encoding/base64"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtsp-agents/cameras-backend/internal/domain/constants"
	"github.com/rtsp-agents/cameras-backend/internal/domain/errs"
	"github.com/rtsp-agents/cameras-backend/internal/domain/models"
)

type mockStorage struct {
	cameras map[string]models.Camera // keyed by rtsp url

	saved   []models.Camera
	updated []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{cameras: make(map[string]models.Camera)}
}

func (m *mockStorage) SaveCamera(cam models.Camera) (models.Camera, error) {
	if _, ok := m.cameras[cam.RTSPURL]; ok {
		return cam, errs.ErrCameraAlreadyExists
	}

	m.cameras[cam.RTSPURL] = cam
	m.saved = append(m.saved, cam)

	return cam, nil
}

func (m *mockStorage) Camera(cameraID string) (models.Camera, error) {
	for _, cam := range m.cameras {
		if cam.CameraID == cameraID {
			return cam, nil
		}
	}

	return models.Camera{}, errs.ErrCameraNotFound
}

func (m *mockStorage) CameraByURL(rtspURL string) (models.Camera, error) {
	cam, ok := m.cameras[rtspURL]
	if !ok {
		return models.Camera{}, errs.ErrCameraNotFound
	}

	return cam, nil
}

func (m *mockStorage) CameraIDs() ([]string, error) {
	var ids []string
	for _, cam := range m.cameras {
		ids = append(ids, cam.CameraID)
	}

	return ids, nil
}

func (m *mockStorage) UpdateStatus(rtspURL, status string, labels models.Labels, checkedAt time.Time) (models.Camera, error) {
	cam, ok := m.cameras[rtspURL]
	if !ok {
		return models.Camera{}, errs.ErrCameraNotFound
	}

	cam.Status = status
	cam.Labels = labels
	cam.CheckedAt = checkedAt
	m.cameras[rtspURL] = cam
	m.updated = append(m.updated, rtspURL)

	return cam, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSaveCamera(t *testing.T) {
	storage := newMockStorage()
	service := New(testLogger(), t.TempDir(), storage)

	cam, err := service.SaveCamera("rtsp://192.0.2.1/stream", "DE", "Germany", "Berlin")
	require.NoError(t, err)

	assert.NotEmpty(t, cam.CameraID)
	assert.Equal(t, "rtsp://192.0.2.1/stream", cam.RTSPURL)
	assert.Equal(t, constants.StatusUnconnected, cam.Status)
	require.Len(t, storage.saved, 1)
}

func TestCamera_SelectorExclusivity(t *testing.T) {
	service := New(testLogger(), t.TempDir(), newMockStorage())

	_, err := service.Camera("some-id", "rtsp://192.0.2.1/stream")
	assert.ErrorIs(t, err, errs.ErrAmbiguousSelector)

	_, err = service.Camera("", "")
	assert.ErrorIs(t, err, errs.ErrCameraNotFound)
}

func TestCamera_ByIDAndByURL(t *testing.T) {
	storage := newMockStorage()
	service := New(testLogger(), t.TempDir(), storage)

	saved, err := service.SaveCamera("rtsp://192.0.2.1/stream", "", "", "")
	require.NoError(t, err)

	byID, err := service.Camera(saved.CameraID, "")
	require.NoError(t, err)
	assert.Equal(t, saved.CameraID, byID.CameraID)

	byURL, err := service.Camera("", saved.RTSPURL)
	require.NoError(t, err)
	assert.Equal(t, saved.CameraID, byURL.CameraID)
}

func TestImport_InvalidStatus(t *testing.T) {
	service := New(testLogger(), t.TempDir(), newMockStorage())

	_, err := service.Import(models.CameraImport{
		URL:    "rtsp://192.0.2.1/stream",
		Status: "BROKEN",
	})
	assert.ErrorIs(t, err, errs.ErrInvalidStatus)
}

func TestImport_UnknownCamera(t *testing.T) {
	service := New(testLogger(), t.TempDir(), newMockStorage())

	_, err := service.Import(models.CameraImport{
		URL:    "rtsp://192.0.2.9/stream",
		Status: constants.StatusOpen,
	})
	assert.ErrorIs(t, err, errs.ErrCameraNotFound)
}

func TestImport_UpdatesStatusAndSnapshot(t *testing.T) {
	storage := newMockStorage()
	snapshots := t.TempDir()
	service := New(testLogger(), snapshots, storage)

	saved, err := service.SaveCamera("rtsp://192.0.2.1/stream", "", "", "")
	require.NoError(t, err)

	image := []byte{0xff, 0xd8, 0xff, 0xe0}

	cam, err := service.Import(models.CameraImport{
		URL:             saved.RTSPURL,
		Status:          constants.StatusOpen,
		Labels:          []string{"HOT"},
		Base64ImageData: base64.StdEncoding.EncodeToString(image),
	})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusOpen, cam.Status)
	assert.Equal(t, models.Labels{"HOT"}, cam.Labels)
	assert.Equal(t, []string{saved.RTSPURL}, storage.updated)

	written, err := os.ReadFile(filepath.Join(snapshots, saved.CameraID+".jpg"))
	require.NoError(t, err)
	assert.Equal(t, image, written)
}

func TestImport_KeepsLabelsWhenOmitted(t *testing.T) {
	storage := newMockStorage()
	service := New(testLogger(), t.TempDir(), storage)

	saved, err := service.SaveCamera("rtsp://192.0.2.1/stream", "", "", "")
	require.NoError(t, err)

	_, err = service.Import(models.CameraImport{
		URL:    saved.RTSPURL,
		Status: constants.StatusOpen,
		Labels: []string{"HOT", "CREEPY"},
	})
	require.NoError(t, err)

	// A report without labels must not wipe the stored ones.
	cam, err := service.Import(models.CameraImport{
		URL:    saved.RTSPURL,
		Status: constants.StatusUnauthorized,
	})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusUnauthorized, cam.Status)
	assert.Equal(t, models.Labels{"HOT", "CREEPY"}, cam.Labels)
}

func TestImport_BadScreenshot(t *testing.T) {
	storage := newMockStorage()
	service := New(testLogger(), t.TempDir(), storage)

	saved, err := service.SaveCamera("rtsp://192.0.2.1/stream", "", "", "")
	require.NoError(t, err)

	_, err = service.Import(models.CameraImport{
		URL:             saved.RTSPURL,
		Status:          constants.StatusOpen,
		Base64ImageData: "not-base64!!!",
	})
	assert.Error(t, err)
	assert.Empty(t, storage.updated)
}
