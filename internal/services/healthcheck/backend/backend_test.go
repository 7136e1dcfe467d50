package backend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtsp-agents/cameras-backend/internal/domain/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *[]models.CameraImport) {
	t.Helper()

	var imports []models.CameraImport

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req["email"] != "agent@example.com" || req["password"] != "pass" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
	})

	mux.HandleFunc("/cameras/ids", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]string{"cameraIds": {"cam-1", "cam-2"}})
	})

	mux.HandleFunc("/cameras", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "cam-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		json.NewEncoder(w).Encode(models.Camera{CameraID: "cam-1", RTSPURL: "rtsp://192.0.2.1/stream"})
	})

	mux.HandleFunc("/cameras/import", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var report models.CameraImport
		require.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		imports = append(imports, report)

		json.NewEncoder(w).Encode(models.Camera{RTSPURL: report.URL, Status: report.Status})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, &imports
}

func TestClient_Login(t *testing.T) {
	srv, _ := newTestServer(t)
	client := New(srv.URL)

	require.NoError(t, client.Login("agent@example.com", "pass"))
	assert.Equal(t, "test-token", client.token)

	assert.Error(t, New(srv.URL).Login("agent@example.com", "wrong"))
}

func TestClient_CameraIDs(t *testing.T) {
	srv, _ := newTestServer(t)
	client := New(srv.URL)

	ids, err := client.CameraIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"cam-1", "cam-2"}, ids)
}

func TestClient_Camera(t *testing.T) {
	srv, _ := newTestServer(t)
	client := New(srv.URL)

	cam, err := client.Camera("cam-1")
	require.NoError(t, err)
	assert.Equal(t, "rtsp://192.0.2.1/stream", cam.RTSPURL)

	_, err = client.Camera("cam-9")
	assert.Error(t, err)
}

func TestClient_Import(t *testing.T) {
	srv, imports := newTestServer(t)
	client := New(srv.URL)

	require.NoError(t, client.Login("agent@example.com", "pass"))

	cam, err := client.Import(models.CameraImport{
		URL:    "rtsp://192.0.2.1/stream",
		Status: "OPEN",
	})
	require.NoError(t, err)

	assert.Equal(t, "OPEN", cam.Status)
	require.Len(t, *imports, 1)
	assert.Equal(t, "rtsp://192.0.2.1/stream", (*imports)[0].URL)
}

func TestClient_Import_WithoutToken(t *testing.T) {
	srv, _ := newTestServer(t)
	client := New(srv.URL)

	_, err := client.Import(models.CameraImport{
		URL:    "rtsp://192.0.2.1/stream",
		Status: "OPEN",
	})
	assert.Error(t, err)
}
