package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rtsp-agents/cameras-backend/internal/domain/models"
)

// Client talks to the cameras backend REST API on behalf of a
// health-check agent.
type Client struct {
	address    string
	token      string
	httpClient *http.Client
}

func New(address string) *Client {
	return &Client{
		address: address,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Login(email, password string) error {
	const op = "backend.Login"

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Post(c.address+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: failed to login: %s", op, resp.Status)
	}

	var res struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.token = res.Token

	return nil
}

func (c *Client) CameraIDs() ([]string, error) {
	const op = "backend.CameraIDs"

	resp, err := c.httpClient.Get(c.address + "/cameras/ids")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: failed to list camera ids: %s", op, resp.Status)
	}

	var res struct {
		CameraIDs []string `json:"cameraIds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res.CameraIDs, nil
}

func (c *Client) Camera(cameraID string) (models.Camera, error) {
	const op = "backend.Camera"

	reqURL := fmt.Sprintf("%s/cameras?id=%s", c.address, url.QueryEscape(cameraID))

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Camera{}, fmt.Errorf("%s: failed to get camera: %s", op, resp.Status)
	}

	var cam models.Camera
	if err := json.NewDecoder(resp.Body).Decode(&cam); err != nil {
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}

func (c *Client) Import(report models.CameraImport) (models.Camera, error) {
	const op = "backend.Import"

	body, err := json.Marshal(report)
	if err != nil {
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequest(http.MethodPut, c.address+"/cameras/import", bytes.NewReader(body))
	if err != nil {
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Camera{}, fmt.Errorf("%s: failed to import camera: %s", op, resp.Status)
	}

	var cam models.Camera
	if err := json.NewDecoder(resp.Body).Decode(&cam); err != nil {
		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}
