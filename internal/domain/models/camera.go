package models

import "time"

type Camera struct {
	CameraID    string    `json:"cameraId" db:"camera_id"`
	RTSPURL     string    `json:"rtspUrl" db:"rtsp_url"`
	CountryCode string    `json:"countryCode" db:"country_code"`
	CountryName string    `json:"countryName" db:"country_name"`
	City        string    `json:"city" db:"city"`
	Status      string    `json:"status" db:"status"`
	Labels      Labels    `json:"labels,omitempty" db:"labels"`
	CheckedAt   time.Time `json:"checkedAt" db:"checked_at"`
}

// CameraImport is a status report pushed back by a health-check agent.
// Screenshot data is optional: only agents that can decode frames send it.
type CameraImport struct {
	URL             string   `json:"url" validate:"required"`
	Status          string   `json:"status" validate:"required"`
	Labels          []string `json:"labels,omitempty"`
	Base64ImageData string   `json:"base64ImageData,omitempty"`
}
