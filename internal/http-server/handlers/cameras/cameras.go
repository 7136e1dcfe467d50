package camerashandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/rtsp-agents/cameras-backend/internal/domain/errs"
	"github.com/rtsp-agents/cameras-backend/internal/domain/models"
	"github.com/rtsp-agents/cameras-backend/internal/http-server/handlers"
	"github.com/rtsp-agents/cameras-backend/internal/lib/api/response"
	"github.com/rtsp-agents/cameras-backend/internal/lib/sl"
)

type CameraHandler struct {
	log    *slog.Logger
	camera Camera
}

type Camera interface {
	SaveCamera(rtspURL, countryCode, countryName, city string) (models.Camera, error)
	Camera(cameraID, rtspURL string) (models.Camera, error)
	CameraIDs() ([]string, error)
	Import(report models.CameraImport) (models.Camera, error)
}

func New(
	log *slog.Logger,
	camera Camera,
) *CameraHandler {
	return &CameraHandler{
		log:    log,
		camera: camera,
	}
}

type SaveRequest struct {
	RTSPURL     string `json:"rtspUrl" validate:"required"`
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
	City        string `json:"city"`
}

func (h *CameraHandler) SaveCamera(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.SaveCamera"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req SaveRequest
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")

			handlers.Error(w, r, http.StatusBadRequest, response.Error("empty request", ""))

			return
		}

		log.Error("failed to decode request body", sl.Err(err))

		handlers.Error(w, r, http.StatusInternalServerError, response.Error("failed to decode request", middleware.GetReqID(r.Context())))

		return
	}

	log.Info("request body decoded", slog.Any("request", req))

	if err := validator.New().Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		handlers.Error(w, r, http.StatusBadRequest, response.ValidationError(validateErr))

		return
	}

	cam, err := h.camera.SaveCamera(req.RTSPURL, req.CountryCode, req.CountryName, req.City)
	if err != nil {
		if errors.Is(err, errs.ErrCameraAlreadyExists) {
			log.Error("camera already exists", sl.Err(err))

			handlers.Error(w, r, http.StatusBadRequest, response.Error("camera already exists", ""))

			return
		}

		log.Error("failed to save camera", sl.Err(err))

		handlers.Error(w, r, http.StatusInternalServerError, response.Error("failed to save new camera", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, cam)
}

func (h *CameraHandler) Camera(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.Camera"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cameraID := r.URL.Query().Get("id")
	rtspURL := r.URL.Query().Get("rtspUrl")

	cam, err := h.camera.Camera(cameraID, rtspURL)
	if err != nil {
		if errors.Is(err, errs.ErrAmbiguousSelector) {
			log.Error("ambiguous camera selector")

			handlers.Error(w, r, http.StatusBadRequest, response.Error("id and rtspUrl are mutually exclusive", ""))

			return
		}
		if errors.Is(err, errs.ErrCameraNotFound) {
			handlers.Error(w, r, http.StatusNotFound, response.Error("camera not found", ""))

			return
		}

		log.Error("failed to get camera", sl.Err(err))

		handlers.Error(w, r, http.StatusInternalServerError, response.Error("failed to get camera", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, cam)
}

func (h *CameraHandler) CameraIDs(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.CameraIDs"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ids, err := h.camera.CameraIDs()
	if err != nil {
		log.Error("failed to list camera ids", sl.Err(err))

		handlers.Error(w, r, http.StatusInternalServerError, response.Error("failed to list camera ids", middleware.GetReqID(r.Context())))

		return
	}

	if ids == nil {
		ids = []string{}
	}

	render.JSON(w, r, map[string][]string{"cameraIds": ids})
}

func (h *CameraHandler) Import(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.Import"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CameraImport
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")

			handlers.Error(w, r, http.StatusBadRequest, response.Error("empty request", ""))

			return
		}

		log.Error("failed to decode request body", sl.Err(err))

		handlers.Error(w, r, http.StatusInternalServerError, response.Error("failed to decode request", middleware.GetReqID(r.Context())))

		return
	}

	log.Info("request body decoded", slog.String("url", req.URL), slog.String("status", req.Status))

	if err := validator.New().Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		handlers.Error(w, r, http.StatusBadRequest, response.ValidationError(validateErr))

		return
	}

	cam, err := h.camera.Import(req)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidStatus) {
			handlers.Error(w, r, http.StatusBadRequest, response.Error("invalid camera status", ""))

			return
		}
		if errors.Is(err, errs.ErrCameraNotFound) {
			handlers.Error(w, r, http.StatusNotFound, response.Error("camera not found", ""))

			return
		}

		log.Error("failed to import camera", sl.Err(err))

		handlers.Error(w, r, http.StatusInternalServerError, response.Error("failed to import camera", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, cam)
}
