package media

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gestionimagenes/backend/internal/auth"
	"github.com/gestionimagenes/backend/internal/transport"
	"github.com/gestionimagenes/backend/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	SaveFloorImages(ownerID int64, dto FloorUploadDTO) ([]string, error)
	SaveVehicleImages(ownerID int64, dto VehicleUploadDTO) ([]string, error)
	ListFloorImages(requester *auth.User) ([]*FloorImageRecord, error)
	ListVehicleImages(plate, date string) ([]*VehicleImage, error)
	FilePath(filename string) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service        ServiceAPI
	maxUploadBytes int64
}

func NewHandler(service ServiceAPI, maxUploadBytes int64) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler:    transport.NewBaseHandler(lg),
		Service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /upload: multipart form with parallel file[] and
// last_modified[] fields plus an optional piso field.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.Logger.Error("Upload: invalid multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	dto := FloorUploadDTO{
		Piso:         r.FormValue("piso"),
		Files:        r.MultipartForm.File["file"],
		LastModified: r.MultipartForm.Value["last_modified"],
	}

	saved, err := h.Service.SaveFloorImages(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("successfully uploaded %d images", len(saved)),
		"files":   saved,
	})
}

// ListImages handles GET /images with role-scoped rows.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.Service.ListFloorImages(user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

// ServeFile handles GET /uploads/{filename}. Files are public by filename;
// there is deliberately no ownership check (the gallery links directly).
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.Service.FilePath(filename)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	http.ServeFile(w, r, path)
}

// UploadCarImages handles POST /upload_car_images: plate plus exactly four
// images mapped positionally to front, rear, left, right.
func (h *Handler) UploadCarImages(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.Logger.Error("UploadCarImages: invalid multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	dto := VehicleUploadDTO{
		Plate: r.FormValue("plate"),
		Files: r.MultipartForm.File["images"],
	}

	sections, err := h.Service.SaveVehicleImages(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "vehicle images uploaded successfully",
		"sections": sections,
	})
}

// GetCarImages handles GET /get_car_images with optional plate and date
// query filters.
func (h *Handler) GetCarImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.Service.ListVehicleImages(
		r.URL.Query().Get("plate"),
		r.URL.Query().Get("date"),
	)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, images)
}
