package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/garderoba/internal/imaging"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// GarmentsHandler handles garment registration and lifecycle endpoints.
type GarmentsHandler struct {
	DB       *sql.DB
	Wardrobe *wardrobe.Wardrobe
}

type registerGarmentRequest struct {
	TagID                 string `json:"tag_id"`
	Name                  string `json:"name"`
	Category              string `json:"category"`
	Color                 string `json:"color"`
	NeedsWashingThreshold int    `json:"needs_washing_threshold"`
}

type forceStateRequest struct {
	State model.GarmentState `json:"state"`
}

type logWashRequest struct {
	Method string `json:"method"`
}

// garmentResponse adds the tag and the derived needs-washing flag to
// the stored garment fields.
type garmentResponse struct {
	TagID string `json:"tag_id"`
	*model.Garment
	NeedsWashing bool `json:"needs_washing"`
}

func toGarmentResponse(g *model.Garment) garmentResponse {
	return garmentResponse{
		TagID:        g.TagID,
		Garment:      g,
		NeedsWashing: g.NeedsWashing(),
	}
}

// List handles GET /api/garments.
func (h *GarmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	garments := h.Wardrobe.Garments()
	resp := make([]garmentResponse, 0, len(garments))
	for _, g := range garments {
		resp = append(resp, toGarmentResponse(g))
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Register handles POST /api/garments: create a garment, or update the
// descriptive fields of an existing one.
func (h *GarmentsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerGarmentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.TagID == "" || req.Name == "" || req.Category == "" {
		jsonError(w, http.StatusBadRequest, "tag_id, name, and category required")
		return
	}
	if req.NeedsWashingThreshold < 0 {
		jsonError(w, http.StatusBadRequest, "needs_washing_threshold must be positive")
		return
	}

	garment := h.Wardrobe.RegisterGarment(r.Context(), wardrobe.GarmentRegistration{
		TagID:                 req.TagID,
		Name:                  req.Name,
		Category:              req.Category,
		Color:                 req.Color,
		NeedsWashingThreshold: req.NeedsWashingThreshold,
	})

	slog.Info("garment registered", "tag_id", req.TagID, "name", req.Name)
	jsonResponse(w, http.StatusCreated, toGarmentResponse(garment))
}

// Get handles GET /api/garments/{tag}.
func (h *GarmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	garment, ok := h.Wardrobe.Garment(r.PathValue("tag"))
	if !ok {
		jsonError(w, http.StatusNotFound, "garment not found")
		return
	}
	jsonResponse(w, http.StatusOK, toGarmentResponse(garment))
}

// Delete handles DELETE /api/garments/{tag}.
func (h *GarmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tagID := r.PathValue("tag")
	if !h.Wardrobe.RemoveGarment(r.Context(), tagID) {
		jsonError(w, http.StatusNotFound, "garment not found")
		return
	}

	// History and photos go with the garment.
	if err := store.PruneScanLog(r.Context(), h.DB, tagID); err != nil {
		slog.Error("failed to prune scan log", "tag_id", tagID, "error", err)
	}
	if err := store.DeleteGarmentImage(r.Context(), h.DB, tagID); err != nil {
		slog.Error("failed to delete garment image", "tag_id", tagID, "error", err)
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "garment removed"})
}

// ForceState handles POST /api/garments/{tag}/state: overwrite the
// state without touching counters or history.
func (h *GarmentsHandler) ForceState(w http.ResponseWriter, r *http.Request) {
	var req forceStateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.State.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid state")
		return
	}

	tagID := r.PathValue("tag")
	if !h.Wardrobe.ForceState(r.Context(), tagID, req.State) {
		jsonError(w, http.StatusNotFound, "garment not found")
		return
	}

	slog.Info("garment state forced", "tag_id", tagID, "state", req.State)
	garment, _ := h.Wardrobe.Garment(tagID)
	jsonResponse(w, http.StatusOK, toGarmentResponse(garment))
}

// LogWash handles POST /api/garments/{tag}/wash: manually record a
// wash cycle with a caller-chosen method.
func (h *GarmentsHandler) LogWash(w http.ResponseWriter, r *http.Request) {
	var req logWashRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Method == "" {
		jsonError(w, http.StatusBadRequest, "method required")
		return
	}

	tagID := r.PathValue("tag")
	if !h.Wardrobe.LogWashCycle(r.Context(), tagID, req.Method) {
		jsonError(w, http.StatusNotFound, "garment not found")
		return
	}

	slog.Info("wash cycle logged", "tag_id", tagID, "method", req.Method)
	garment, _ := h.Wardrobe.Garment(tagID)
	jsonResponse(w, http.StatusOK, toGarmentResponse(garment))
}

// GetHistory handles GET /api/garments/{tag}/history.
func (h *GarmentsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	tagID := r.PathValue("tag")
	if _, ok := h.Wardrobe.Garment(tagID); !ok {
		jsonError(w, http.StatusNotFound, "garment not found")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	history, err := store.GetScanHistory(r.Context(), h.DB, tagID, limit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get scan history")
		return
	}
	if history == nil {
		history = []model.ScanRecord{}
	}
	jsonResponse(w, http.StatusOK, history)
}

// UploadImage handles PUT /api/garments/{tag}/image.
func (h *GarmentsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	tagID := r.PathValue("tag")
	if _, ok := h.Wardrobe.Garment(tagID); !ok {
		jsonError(w, http.StatusNotFound, "garment not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetGarmentImage(r.Context(), h.DB, tagID, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/garments/{tag}/image.
func (h *GarmentsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetGarmentImage(r.Context(), h.DB, r.PathValue("tag"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// ListCategories handles GET /api/categories.
func (h *GarmentsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, model.GarmentCategories)
}
