package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// ScannersHandler handles scanner directory endpoints.
type ScannersHandler struct {
	Wardrobe *wardrobe.Wardrobe
}

type registerScannerRequest struct {
	Role model.ScannerRole `json:"role"`
	Name string            `json:"name"`
}

type scannerResponse struct {
	ID   string            `json:"scanner_id"`
	Role model.ScannerRole `json:"role"`
	Name string            `json:"name"`
}

// List handles GET /api/scanners.
func (h *ScannersHandler) List(w http.ResponseWriter, r *http.Request) {
	scanners := h.Wardrobe.Scanners()
	resp := make([]scannerResponse, 0, len(scanners))
	for _, s := range scanners {
		resp = append(resp, scannerResponse{ID: s.ID, Role: s.Role, Name: s.Name})
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Register handles PUT /api/scanners/{id}: create or overwrite a
// scanner directory entry.
func (h *ScannersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerScannerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.Role.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid scanner role")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	id := r.PathValue("id")
	h.Wardrobe.RegisterScanner(r.Context(), id, req.Role, req.Name)

	slog.Info("scanner registered", "scanner_id", id, "role", req.Role)
	jsonResponse(w, http.StatusOK, scannerResponse{ID: id, Role: req.Role, Name: req.Name})
}

// Delete handles DELETE /api/scanners/{id}.
func (h *ScannersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.Wardrobe.RemoveScanner(r.Context(), id) {
		jsonError(w, http.StatusNotFound, "scanner not found")
		return
	}

	slog.Info("scanner removed", "scanner_id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "scanner removed"})
}
