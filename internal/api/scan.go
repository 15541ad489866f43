package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/garderoba/internal/metrics"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// ScanHandler is the device-facing intake for NFC scan events.
type ScanHandler struct {
	DB       *sql.DB
	Wardrobe *wardrobe.Wardrobe
}

type scanRequest struct {
	TagID     string `json:"tag_id"`
	ScannerID string `json:"scanner_id"`
}

type scanResponse struct {
	Result string             `json:"result"`
	State  model.GarmentState `json:"state,omitempty"`
}

// Intake handles POST /api/scan. Every well-formed request is answered
// 202 regardless of what the state machine decided: invalid scans are
// an expected, silent outcome and scanners cannot act on them anyway.
func (h *ScanHandler) Intake(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := h.Wardrobe.HandleScan(r.Context(), req.TagID, req.ScannerID)
	metrics.RecordScan(res)

	// Audit every scan that got past scanner resolution.
	switch res.Outcome {
	case wardrobe.ScanAccepted, wardrobe.ScanRejected, wardrobe.ScanUnknownTag:
		if err := store.AppendScan(r.Context(), h.DB, model.ScanRecord{
			TagID:       res.TagID,
			ScannerID:   res.ScannerID,
			ScannerRole: res.ScannerRole,
			FromState:   res.FromState,
			ToState:     res.ToState,
			Outcome:     string(res.Outcome),
		}); err != nil {
			slog.Error("failed to append scan log", "tag_id", res.TagID, "error", err)
		}
	}

	jsonResponse(w, http.StatusAccepted, scanResponse{
		Result: string(res.Outcome),
		State:  res.ToState,
	})
}
