package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"magazyn/internal/model"
	"magazyn/internal/repo"
)

// EquipmentHandler obsługuje /api/equipment i /api/equipment/bulk.
type EquipmentHandler struct {
	Equipment *repo.Equipment
	Logger    *zap.SugaredLogger
}

func NewEquipmentHandler(equipment *repo.Equipment, logger *zap.SugaredLogger) *EquipmentHandler {
	return &EquipmentHandler{Equipment: equipment, Logger: logger}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.Equipment.List()
	if err != nil {
		h.Logger.Errorw("GET /api/equipment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch equipment")
		return
	}
	writeJSON(w, http.StatusOK, equipment)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e model.Equipment
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		h.Logger.Warnw("POST /api/equipment: invalid body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Equipment.Create(e)
	if err != nil {
		h.Logger.Errorw("POST /api/equipment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create equipment")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd model.EquipmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.Logger.Warnw("PUT /api/equipment: invalid body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	updated, err := h.Equipment.Update(upd)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Equipment not found")
	case err != nil:
		h.Logger.Errorw("PUT /api/equipment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update equipment")
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("DELETE /api/equipment: invalid body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	deleted, err := h.Equipment.Delete(req.ID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Equipment not found")
	case errors.Is(err, repo.ErrAssigned):
		writeError(w, http.StatusBadRequest,
			"Cannot delete equipment that is assigned to a user. Please unassign first.")
	case err != nil:
		h.Logger.Errorw("DELETE /api/equipment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete equipment")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message":          "Equipment deleted successfully",
			"deletedEquipment": deleted,
		})
	}
}

// Patch handles collection-level actions; only "deleteAll" is supported.
func (h *EquipmentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action != "deleteAll" {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	count, err := h.Equipment.DeleteAll()
	switch {
	case errors.Is(err, repo.ErrAssigned):
		writeError(w, http.StatusBadRequest,
			"Cannot delete all equipment. Some equipment is assigned to users. Please unassign all equipment first.")
	case err != nil:
		h.Logger.Errorw("PATCH /api/equipment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete all equipment")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message":      fmt.Sprintf("Successfully deleted all %d equipment items", count),
			"deletedCount": count,
		})
	}
}

// BulkAdd imports many rows at once; duplicates and invalid rows are
// reported per item, never aborting the batch.
func (h *EquipmentHandler) BulkAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []repo.BulkItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("POST /api/equipment/bulk: invalid body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Items array is required and cannot be empty")
		return
	}

	h.Logger.Infow("bulk import", "items", len(req.Items))

	results, err := h.Equipment.BulkAdd(req.Items)
	if err != nil {
		h.Logger.Errorw("POST /api/equipment/bulk", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to bulk import equipment")
		return
	}

	h.Logger.Infow("bulk import finished",
		"added", len(results.Added),
		"skipped", len(results.Skipped),
		"errors", len(results.Errors),
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Bulk import completed",
		"results": results,
		"summary": map[string]int{
			"total":   len(req.Items),
			"added":   len(results.Added),
			"skipped": len(results.Skipped),
			"errors":  len(results.Errors),
		},
	})
}
