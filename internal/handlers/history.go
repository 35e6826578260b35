package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"magazyn/internal/repo"
)

// HistoryHandler obsługuje /api/history.
type HistoryHandler struct {
	History *repo.History
	Logger  *zap.SugaredLogger
}

func NewHistoryHandler(history *repo.History, logger *zap.SugaredLogger) *HistoryHandler {
	return &HistoryHandler{History: history, Logger: logger}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	history, err := h.History.List()
	if err != nil {
		h.Logger.Errorw("GET /api/history", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// Append dopisuje zdarzenie; datę stempluje serwer, nie klient.
func (h *HistoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EquipmentID int    `json:"equipmentId"`
		Action      string `json:"action"`
		UserID      *int   `json:"userId"`
		Note        string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("POST /api/history: invalid body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	event, err := h.History.Append(req.EquipmentID, req.Action, req.UserID, req.Note)
	if err != nil {
		h.Logger.Errorw("POST /api/history", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create history entry")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// Patch handles collection-level actions; only "deleteAll" is supported.
func (h *HistoryHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action != "deleteAll" {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	count, err := h.History.DeleteAll()
	if err != nil {
		h.Logger.Errorw("PATCH /api/history", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete all history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("Successfully deleted all %d history records", count),
		"deletedCount": count,
	})
}
