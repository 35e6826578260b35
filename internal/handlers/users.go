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

// UserHandler obsługuje /api/users.
type UserHandler struct {
	Users     *repo.Users
	Equipment *repo.Equipment
	Logger    *zap.SugaredLogger
}

func NewUserHandler(users *repo.Users, equipment *repo.Equipment, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Users: users, Equipment: equipment, Logger: logger}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List()
	if err != nil {
		h.Logger.Errorw("GET /api/users", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("POST /api/users: invalid body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	user, err := h.Users.Create(model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		h.Logger.Errorw("POST /api/users", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd repo.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.Logger.Warnw("PUT /api/users: invalid body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	user, err := h.Users.Update(upd)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, repo.ErrEmailExists):
		writeError(w, http.StatusBadRequest, "Email already exists")
	case err != nil:
		h.Logger.Errorw("PUT /api/users", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update user")
	default:
		writeJSON(w, http.StatusOK, user)
	}
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("DELETE /api/users: invalid body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	// Użytkownika z przypisanym sprzętem nie wolno usunąć.
	assigned, err := h.Equipment.HasAssigned(req.ID)
	if err != nil {
		h.Logger.Warnw("could not check equipment assignments", "error", err)
	} else if assigned {
		writeError(w, http.StatusBadRequest,
			"Cannot delete user who has assigned equipment. Please unassign all equipment first.")
		return
	}

	user, err := h.Users.Delete(req.ID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case err != nil:
		h.Logger.Errorw("DELETE /api/users", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message":     "User deleted successfully",
			"deletedUser": user,
		})
	}
}

// Patch handles collection-level actions; only "deleteAll" is supported.
func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action != "deleteAll" {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}

	anyAssigned, err := h.Equipment.HasAnyAssigned()
	if err != nil {
		h.Logger.Warnw("could not check equipment assignments", "error", err)
	} else if anyAssigned {
		writeError(w, http.StatusBadRequest,
			"Cannot delete all users. Some users have assigned equipment. Please unassign all equipment first.")
		return
	}

	count, err := h.Users.DeleteAll()
	if err != nil {
		h.Logger.Errorw("PATCH /api/users", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete all users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("Successfully deleted all %d users", count),
		"deletedCount": count,
	})
}
