package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"magazyn/internal/repo"
)

// Komunikaty walidacji kategorii (UI pokazuje je wprost).
const (
	msgCategoryNameRequired = "Nazwa kategorii jest wymagana"
	msgCategoryNameExists   = "Kategoria o tej nazwie już istnieje"
	msgCategoryNotFound     = "Kategoria nie znaleziona"
	msgCategoryHasDocuments = "Nie można usunąć kategorii zawierającej dokumenty"
)

// CategoryHandler obsługuje /api/categories.
type CategoryHandler struct {
	Categories *repo.Categories
	Documents  *repo.Documents
	Logger     *zap.SugaredLogger
}

func NewCategoryHandler(categories *repo.Categories, documents *repo.Documents, logger *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Documents: documents, Logger: logger}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.List()
	if err != nil {
		h.Logger.Errorw("GET /api/categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Błąd podczas pobierania kategorii")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, msgCategoryNameRequired)
		return
	}
	cat, err := h.Categories.Create(req.Name, req.Description)
	switch {
	case errors.Is(err, repo.ErrNameExists):
		writeError(w, http.StatusBadRequest, msgCategoryNameExists)
	case err != nil:
		h.Logger.Errorw("POST /api/categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Błąd podczas tworzenia kategorii")
	default:
		writeJSON(w, http.StatusCreated, cat)
	}
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, msgCategoryNameRequired)
		return
	}
	cat, err := h.Categories.Update(req.ID, req.Name, req.Description)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, msgCategoryNotFound)
	case errors.Is(err, repo.ErrNameExists):
		writeError(w, http.StatusBadRequest, msgCategoryNameExists)
	case err != nil:
		h.Logger.Errorw("PUT /api/categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Błąd podczas aktualizacji kategorii")
	default:
		writeJSON(w, http.StatusOK, cat)
	}
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	inUse, err := h.Documents.HasCategory(req.ID)
	if err != nil {
		h.Logger.Warnw("could not check category documents", "error", err)
	} else if inUse {
		writeError(w, http.StatusBadRequest, msgCategoryHasDocuments)
		return
	}

	cat, err := h.Categories.Delete(req.ID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, msgCategoryNotFound)
	case err != nil:
		h.Logger.Errorw("DELETE /api/categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Błąd podczas usuwania kategorii")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message":         "Category deleted successfully",
			"deletedCategory": cat,
		})
	}
}
