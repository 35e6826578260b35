package handlers

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"magazyn/internal/config"
	"magazyn/internal/model"
	"magazyn/internal/repo"
)

const (
	maxDocumentSize   = 10 * 1024 * 1024 // 10MB per plik
	defaultCategoryID = 1                // kategoria "Ogólne"
)

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// DocumentHandler obsługuje /api/documents wraz z pobieraniem i eksportem ZIP.
type DocumentHandler struct {
	Documents  *repo.Documents
	Categories *repo.Categories
	Logger     *zap.SugaredLogger
	Config     *config.Config
}

func NewDocumentHandler(documents *repo.Documents, categories *repo.Categories, logger *zap.SugaredLogger, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{Documents: documents, Categories: categories, Logger: logger, Config: cfg}
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	documents, err := h.Documents.List()
	if err != nil {
		h.Logger.Errorw("GET /api/documents", "error", err)
		writeJSON(w, http.StatusOK, []model.Document{})
		return
	}
	writeJSON(w, http.StatusOK, documents)
}

// storedFilename keeps the extension but replaces the rest with a uuid so
// uploads can never collide or escape the documents directory.
func storedFilename(original string) string {
	return uuid.NewString() + filepath.Ext(original)
}

func validateUpload(header *multipartHeader) error {
	if header.Size == 0 {
		return errors.New("Empty file")
	}
	contentType := header.ContentType
	if !allowedDocumentTypes[contentType] {
		return fmt.Errorf("Invalid file type: %s", contentType)
	}
	if header.Size > maxDocumentSize {
		return fmt.Errorf("File too large: %s", header.Name)
	}
	return nil
}

// multipartHeader zbiera pola pliku potrzebne walidacji.
type multipartHeader struct {
	Name        string
	Size        int64
	ContentType string
}

// Upload accepts multipart/form-data with "files" entries and an optional
// "categoryId". Invalid files are skipped, valid ones stored and recorded.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize*4)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.Logger.Warnw("POST /api/documents: invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files provided")
		return
	}

	categoryID := defaultCategoryID
	if v := r.FormValue("categoryId"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			categoryID = parsed
		}
	}

	nextID, err := h.Documents.NextID()
	if err != nil {
		h.Logger.Errorw("POST /api/documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload documents")
		return
	}

	if err := os.MkdirAll(h.Config.DocumentsDir, 0o755); err != nil {
		h.Logger.Errorw("creating documents dir", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload documents")
		return
	}

	var saved []model.Document
	for _, fh := range files {
		hdr := &multipartHeader{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		}
		if err := validateUpload(hdr); err != nil {
			h.Logger.Warnw("skipping file", "name", fh.Filename, "reason", err)
			continue
		}

		doc := model.Document{
			ID:         nextID,
			Name:       fh.Filename,
			Filename:   storedFilename(fh.Filename),
			Size:       strconv.FormatInt(fh.Size, 10),
			Type:       hdr.ContentType,
			CategoryID: categoryID,
			UploadDate: time.Now().UTC(),
		}
		if err := h.saveUpload(fh, doc.Filename); err != nil {
			h.Logger.Errorw("saving uploaded file", "name", fh.Filename, "error", err)
			continue
		}
		nextID++
		saved = append(saved, doc)
		h.Logger.Infow("document uploaded", "name", fh.Filename, "size", fh.Size)
	}

	if len(saved) > 0 {
		if err := h.Documents.AddBatch(saved); err != nil {
			h.Logger.Errorw("POST /api/documents", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to upload documents")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"uploaded": len(saved),
		"total":    len(files),
		"message":  fmt.Sprintf("Uploaded %d out of %d files", len(saved), len(files)),
	})
}

func (h *DocumentHandler) saveUpload(fh *multipart.FileHeader, filename string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(h.Config.DocumentsDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	doc, err := h.Documents.Delete(req.ID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Document not found")
		return
	case err != nil:
		h.Logger.Errorw("DELETE /api/documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	h.removeStoredFile(doc.Filename)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Document deleted successfully"})
}

// Patch handles collection-level actions; only "deleteAll" is supported.
func (h *DocumentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action != "deleteAll" {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	docs, err := h.Documents.DeleteAll()
	if err != nil {
		h.Logger.Errorw("PATCH /api/documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete all documents")
		return
	}
	for _, d := range docs {
		h.removeStoredFile(d.Filename)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("Successfully deleted all %d documents", len(docs)),
		"deletedCount": len(docs),
	})
}

func (h *DocumentHandler) removeStoredFile(filename string) {
	if err := os.Remove(filepath.Join(h.Config.DocumentsDir, filename)); err != nil {
		h.Logger.Warnw("could not delete file", "filename", filename, "error", err)
	}
}

// Download streams the stored file under its original name.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}
	doc, err := h.Documents.Get(id)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Document not found")
		return
	case err != nil:
		h.Logger.Errorw("GET /api/documents/{id}/download", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	path := filepath.Join(h.Config.DocumentsDir, doc.Filename)
	f, err := os.Open(path)
	if err != nil {
		h.Logger.Warnw("file missing on disk", "filename", doc.Filename, "error", err)
		writeError(w, http.StatusNotFound, "File not found on disk")
		return
	}
	defer f.Close()

	contentType := doc.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	if _, err := io.Copy(w, f); err != nil {
		h.Logger.Warnw("streaming document", "filename", doc.Filename, "error", err)
	}
}

// sanitizeFilename strips characters that are not safe inside ZIP entries.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		return r
	}, name)
}

// Export streams a ZIP of the documents, grouped by category name.
// categoryId query parameter limits the export to one category.
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	documents, err := h.Documents.List()
	if err != nil {
		h.Logger.Errorw("GET /api/documents/export", "error", err)
		writeError(w, http.StatusInternalServerError, "Błąd podczas eksportu dokumentów")
		return
	}
	if v := r.URL.Query().Get("categoryId"); v != "" {
		if categoryID, err := strconv.Atoi(v); err == nil {
			filtered := documents[:0:0]
			for _, d := range documents {
				if d.CategoryID == categoryID {
					filtered = append(filtered, d)
				}
			}
			documents = filtered
		}
	}
	if len(documents) == 0 {
		writeError(w, http.StatusNotFound, "Brak dokumentów do eksportu")
		return
	}

	categories, err := h.Categories.List()
	if err != nil {
		h.Logger.Warnw("could not load categories for export", "error", err)
	}
	categoryName := func(id int) string {
		for _, c := range categories {
			if c.ID == id {
				return c.Name
			}
		}
		return "Nieznana"
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "dokumenty_"+time.Now().Format("2006-01-02")+".zip"))

	zw := zip.NewWriter(w)
	for _, doc := range documents {
		path := filepath.Join(h.Config.DocumentsDir, doc.Filename)
		src, err := os.Open(path)
		if err != nil {
			h.Logger.Warnw("export: file missing on disk", "filename", doc.Filename, "error", err)
			continue
		}
		entry := sanitizeFilename(categoryName(doc.CategoryID)) + "/" + sanitizeFilename(doc.Name)
		dst, err := zw.Create(entry)
		if err == nil {
			_, err = io.Copy(dst, src)
		}
		src.Close()
		if err != nil {
			h.Logger.Errorw("export: writing archive entry", "entry", entry, "error", err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		h.Logger.Errorw("export: closing archive", "error", err)
	}
}
