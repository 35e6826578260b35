package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"magazyn/internal/config"
	"magazyn/internal/model"
	"magazyn/internal/repo"
)

type testEnv struct {
	router    http.Handler
	users     *repo.Users
	equipment *repo.Equipment
	history   *repo.History
	docs      *repo.Documents
	cats      *repo.Categories
	cfg       *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop().Sugar()
	dataDir := t.TempDir()
	cfg := &config.Config{
		DataDir:      dataDir,
		DocumentsDir: filepath.Join(dataDir, "documents"),
	}
	env := &testEnv{
		users:     repo.NewUsers(dataDir, logger),
		equipment: repo.NewEquipment(dataDir, logger),
		history:   repo.NewHistory(dataDir, logger),
		cats:      repo.NewCategories(dataDir, logger),
		docs:      repo.NewDocuments(dataDir, logger),
		cfg:       cfg,
	}
	h := NewHandler(env.users, env.equipment, env.history, env.cats, env.docs, logger, cfg)
	env.router = h.Router
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func intPtr(v int) *int { return &v }

func TestUsersEndpoint_CreateAndList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users", map[string]string{
		"name": "Anna Nowak", "email": "anna@firma.pl",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.User
	decodeBody(t, rec, &created)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Anna Nowak", created.Name)

	rec = env.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	decodeBody(t, rec, &users)
	assert.Len(t, users, 1)
}

func TestUsersEndpoint_DeleteRefusedWhileHoldingEquipment(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.Create(model.User{Name: "Anna", Email: "anna@firma.pl"})
	require.NoError(t, err)
	_, err = env.equipment.Create(model.Equipment{
		Name: "Dell", Type: model.TypeComputer, SerialNumber: "SN-1", AssignedTo: intPtr(user.ID),
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodDelete, "/api/users", map[string]int{"id": user.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp["error"], "has assigned equipment")

	// user must still exist
	users, err := env.users.List()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUsersEndpoint_DeleteAllRefusedWhileAnyAssigned(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.Create(model.User{Name: "Anna", Email: "anna@firma.pl"})
	require.NoError(t, err)
	_, err = env.equipment.Create(model.Equipment{
		Name: "Dell", Type: model.TypeComputer, SerialNumber: "SN-1", AssignedTo: intPtr(user.ID),
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPatch, "/api/users", map[string]string{"action": "deleteAll"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsersEndpoint_UpdateEmailConflict(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Create(model.User{Name: "Anna", Email: "anna@firma.pl"})
	require.NoError(t, err)
	jan, err := env.users.Create(model.User{Name: "Jan", Email: "jan@firma.pl"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, "/api/users", map[string]any{
		"id": jan.ID, "email": "anna@firma.pl",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Email already exists", resp["error"])
}

func TestEquipmentEndpoint_DeleteAssignedRefused(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.equipment.Create(model.Equipment{
		Name: "Dell", Type: model.TypeComputer, SerialNumber: "SN-1", AssignedTo: intPtr(3),
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodDelete, "/api/equipment", map[string]int{"id": created.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/equipment", map[string]int{"id": 42})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEquipmentEndpoint_UpdateUnassignViaNull(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.equipment.Create(model.Equipment{
		Name: "Dell", Type: model.TypeComputer, SerialNumber: "SN-1", AssignedTo: intPtr(3),
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, "/api/equipment", map[string]any{
		"id": created.ID, "assignedTo": nil,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Equipment
	decodeBody(t, rec, &updated)
	assert.Nil(t, updated.AssignedTo)
	assert.Nil(t, updated.AssignedDate)
}

func TestEquipmentEndpoint_BulkImport(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.equipment.Create(model.Equipment{Name: "Old", Type: model.TypeComputer, SerialNumber: "DUP"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/api/equipment/bulk", map[string]any{
		"items": []map[string]any{
			{"name": "A", "type": model.TypeComputer, "serialNumber": "SN-A"},
			{"name": "B", "type": model.TypeMouse, "serialNumber": "DUP"},
			{"name": "", "type": model.TypeMouse, "serialNumber": "SN-C"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool             `json:"success"`
		Results repo.BulkResults `json:"results"`
		Summary map[string]int   `json:"summary"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Summary["total"])
	assert.Equal(t, 1, resp.Summary["added"])
	assert.Equal(t, 1, resp.Summary["skipped"])
	assert.Equal(t, 1, resp.Summary["errors"])
	require.Len(t, resp.Results.Added, 1)
	assert.Equal(t, "A", resp.Results.Added[0].Name)
}

func TestEquipmentEndpoint_BulkImportEmptyItems(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/equipment/bulk", map[string]any{"items": []any{}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Items array is required and cannot be empty", resp["error"])
}

func TestHistoryEndpoint_AppendStampsDate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/history", map[string]any{
		"equipmentId": 1,
		"action":      model.ActionAssigned,
		"userId":      7,
		"note":        "dla Anny",
		"date":        "1999-01-01T00:00:00Z", // client dates are ignored
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var event model.Event
	decodeBody(t, rec, &event)
	assert.Equal(t, 1, event.EquipmentID)
	require.NotNil(t, event.UserID)
	assert.Equal(t, 7, *event.UserID)
	assert.NotEqual(t, 1999, event.Date.Year(), "server stamps the date, the client one is ignored")
}

func TestHistoryEndpoint_DeleteAll(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.history.Append(1, model.ActionAdded, nil, "")
	require.NoError(t, err)

	rec := env.do(t, http.MethodPatch, "/api/history", map[string]string{"action": "deleteAll"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		DeletedCount int `json:"deletedCount"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.DeletedCount)
}

func TestCategoriesEndpoint_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/categories", map[string]string{"name": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Nazwa kategorii jest wymagana", resp["error"])

	rec = env.do(t, http.MethodPost, "/api/categories", map[string]string{"name": "Gwarancje"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/categories", map[string]string{"name": "gwarancje"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Kategoria o tej nazwie już istnieje", resp["error"])
}

func TestCategoriesEndpoint_DeleteRefusedWithDocuments(t *testing.T) {
	env := newTestEnv(t)

	cat, err := env.cats.Create("Gwarancje", "")
	require.NoError(t, err)
	require.NoError(t, env.docs.AddBatch([]model.Document{{ID: 1, Name: "g.pdf", CategoryID: cat.ID}}))

	rec := env.do(t, http.MethodDelete, "/api/categories", map[string]int{"id": cat.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Nie można usunąć kategorii zawierającej dokumenty", resp["error"])
}

// multipartBody builds a multipart form with one field and the given files.
func multipartBody(t *testing.T, categoryID string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if categoryID != "" {
		require.NoError(t, mw.WriteField("categoryId", categoryID))
	}
	for name, content := range files {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
		hdr.Set("Content-Type", "application/pdf")
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestDocumentsEndpoint_UploadAndDownload(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, "1", map[string]string{"umowa.pdf": "%PDF-1.4 tresc"})
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var upResp struct {
		Uploaded int `json:"uploaded"`
		Total    int `json:"total"`
	}
	decodeBody(t, rec, &upResp)
	assert.Equal(t, 1, upResp.Uploaded)
	assert.Equal(t, 1, upResp.Total)

	docs, err := env.docs.List()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "umowa.pdf", docs[0].Name)
	assert.NotEqual(t, "umowa.pdf", docs[0].Filename, "stored name is randomized")

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/documents/%d/download", docs[0].ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "umowa.pdf")
	assert.Equal(t, "%PDF-1.4 tresc", rec.Body.String())
}

func TestDocumentsEndpoint_UploadSkipsInvalidTypes(t *testing.T) {
	env := newTestEnv(t)

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="files"; filename="skrypt.exe"`)
	hdr.Set("Content-Type", "application/x-msdownload")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("MZ"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var upResp struct {
		Uploaded int `json:"uploaded"`
		Total    int `json:"total"`
	}
	decodeBody(t, rec, &upResp)
	assert.Equal(t, 0, upResp.Uploaded)
	assert.Equal(t, 1, upResp.Total)
}

func TestDocumentsEndpoint_ExportGroupsByCategory(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.cats.Create("Gwarancje", "")
	require.NoError(t, err)

	body, contentType := multipartBody(t, "1", map[string]string{"g.pdf": "gwarancja"})
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/documents/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "Gwarancje/g.pdf", zr.File[0].Name)
}

func TestDocumentsEndpoint_ExportEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/documents/export", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Brak dokumentów do eksportu", resp["error"])
}
