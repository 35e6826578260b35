package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"magazyn/internal/config"
	"magazyn/internal/middleware"
	"magazyn/internal/repo"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires every collection route onto one chi router.
func NewHandler(
	users *repo.Users,
	equipment *repo.Equipment,
	history *repo.History,
	categories *repo.Categories,
	documents *repo.Documents,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithLogging)
	r.Use(middleware.WithMetrics)

	userHandler := NewUserHandler(users, equipment, logger)
	equipmentHandler := NewEquipmentHandler(equipment, logger)
	historyHandler := NewHistoryHandler(history, logger)
	categoryHandler := NewCategoryHandler(categories, documents, logger)
	documentHandler := NewDocumentHandler(documents, categories, logger, cfg)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Put("/", userHandler.Update)
			r.Delete("/", userHandler.Delete)
			r.Patch("/", userHandler.Patch)
		})
		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", equipmentHandler.List)
			r.Post("/", equipmentHandler.Create)
			r.Put("/", equipmentHandler.Update)
			r.Delete("/", equipmentHandler.Delete)
			r.Patch("/", equipmentHandler.Patch)
			r.Post("/bulk", equipmentHandler.BulkAdd)
		})
		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyHandler.List)
			r.Post("/", historyHandler.Append)
			r.Patch("/", historyHandler.Patch)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Put("/", categoryHandler.Update)
			r.Delete("/", categoryHandler.Delete)
		})
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documentHandler.List)
			r.Post("/", documentHandler.Upload)
			r.Delete("/", documentHandler.Delete)
			r.Patch("/", documentHandler.Patch)
			r.Get("/{id}/download", documentHandler.Download)
			r.Get("/export", documentHandler.Export)
		})
	})

	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	return &Handler{Router: r}
}

// writeJSON serializes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the uniform {"error": ...} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
