package main

import (
	"net/http"

	"go.uber.org/zap"

	"magazyn/internal/config"
	"magazyn/internal/handlers"
	"magazyn/internal/middleware"
	"magazyn/internal/plural"
	"magazyn/internal/repo"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	plural.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	middleware.InitMetrics()

	users := repo.NewUsers(cfg.DataDir, sugar)
	equipment := repo.NewEquipment(cfg.DataDir, sugar)
	history := repo.NewHistory(cfg.DataDir, sugar)
	categories := repo.NewCategories(cfg.DataDir, sugar)
	documents := repo.NewDocuments(cfg.DataDir, sugar)

	h := handlers.NewHandler(users, equipment, history, categories, documents, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"DataDir", cfg.DataDir,
		"DocumentsDir", cfg.DocumentsDir,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
