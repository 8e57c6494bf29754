package main

import (
	"flag"
	"log"

	"go-review-analytics/internal/api"
	"go-review-analytics/internal/api/handler"
	"go-review-analytics/internal/config"
	"go-review-analytics/internal/export"
	"go-review-analytics/internal/session"
	"go-review-analytics/internal/store"
	"go-review-analytics/pkg/router"
	"go-review-analytics/pkg/utils"
)

// @title Park Reviews API
// @version 1.0
// @description Read-only queries over a loaded theme park review dataset.
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Load dataset once
	path := cfg.ResolveDataPath()
	sess, err := session.Open(path, cfg.Data.Columns)
	if err != nil {
		log.Fatalf("❌ Failed to load reviews: %v", err)
	}
	log.Printf("📥 Loaded %d reviews from %s (%d rows skipped)", sess.Dataset.Len(), path, sess.Skipped)

	// Optional export history
	var st *store.Store
	var history export.HistoryRecorder
	if cfg.Export.DB != "" {
		if st, err = store.Open(cfg.Export.DB); err != nil {
			log.Fatalf("❌ Failed to open export history: %v", err)
		}
		defer st.Close()
		history = st
	}

	exporter := export.NewExporter(cfg.Export.Dir, cfg.Export.BaseName, history)
	if err := exporter.Output.EnsureOutputDirExists(); err != nil {
		log.Fatalf("❌ Failed to create export dir: %v", err)
	}
	h := handler.NewReviewHandler(sess, exporter, st, cfg.Query.TopLocations)

	// Create router
	r := router.New()
	api.RegisterRoutes(r, h)

	if err := r.Start(cfg.Server.Addr,
		utils.ParseDuration(cfg.Server.ReadTimeout, config.DefaultReadTimeout),
		utils.ParseDuration(cfg.Server.WriteTimeout, config.DefaultWriteTimeout)); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
