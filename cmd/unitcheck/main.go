package main

import (
	"context"
	"log"

	"github.com/mwhitby/unitcheck/internal/checklist"
	"github.com/mwhitby/unitcheck/internal/config"
	"github.com/mwhitby/unitcheck/internal/db"
	"github.com/mwhitby/unitcheck/internal/export"
	exportlocal "github.com/mwhitby/unitcheck/internal/export/local"
	"github.com/mwhitby/unitcheck/internal/logging"
	"github.com/mwhitby/unitcheck/internal/ports"
	"github.com/mwhitby/unitcheck/internal/service"
	"github.com/mwhitby/unitcheck/internal/store"
	"github.com/mwhitby/unitcheck/internal/web"
	"github.com/mwhitby/unitcheck/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	var sink ports.ExportSink
	if cfg.ExportDir != "" {
		s, err := exportlocal.NewSink(cfg.ExportDir)
		if err != nil {
			logger.Error("failed to initialize export sink", "error", err)
			return
		}
		sink = s
		logger.Info("saving export archives locally", "dir", cfg.ExportDir)
	}

	svc := service.NewInspectionService(
		context.Background(),
		checklist.Catalog(),
		store.NewPrefsStore(database),
		export.NewZipArchiver(),
		sink,
		logger,
	)

	server := web.NewServer(svc, templates.FS, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
