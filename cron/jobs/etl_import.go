package jobs

import (
	"context"
	"log/slog"

	"retail.GO/config"
	"retail.GO/cron"
	"retail.GO/service/etl"
)

// ETLImportJob is the registry name of the scheduled import.
const ETLImportJob = "etlimport"

func init() {
	cron.Register(ETLImportJob, "@daily", RunETLImport)
}

// RunETLImport runs one pass over ETL_INPUT_FILE, or args[0] when given.
func RunETLImport(args ...string) {
	cfg := config.LoadETLConfig()
	path := cfg.InputFile
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}

	db, err := config.NewDB()
	if err != nil {
		slog.Error("cron etlimport: database connection failed", "error", err)
		return
	}
	defer config.CloseDB(db)
	if config.RedisClient == nil {
		config.InitRedis()
	}

	s, err := etl.NewPipeline(db, cfg, config.RedisClient).Run(context.Background(), path)
	if err != nil {
		slog.Error("cron etlimport: pass failed", "file", path, "error", err)
		return
	}
	slog.Info("cron etlimport: pass finished", "run_id", s.RunID, "valid", s.Valid, "errors", s.Errors, "loaded", s.Loaded)
}
