package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/config"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/extract"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/logger"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/report"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/schema"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/services"
)

// mismatchReportName is the workbook written when validation disagrees.
const mismatchReportName = "mismatch_report.xlsx"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env).WithRunID(uuid.NewString())

	if err := run(cfg, log); err != nil {
		log.Error("Validation run failed", err, nil)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	raw, err := extract.ReadRaw(cfg.Paths.SourceCSV)
	if err != nil {
		return err
	}
	log.Info("Raw extract loaded", map[string]interface{}{
		"rows": len(raw.Records),
	})

	// An unreadable snapshot skips its table; validation still covers the
	// rest.
	snapshots := make(map[string]*models.Snapshot, len(schema.TableOrder))
	for _, table := range schema.TableOrder {
		snap, err := extract.ReadSnapshot(cfg.Paths.SnapshotDir, table)
		if err != nil {
			log.Error("Snapshot unreadable, table skipped", err, map[string]interface{}{
				"table": table,
			})
			continue
		}
		snapshots[table] = snap
	}

	validator := services.NewValidationService(log)
	rep := validator.Validate(raw, snapshots)

	if rep.Clean() {
		return nil
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", cfg.Paths.OutputDir, err)
	}
	path := filepath.Join(cfg.Paths.OutputDir, mismatchReportName)
	if err := report.WriteMismatchWorkbook(path, rep); err != nil {
		return err
	}

	// Disagreements are findings, not system errors: the run still succeeds.
	log.Warn("Mismatch summary exported", map[string]interface{}{
		"columns": len(rep.Findings),
		"report":  path,
	})
	return nil
}
