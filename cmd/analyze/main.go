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

const (
	summaryReportName = "full_summary_report.xlsx"
	rentHistogramName = "expected_rent_distribution.png"
	rehabFlagsName    = "rehab_flags.png"
	valuationHeatName = "valuation_correlation_heatmap.png"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env).WithRunID(uuid.NewString())

	if err := run(cfg, log); err != nil {
		log.Error("Analysis run failed", err, nil)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	byTable := make(map[string]*models.Snapshot, len(schema.TableOrder))
	ordered := make([]*models.Snapshot, 0, len(schema.TableOrder))
	for _, table := range schema.TableOrder {
		snap, err := extract.ReadSnapshot(cfg.Paths.SnapshotDir, table)
		if err != nil {
			log.Warn("Snapshot unreadable, excluded from analysis", map[string]interface{}{
				"table": table,
				"error": err.Error(),
			})
			continue
		}
		byTable[table] = snap
		ordered = append(ordered, snap)
	}
	if len(ordered) == 0 {
		return fmt.Errorf("no snapshots found in %s", cfg.Paths.SnapshotDir)
	}

	analyzer := services.NewAnalysisService(log)
	result := analyzer.Analyze(byTable)

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", cfg.Paths.OutputDir, err)
	}

	summaryPath := filepath.Join(cfg.Paths.OutputDir, summaryReportName)
	if err := report.WriteSummaryWorkbook(summaryPath, ordered, result.Metrics); err != nil {
		return err
	}
	log.Info("Summary workbook exported", map[string]interface{}{
		"report":  summaryPath,
		"metrics": len(result.Metrics),
	})

	if err := report.SaveExpectedRentHistogram(filepath.Join(cfg.Paths.OutputDir, rentHistogramName), result.ExpectedRent); err != nil {
		return err
	}
	if err := report.SaveRehabFlagsBar(filepath.Join(cfg.Paths.OutputDir, rehabFlagsName), result.RehabFlagCounts); err != nil {
		return err
	}
	if err := report.SaveValuationHeatmap(filepath.Join(cfg.Paths.OutputDir, valuationHeatName), result.ValuationCorr); err != nil {
		return err
	}

	log.Info("Analysis outputs written", map[string]interface{}{
		"dir": cfg.Paths.OutputDir,
	})
	return nil
}
