package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/config"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/database"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/extract"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/logger"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/repository"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/services"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/transform"
)

func main() {
	// Optional .env next to the binary, matching how credentials are supplied
	// in development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env).WithRunID(uuid.NewString())

	// run owns all resources so deferred cleanup fires on every exit path.
	if err := run(cfg, log); err != nil {
		log.Error("ETL run failed", err, nil)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	log.Info("Starting property ETL", map[string]interface{}{
		"environment": cfg.App.Env,
		"source":      cfg.Paths.SourceCSV,
	})

	raw, err := extract.ReadRaw(cfg.Paths.SourceCSV)
	if err != nil {
		return err
	}
	log.Info("Raw extract loaded", map[string]interface{}{
		"rows":    len(raw.Records),
		"columns": len(raw.Columns),
	})

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
	})

	repo := repository.NewRecordRepository(db)
	loader := services.NewLoaderService(repo, transform.NewTransformer(), log)

	result, snapshots, err := loader.Load(ctx, raw.Records)
	if err != nil {
		return fmt.Errorf("load batch aborted after %d committed records: %w", result.Committed, err)
	}

	if err := extract.WriteSnapshots(cfg.Paths.SnapshotDir, snapshots); err != nil {
		return err
	}

	log.Info("ETL run complete", map[string]interface{}{
		"committed":    result.Committed,
		"snapshot_dir": cfg.Paths.SnapshotDir,
	})
	return nil
}
