package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/logger"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/repository"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/schema"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/transform"
)

// LoaderService defines the batch load operation.
type LoaderService interface {
	// Load normalizes and persists every raw record sequentially, one
	// transaction per record. On the first failed record the remaining batch
	// is abandoned and the error returned; records already committed stay
	// committed. The returned snapshots cover the committed records and are
	// only produced for a fully successful batch.
	Load(ctx context.Context, records []models.RawRecord) (*models.LoadResult, []*models.Snapshot, error)
}

// loaderService is the concrete implementation of LoaderService.
type loaderService struct {
	repo repository.RecordRepository
	tf   *transform.Transformer
	log  *logger.Logger
}

// NewLoaderService creates a new instance of LoaderService.
func NewLoaderService(repo repository.RecordRepository, tf *transform.Transformer, log *logger.Logger) LoaderService {
	return &loaderService{
		repo: repo,
		tf:   tf,
		log:  log.WithComponent("loader"),
	}
}

// Load runs the batch. Records are processed strictly in input order so the
// generated identities ascend with the source rows.
func (s *loaderService) Load(ctx context.Context, records []models.RawRecord) (*models.LoadResult, []*models.Snapshot, error) {
	result := &models.LoadResult{}
	snaps := newSnapshotSet()

	s.log.Info("Starting load batch", map[string]interface{}{
		"records": len(records),
	})

	for i, raw := range records {
		rec, err := s.tf.Normalize(raw)
		if err != nil {
			result.Failed++
			s.log.Error("Failed to normalize record, aborting batch", err, map[string]interface{}{
				"row":       i,
				"committed": result.Committed,
			})
			return result, nil, fmt.Errorf("record %d: %w", i, err)
		}

		pid, err := s.repo.InsertRecord(ctx, rec)
		if err != nil {
			result.Failed++
			s.log.Error("Failed to persist record, aborting batch", err, map[string]interface{}{
				"row":       i,
				"committed": result.Committed,
			})
			return result, nil, fmt.Errorf("record %d: %w", i, err)
		}

		snaps.append(pid, rec)
		result.Committed++
	}

	s.log.Info("Load batch committed", map[string]interface{}{
		"committed": result.Committed,
	})
	return result, snaps.list(), nil
}

// snapshotSet accumulates the per-table snapshot rows as records commit.
type snapshotSet struct {
	byTable map[string]*models.Snapshot
}

func newSnapshotSet() *snapshotSet {
	set := &snapshotSet{byTable: make(map[string]*models.Snapshot, len(schema.TableOrder))}
	for _, table := range schema.TableOrder {
		set.byTable[table] = &models.Snapshot{
			Table:   table,
			Columns: schema.Columns(table),
		}
	}
	return set
}

func (s *snapshotSet) append(pid int64, rec *models.NormalizedRecord) {
	for _, table := range schema.TableOrder {
		snap := s.byTable[table]
		row := rec.Row(table)
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		snap.IDs = append(snap.IDs, pid)
		snap.Rows = append(snap.Rows, cells)
	}
}

func (s *snapshotSet) list() []*models.Snapshot {
	out := make([]*models.Snapshot, 0, len(schema.TableOrder))
	for _, table := range schema.TableOrder {
		out = append(out, s.byTable[table])
	}
	return out
}

// formatValue renders a normalized value for the CSV snapshot. NULL becomes
// the empty cell, matching how the validator canonicalizes missing values.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}
