package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
)

// idColumn is the leading snapshot column carrying the generated property
// identity. It lets the validator join snapshot rows to raw rows by id
// instead of trusting file row order.
const idColumn = "property_id"

// SnapshotPath returns the CSV path for one table's snapshot.
func SnapshotPath(dir, table string) string {
	return filepath.Join(dir, table+".csv")
}

// WriteSnapshot writes one table's snapshot CSV, creating dir if needed.
func WriteSnapshot(dir string, snap *models.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir %s: %w", dir, err)
	}

	path := SnapshotPath(dir, snap.Table)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{idColumn}, snap.Columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write snapshot header %s: %w", path, err)
	}
	for i, row := range snap.Rows {
		record := append([]string{strconv.FormatInt(snap.IDs[i], 10)}, row...)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write snapshot row %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush snapshot %s: %w", path, err)
	}
	return nil
}

// WriteSnapshots writes every snapshot into dir.
func WriteSnapshots(dir string, snaps []*models.Snapshot) error {
	for _, snap := range snaps {
		if err := WriteSnapshot(dir, snap); err != nil {
			return err
		}
	}
	return nil
}

// ReadSnapshot parses one table's snapshot CSV back into memory. The file
// must carry the property_id column written by the loader.
func ReadSnapshot(dir, table string) (*models.Snapshot, error) {
	path := SnapshotPath(dir, table)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("snapshot %s has no header row", path)
	}

	header := rows[0]
	if len(header) == 0 || header[0] != idColumn {
		return nil, fmt.Errorf("snapshot %s missing leading %s column", path, idColumn)
	}

	snap := &models.Snapshot{
		Table:   table,
		Columns: header[1:],
	}
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("snapshot %s row %d has %d fields, want %d", path, i+1, len(row), len(header))
		}
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s row %d has invalid %s %q", path, i+1, idColumn, row[0])
		}
		snap.IDs = append(snap.IDs, id)
		snap.Rows = append(snap.Rows, row[1:])
	}
	return snap, nil
}
