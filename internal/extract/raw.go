// Package extract reads and writes the pipeline's flat tabular files: the
// raw source extract and the per-table normalized snapshots.
package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
)

// ReadRaw parses the flat source extract. The header row names the columns;
// empty cells become nil so downstream coercion sees an explicit missing
// value. A missing file is an error the caller treats as fatal: nothing may
// be written without a source.
func ReadRaw(path string) (*models.RawExtract, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw extract %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse raw extract %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("raw extract %s has no header row", path)
	}

	header := rows[0]
	if len(header) > 0 {
		// Excel exports commonly prefix the first header cell with a BOM.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	extract := &models.RawExtract{Columns: header}
	for _, row := range rows[1:] {
		rec := make(models.RawRecord, len(header))
		for i, col := range header {
			if i >= len(row) {
				continue
			}
			if row[i] == "" {
				continue
			}
			value := row[i]
			rec[col] = &value
		}
		extract.Records = append(extract.Records, rec)
	}
	return extract, nil
}
