package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/database"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/schema"
)

// RecordRepository defines the write path for normalized records.
type RecordRepository interface {
	// InsertRecord writes the parent row plus the five satellite rows for one
	// normalized record inside a single transaction and returns the generated
	// property id. On any failure the whole record is rolled back: no orphan
	// parent or satellite rows survive.
	InsertRecord(ctx context.Context, rec *models.NormalizedRecord) (int64, error)
}

// recordRepository is the concrete pgx implementation of RecordRepository.
type recordRepository struct {
	db *database.Database
	// Statements are built once from the schema partition so the positional
	// parameter order always matches the projection order.
	propertyInsert   string
	satelliteInserts map[string]string
}

// NewRecordRepository creates a new instance of RecordRepository with the
// six insert statements prepared from the schema partition.
func NewRecordRepository(db *database.Database) RecordRepository {
	r := &recordRepository{
		db:               db,
		satelliteInserts: make(map[string]string, len(schema.TableOrder)-1),
	}
	for _, table := range schema.TableOrder {
		if table == schema.TableProperty {
			r.propertyInsert = buildInsert(table, schema.Columns(table), false)
			continue
		}
		r.satelliteInserts[table] = buildInsert(table, schema.Columns(table), true)
	}
	return r
}

// buildInsert renders one parameterized insert. Satellites prepend the
// generated property id as their first positional parameter; the parent
// insert instead returns its generated id.
func buildInsert(table string, columns []string, withID bool) string {
	cols := make([]string, 0, len(columns)+1)
	if withID {
		cols = append(cols, "property_id")
	}
	cols = append(cols, columns...)

	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}

	stmt := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(cols, ", "),
		strings.Join(params, ", "),
	)
	if !withID {
		stmt += " RETURNING property_id"
	}
	return stmt
}

// InsertRecord writes one record's six rows as one atomic unit.
func (r *recordRepository) InsertRecord(ctx context.Context, rec *models.NormalizedRecord) (int64, error) {
	var pid int64
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, r.propertyInsert, rec.Property...).Scan(&pid); err != nil {
			return fmt.Errorf("failed to insert property row: %w", err)
		}
		for _, table := range schema.TableOrder {
			if table == schema.TableProperty {
				continue
			}
			args := make([]any, 0, len(rec.Row(table))+1)
			args = append(args, pid)
			args = append(args, rec.Row(table)...)
			if _, err := tx.Exec(ctx, r.satelliteInserts[table], args...); err != nil {
				return fmt.Errorf("failed to insert %s row for property %d: %w", table, pid, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pid, nil
}
