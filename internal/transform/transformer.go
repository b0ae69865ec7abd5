package transform

import (
	"fmt"
	"strings"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/schema"
)

// Transformer partitions one raw record into the six target-table row
// projections and coerces values per column. It is a pure function of the
// record and the static schema tables; it holds no mutable state and is safe
// to share.
type Transformer struct {
	policy schema.UnmappedPolicy
}

// NewTransformer returns a Transformer using the default coerce-to-null
// policy for unmapped categorical values.
func NewTransformer() *Transformer {
	return &Transformer{policy: schema.CoerceToNull}
}

// NewTransformerWithPolicy returns a Transformer with an explicit unmapped
// policy. With schema.Reject, Normalize fails on the first categorical value
// that has no map entry instead of coercing it to NULL.
func NewTransformerWithPolicy(policy schema.UnmappedPolicy) *Transformer {
	return &Transformer{policy: policy}
}

// Normalize produces the six ordered row projections for one raw record.
// Under the default policy it never fails: unknown categorical values and
// missing cells both degrade to NULL.
func (t *Transformer) Normalize(raw models.RawRecord) (*models.NormalizedRecord, error) {
	rec := &models.NormalizedRecord{}
	for _, table := range schema.TableOrder {
		row, err := t.normalizeTable(table, raw)
		if err != nil {
			return nil, err
		}
		switch table {
		case schema.TableProperty:
			rec.Property = row
		case schema.TableLeads:
			rec.Leads = row
		case schema.TableValuation:
			rec.Valuation = row
		case schema.TableRehab:
			rec.Rehab = row
		case schema.TableHOA:
			rec.HOA = row
		case schema.TableTaxes:
			rec.Taxes = row
		}
	}
	return rec, nil
}

func (t *Transformer) normalizeTable(table string, raw models.RawRecord) ([]any, error) {
	cols := schema.Columns(table)
	row := make([]any, len(cols))
	for i, col := range cols {
		value := raw.Value(col)
		switch {
		case schema.IsCategorical(col):
			coerced, err := t.coerceCategorical(col, value)
			if err != nil {
				return nil, err
			}
			row[i] = coerced
		case schema.IsFlag(table, col):
			row[i] = coerceFlag(value)
		default:
			row[i] = passthrough(value)
		}
	}
	return row, nil
}

// coerceCategorical maps a raw value through the column's categorical map.
// Missing values are NULL under every policy; only a present-but-unmapped
// value is subject to the policy choice.
func (t *Transformer) coerceCategorical(column string, value *string) (any, error) {
	if value == nil {
		return nil, nil
	}
	key := strings.ToLower(strings.TrimSpace(*value))
	if mapped, ok := schema.CategoricalMaps[column][key]; ok {
		return mapped, nil
	}
	if t.policy == schema.Reject {
		return nil, fmt.Errorf("column %s: unmapped categorical value %q", column, *value)
	}
	return nil, nil
}

// coerceFlag applies the generic boolean parser: missing is NULL, a truthy
// value is 1, anything else is 0.
func coerceFlag(value *string) any {
	if value == nil {
		return nil
	}
	if schema.IsTruthy(*value) {
		return int64(1)
	}
	return int64(0)
}

// passthrough keeps the raw text as-is, normalizing a missing cell to an
// explicit NULL rather than any sentinel.
func passthrough(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
