package schema

import "strings"

// UnmappedPolicy controls what categorical coercion does with a raw value
// that has no entry in its column's map. The original dataset relies on
// silent nulls, so CoerceToNull is the default everywhere; Reject exists so
// a stricter pipeline can surface unknown categories without touching the
// coercion logic itself.
type UnmappedPolicy int

const (
	// CoerceToNull silently turns unmapped categorical values into NULL.
	CoerceToNull UnmappedPolicy = iota
	// Reject reports unmapped categorical values as errors.
	Reject
)

// CategoricalMaps holds the per-column mapping from lower-cased, trimmed raw
// text to a binary indicator. Every column listed here belongs to the
// property table. Values absent from a column's map coerce according to the
// active UnmappedPolicy.
var CategoricalMaps = map[string]map[string]int64{
	"Flood":           {"minimal flood": 1, "flood zone": 0},
	"Highway":         {"near": 1, "far": 0},
	"Train":           {"near": 1, "far": 0},
	"HTW":             {"yes": 1, "no": 0},
	"Pool":            {"yes": 1, "no": 0},
	"Commercial":      {"yes": 1, "no": 0},
	"Water":           {"city": 1, "well": 0},
	"Sewage":          {"city": 1, "septic": 0},
	"BasementYesNo":   {"yes": 1, "no": 0},
	"Rent_Restricted": {"yes": 1, "no": 0},
}

// flagColumns lists the generic boolean-flag columns per table. Rehab's first
// two columns (Underwriting_Rehab, Rehab_Calculation) are passthrough, not
// flags.
var flagColumns = map[string]map[string]bool{
	TableRehab: {
		"Paint": true, "Flooring_Flag": true, "Foundation_Flag": true,
		"Roof_Flag": true, "HVAC_Flag": true, "Kitchen_Flag": true,
		"Bathroom_Flag": true, "Appliances_Flag": true, "Windows_Flag": true,
		"Landscaping_Flag": true, "Trashout_Flag": true,
	},
	TableHOA: {
		"HOA_Flag": true,
	},
}

// truthyValues is the fixed truthy set of the generic boolean parser. It
// mixes boolean literals with domain phrases on purpose; the same set is
// reused for every flag column and must stay exactly as-is for compatibility
// with the existing extracts.
var truthyValues = map[string]bool{
	"yes":           true,
	"true":          true,
	"1":             true,
	"minimal flood": true,
	"no flooding":   true,
}

// IsCategorical reports whether the column is coerced through a per-column
// categorical map.
func IsCategorical(column string) bool {
	_, ok := CategoricalMaps[column]
	return ok
}

// IsFlag reports whether the column is coerced through the generic boolean
// parser when it appears in the given table.
func IsFlag(table, column string) bool {
	return flagColumns[table][column]
}

// IsTruthy reports whether a non-missing raw value parses as true under the
// generic boolean parser. Callers handle the missing case themselves; any
// non-missing value outside the truthy set is false, not null.
func IsTruthy(value string) bool {
	return truthyValues[strings.ToLower(strings.TrimSpace(value))]
}
