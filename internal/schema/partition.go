package schema

// Target table names in load order. The parent table is always first so the
// generated property id exists before any satellite insert.
const (
	TableProperty  = "property"
	TableLeads     = "leads"
	TableValuation = "valuation"
	TableRehab     = "rehab"
	TableHOA       = "hoa"
	TableTaxes     = "taxes"
)

// TableOrder lists every target table in load order.
var TableOrder = []string{
	TableProperty,
	TableLeads,
	TableValuation,
	TableRehab,
	TableHOA,
	TableTaxes,
}

// Partition maps each target table to its ordered raw-column list. The order
// is the positional contract for the parameterized inserts and for the
// exported snapshots, so it must never be reshuffled without migrating both.
// This table is the single source of truth for column ownership: the
// transformer and the validator both consume it.
var Partition = map[string][]string{
	TableProperty: {
		"Property_Title", "Address", "Market", "Flood", "Street_Address", "City",
		"State", "Zip", "Property_Type", "Highway", "Train", "Tax_Rate",
		"SQFT_Basement", "HTW", "Pool", "Commercial", "Water", "Sewage",
		"Year_Built", "SQFT_MU", "SQFT_Total", "Parking", "Bed", "Bath",
		"BasementYesNo", "Layout", "Rent_Restricted", "Neighborhood_Rating",
		"Latitude", "Longitude", "Subdivision", "School_Average",
	},
	TableLeads: {
		"Reviewed_Status", "Most_Recent_Status", "Source", "Occupancy",
		"Net_Yield", "IRR", "Selling_Reason", "Seller_Retained_Broker",
		"Final_Reviewer",
	},
	TableValuation: {
		"Previous_Rent", "List_Price", "Zestimate", "ARV", "Expected_Rent",
		"Rent_Zestimate", "Low_FMR", "High_FMR", "Redfin_Value",
	},
	TableRehab: {
		"Underwriting_Rehab", "Rehab_Calculation", "Paint", "Flooring_Flag",
		"Foundation_Flag", "Roof_Flag", "HVAC_Flag", "Kitchen_Flag",
		"Bathroom_Flag", "Appliances_Flag", "Windows_Flag", "Landscaping_Flag",
		"Trashout_Flag",
	},
	TableHOA: {
		"HOA", "HOA_Flag",
	},
	TableTaxes: {
		"Taxes",
	},
}

// Columns returns the ordered raw-column list owned by the given table.
// Returns nil for unknown tables.
func Columns(table string) []string {
	return Partition[table]
}

// KnownColumns returns the union of all partitioned columns in table order.
// Because the partition is disjoint, the result has no duplicates.
func KnownColumns() []string {
	var cols []string
	for _, table := range TableOrder {
		cols = append(cols, Partition[table]...)
	}
	return cols
}

// TableFor reports which table owns the given raw column.
func TableFor(column string) (string, bool) {
	for _, table := range TableOrder {
		for _, col := range Partition[table] {
			if col == column {
				return table, true
			}
		}
	}
	return "", false
}
