// Package header maps arbitrary bank-statement column headers onto the
// canonical transaction field set using a configurable synonym table.
package header

// CanonicalField is one of the fixed transaction attributes every bank
// layout is mapped onto. Extend by adding constants, never free-form strings.
type CanonicalField string

const (
	FieldDate        CanonicalField = "date"
	FieldDescription CanonicalField = "description"
	FieldDebit       CanonicalField = "debit"
	FieldCredit      CanonicalField = "credit"
	FieldBalance     CanonicalField = "balance"
)

// AllFields lists the canonical fields in match-priority order.
var AllFields = []CanonicalField{
	FieldDate,
	FieldDescription,
	FieldDebit,
	FieldCredit,
	FieldBalance,
}

// Mapping associates canonical fields with zero-based column positions in
// one specific table. It is built once per table and immutable afterwards;
// header presence and position vary page to page, so mappings are never
// shared or cached across tables.
type Mapping struct {
	columns map[CanonicalField]int
}

// Column returns the mapped column index for a field.
func (m Mapping) Column(f CanonicalField) (int, bool) {
	idx, ok := m.columns[f]
	return idx, ok
}

// MaxIndex returns the highest mapped column index, or -1 when nothing
// mapped. Rows shorter than MaxIndex+1 cannot be safely extracted.
func (m Mapping) MaxIndex() int {
	max := -1
	for _, idx := range m.columns {
		if idx > max {
			max = idx
		}
	}
	return max
}

// Missing returns the subset of required fields absent from the mapping,
// in the order given.
func (m Mapping) Missing(required []CanonicalField) []CanonicalField {
	var missing []CanonicalField
	for _, f := range required {
		if _, ok := m.columns[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Len returns the number of mapped fields.
func (m Mapping) Len() int {
	return len(m.columns)
}

// Map builds a Mapping from one table's header row. Each cell is compared
// case-insensitively as a substring against the synonym table; the first
// canonical field whose synonym matches a cell wins that cell, and only the
// first cell matching a given field is kept; later duplicates are ignored
// since the mapping is positional. Cells matching nothing stay unmapped.
func Map(cells []string, synonyms SynonymTable) Mapping {
	columns := make(map[CanonicalField]int, len(AllFields))

	for idx, cell := range cells {
		normalized := normalizeHeader(cell)
		if normalized == "" {
			continue
		}
		for _, field := range AllFields {
			if !synonyms.matches(field, normalized) {
				continue
			}
			if _, taken := columns[field]; !taken {
				columns[field] = idx
			}
			break
		}
	}

	return Mapping{columns: columns}
}
