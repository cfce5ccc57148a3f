package header

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SynonymTable maps a canonical field to the ordered set of header labels
// that may denote it in a source document. Matching is case-insensitive and
// by substring, so "TXN DATE" satisfies the "DATE" synonym.
type SynonymTable map[CanonicalField][]string

// DefaultSynonyms covers the header vocabulary seen across the supported
// bank layouts. Deployments override it with a YAML file when a new layout
// shows up.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		FieldDate:        {"DATE", "TRANSACTION DATE", "VALUE DATE", "DATE OF TRANSACTION"},
		FieldDescription: {"DESCRIPTION", "DETAILS", "TRANSACTION DETAILS", "PARTICULARS", "NARRATION"},
		FieldDebit:       {"DEBIT", "WITHDRAWAL", "DR"},
		FieldCredit:      {"CREDIT", "DEPOSIT", "CR"},
		FieldBalance:     {"BALANCE", "AVAILABLE BALANCE", "CLOSING BALANCE"},
	}
}

// LoadSynonyms reads a synonym table from a YAML file keyed by canonical
// field name. Unknown field keys are rejected so typos fail loudly at
// startup instead of silently dropping a column.
func LoadSynonyms(path string) (SynonymTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonym config: %w", err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse synonym config: %w", err)
	}

	table := make(SynonymTable, len(raw))
	for key, labels := range raw {
		field := CanonicalField(strings.ToLower(strings.TrimSpace(key)))
		if !knownField(field) {
			return nil, fmt.Errorf("synonym config: unknown field %q", key)
		}
		cleaned := make([]string, 0, len(labels))
		for _, label := range labels {
			if label = strings.TrimSpace(label); label != "" {
				cleaned = append(cleaned, strings.ToUpper(label))
			}
		}
		if len(cleaned) == 0 {
			return nil, fmt.Errorf("synonym config: field %q has no labels", key)
		}
		table[field] = cleaned
	}
	return table, nil
}

func knownField(f CanonicalField) bool {
	for _, known := range AllFields {
		if f == known {
			return true
		}
	}
	return false
}

// matches reports whether any of the field's synonyms occurs in the
// normalized header cell.
func (t SynonymTable) matches(field CanonicalField, normalizedCell string) bool {
	for _, syn := range t[field] {
		if strings.Contains(normalizedCell, syn) {
			return true
		}
	}
	return false
}

func normalizeHeader(cell string) string {
	return strings.ToUpper(strings.Join(strings.Fields(cell), " "))
}
