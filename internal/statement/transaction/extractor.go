// Package transaction converts mapped table rows into canonical
// transaction records, applying the per-row validation and skip logic that
// keeps garbled input from aborting a whole document.
package transaction

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FACorreiaa/statement-extractor/internal/statement/header"
	"github.com/FACorreiaa/statement-extractor/internal/statement/normalizer"
	"github.com/FACorreiaa/statement-extractor/internal/statement/table"
)

// ErrTableRejected indicates a table whose header mapping misses required
// canonical fields. The whole table is skipped rather than partially
// processed, so misaligned data is never emitted.
var ErrTableRejected = errors.New("table rejected")

// Transaction is one canonical statement record. Dates are DD-MM-YYYY;
// amounts keep their source grouping. At least one of Debit/Credit is
// non-empty; rows without financial movement are never emitted.
type Transaction struct {
	Date        string `json:"date" csv:"date"`
	Description string `json:"description" csv:"description"`
	Debit       string `json:"debit" csv:"debit"`
	Credit      string `json:"credit" csv:"credit"`
	Balance     string `json:"balance" csv:"balance"`
}

// SkipReason classifies why a row produced no transaction.
type SkipReason string

const (
	SkipIncompleteRow   SkipReason = "incomplete_row"
	SkipUnparseableDate SkipReason = "unparseable_date"
	SkipNoMovement      SkipReason = "no_movement"
)

// Skip records one discarded row with enough context to audit extraction
// quality; silent loss of legitimate rows is the primary risk here.
type Skip struct {
	Page   int
	Row    int
	Reason SkipReason
	Detail string
}

// TableResult is the outcome of extracting one table.
type TableResult struct {
	Transactions []Transaction
	Skips        []Skip
}

// Extractor turns table rows into transactions. Required lists the
// canonical fields a header mapping must cover before any row of that
// table is trusted; the default is the full field set.
type Extractor struct {
	logger   *slog.Logger
	required []header.CanonicalField
}

// NewExtractor builds an extractor requiring the full canonical field set.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger, required: header.AllFields}
}

// WithRequiredFields overrides the fields a mapping must cover.
func (e *Extractor) WithRequiredFields(fields []header.CanonicalField) *Extractor {
	e.required = fields
	return e
}

// headerScanLimit bounds how many leading rows are probed for a header.
// Statement exports often carry metadata lines above the column headers.
const headerScanLimit = 10

// ExtractTable locates the table's header row, maps it and extracts every
// row below it. No row covering the required fields rejects the table
// wholesale with ErrTableRejected naming the absent fields.
func (e *Extractor) ExtractTable(page int, t table.Table, synonyms header.SynonymTable) (*TableResult, error) {
	if len(t.Rows) < 2 {
		return nil, fmt.Errorf("%w: page %d: fewer than two rows", ErrTableRejected, page)
	}

	headerIdx, mapping, found := e.findHeader(t, synonyms)
	if !found {
		missing := header.Map(t.HeaderRow(), synonyms).Missing(e.required)
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return nil, fmt.Errorf("%w: page %d: missing headers %s", ErrTableRejected, page, strings.Join(names, ", "))
	}

	result := &TableResult{}
	for i, row := range t.Rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2 // 1-indexed, after the header row
		tx, skip := e.ExtractRow(page, rowNum, row, mapping)
		if skip != nil {
			e.logger.Warn("row skipped",
				"page", skip.Page, "row", skip.Row,
				"reason", string(skip.Reason), "detail", skip.Detail)
			result.Skips = append(result.Skips, *skip)
			continue
		}
		result.Transactions = append(result.Transactions, *tx)
	}
	return result, nil
}

// findHeader probes the leading rows for the first one whose mapping
// covers every required field.
func (e *Extractor) findHeader(t table.Table, synonyms header.SynonymTable) (int, header.Mapping, bool) {
	limit := min(len(t.Rows)-1, headerScanLimit)
	for i := 0; i < limit; i++ {
		mapping := header.Map(t.Rows[i], synonyms)
		if len(mapping.Missing(e.required)) == 0 {
			return i, mapping, true
		}
	}
	return 0, header.Mapping{}, false
}

// ExtractRow converts one data row under a validated mapping into zero or
// one transaction. Unmapped optional fields default to "NA" (description)
// or empty (amounts); rows failing validation return a Skip, never a
// partially valid record.
func (e *Extractor) ExtractRow(page, rowNum int, cells []string, mapping header.Mapping) (*Transaction, *Skip) {
	if len(cells) < mapping.MaxIndex()+1 {
		return nil, &Skip{
			Page: page, Row: rowNum, Reason: SkipIncompleteRow,
			Detail: fmt.Sprintf("row has %d cells, mapping needs %d", len(cells), mapping.MaxIndex()+1),
		}
	}

	rawDate := cellValue(cells, mapping, header.FieldDate, "")
	date, err := normalizer.Date(rawDate)
	if err != nil {
		return nil, &Skip{
			Page: page, Row: rowNum, Reason: SkipUnparseableDate,
			Detail: fmt.Sprintf("date %q", rawDate),
		}
	}

	tx := &Transaction{
		Date:        date,
		Description: cellValue(cells, mapping, header.FieldDescription, "NA"),
		Debit:       normalizer.Amount(cellValue(cells, mapping, header.FieldDebit, "")),
		Credit:      normalizer.Amount(cellValue(cells, mapping, header.FieldCredit, "")),
		Balance:     normalizer.Amount(cellValue(cells, mapping, header.FieldBalance, "")),
	}

	if tx.Debit == "" && tx.Credit == "" {
		return nil, &Skip{
			Page: page, Row: rowNum, Reason: SkipNoMovement,
			Detail: "both debit and credit empty",
		}
	}
	return tx, nil
}

// cellValue reads the cell mapped to field. The missing fallback applies
// only when no column is mapped at all; a mapped cell keeps its value,
// empty included.
func cellValue(cells []string, mapping header.Mapping, field header.CanonicalField, missing string) string {
	idx, ok := mapping.Column(field)
	if !ok {
		return missing
	}
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
