package registry

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/FACorreiaa/statement-extractor/internal/statement/metadata"
	"github.com/FACorreiaa/statement-extractor/internal/statement/normalizer"
	"github.com/FACorreiaa/statement-extractor/internal/statement/table"
)

// columnLayout fixes the column position of each record field for one
// bank's table shape. -1 marks fields the layout does not carry.
type columnLayout struct {
	postDate     int
	valueDate    int
	branchCode   int
	chequeNumber int
	description  int
	debit        int
	credit       int
	balance      int
}

// width returns the minimum cell count a row needs under this layout.
func (l columnLayout) width() int {
	max := -1
	for _, idx := range []int{
		l.postDate, l.valueDate, l.branchCode, l.chequeNumber,
		l.description, l.debit, l.credit, l.balance,
	} {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

// fieldPatterns holds one bank's tuned metadata regexes. Each list is
// tried in order; the first submatch wins. Period regexes carry two
// capture groups (from, to); singleDate carries one.
type fieldPatterns struct {
	accountHolder  []*regexp.Regexp
	accountNumber  []*regexp.Regexp
	ifscCode       []*regexp.Regexp
	clearedBalance []*regexp.Regexp
	periodRange    []*regexp.Regexp
	periodSingle   []*regexp.Regexp
}

// bankStrategy is the shared machinery behind every built-in bank. A bank
// differs only in its display name, layout and metadata phrasing; row
// filtering and normalization are common.
type bankStrategy struct {
	name     string
	layout   columnLayout
	patterns fieldPatterns
	marker   string
	logger   *slog.Logger
}

func (s *bankStrategy) BankName() string { return s.name }

// WithMarker sets the counterparty marker. When non-empty, only rows whose
// description contains it (case-insensitive) are kept. The marker is a
// deployment concern, never baked into a bank's definition.
func (s *bankStrategy) WithMarker(marker string) *bankStrategy {
	s.marker = strings.ToLower(strings.TrimSpace(marker))
	return s
}

// Parse extracts metadata from the first page and transactions from every
// table under the bank's fixed layout. These layouts have no
// synonym-matchable header row; header and annotation lines fall out
// naturally through date validation.
func (s *bankStrategy) Parse(doc *table.Document) (*Result, error) {
	result := &Result{Metadata: s.extractMetadata(doc.FirstPageText())}

	for _, page := range doc.Pages {
		for _, tbl := range page.Tables {
			for rowNum, row := range tbl.Rows {
				tx, ok := s.extractRow(row)
				if !ok {
					result.SkippedRows++
					s.logger.Debug("row skipped", "bank", s.name, "page", page.Number, "row", rowNum+1)
					continue
				}
				result.Transactions = append(result.Transactions, *tx)
			}
		}
	}
	return result, nil
}

func (s *bankStrategy) extractRow(cells []string) (*Transaction, bool) {
	if len(cells) < s.layout.width() {
		return nil, false
	}

	postDate, err := normalizer.Date(cell(cells, s.layout.postDate))
	if err != nil {
		return nil, false
	}

	description := cell(cells, s.layout.description)
	if s.marker != "" && !strings.Contains(strings.ToLower(description), s.marker) {
		return nil, false
	}

	tx := &Transaction{
		PostDate:     postDate,
		BranchCode:   cell(cells, s.layout.branchCode),
		ChequeNumber: cell(cells, s.layout.chequeNumber),
		Description:  description,
		Debit:        normalizer.Amount(cell(cells, s.layout.debit)),
		Credit:       normalizer.Amount(cell(cells, s.layout.credit)),
		Balance:      normalizer.Amount(cell(cells, s.layout.balance)),
	}
	if valueDate, err := normalizer.Date(cell(cells, s.layout.valueDate)); err == nil {
		tx.ValueDate = valueDate
	}

	if tx.Debit == "" && tx.Credit == "" {
		return nil, false
	}
	return tx, true
}

func (s *bankStrategy) extractMetadata(text string) metadata.Metadata {
	meta := metadata.Metadata{
		BankName:        s.name,
		AccountHolder:   firstMatch(s.patterns.accountHolder, text),
		AccountNumber:   firstMatch(s.patterns.accountNumber, text),
		IFSCCode:        firstMatch(s.patterns.ifscCode, text),
		ClearedBalance:  firstMatch(s.patterns.clearedBalance, text),
		TransactionFrom: metadata.NotAvailable,
		TransactionTo:   metadata.NotAvailable,
	}

	// A lone statement date covers both ends of the period.
	if raw := firstMatch(s.patterns.periodSingle, text); raw != metadata.NotAvailable {
		if from, err := normalizer.Date(raw); err == nil {
			meta.TransactionFrom = from
			meta.TransactionTo = from
		}
	}
	if meta.TransactionFrom == metadata.NotAvailable {
		for _, re := range s.patterns.periodRange {
			groups := re.FindStringSubmatch(text)
			if len(groups) < 3 {
				continue
			}
			from, errFrom := normalizer.Date(groups[1])
			to, errTo := normalizer.Date(groups[2])
			if errFrom != nil || errTo != nil {
				continue
			}
			meta.TransactionFrom, meta.TransactionTo = from, to
			break
		}
	}
	return meta
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		groups := re.FindStringSubmatch(text)
		if len(groups) < 2 {
			continue
		}
		if v := strings.TrimSpace(groups[1]); v != "" {
			return v
		}
	}
	return metadata.NotAvailable
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
