// Package registry dispatches documents to hand-tuned per-bank extraction
// strategies. It covers layouts the generic header-mapping pipeline cannot
// handle: statements with no synonym-matchable header row or with
// bank-specific multi-column conventions.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/FACorreiaa/statement-extractor/internal/statement/metadata"
	"github.com/FACorreiaa/statement-extractor/internal/statement/table"
)

// ErrBankUnrecognized means no registered bank name occurs in the first
// page. This is a hard stop for the document: guessing a generic mapping
// for an unrecognized table shape produces misaligned data, so the caller
// gets an explicit failure instead of an empty success.
var ErrBankUnrecognized = errors.New("bank not recognized")

// ErrDuplicateBank guards against registering the same display name twice.
var ErrDuplicateBank = errors.New("bank already registered")

// Transaction is the richer per-bank record strategies emit. Fields a
// bank's layout lacks stay empty.
type Transaction struct {
	PostDate     string `json:"postDate" csv:"post_date"`
	ValueDate    string `json:"valueDate,omitempty" csv:"value_date"`
	BranchCode   string `json:"branchCode,omitempty" csv:"branch_code"`
	ChequeNumber string `json:"chequeNumber,omitempty" csv:"cheque_number"`
	Description  string `json:"description" csv:"description"`
	Debit        string `json:"debit" csv:"debit"`
	Credit       string `json:"credit" csv:"credit"`
	Balance      string `json:"balance" csv:"balance"`
}

// Result is the outcome of one per-bank parse.
type Result struct {
	Metadata     metadata.Metadata
	Transactions []Transaction
	SkippedRows  int
}

// Strategy is one bank's extraction routine, tuned to that bank's exact
// column layout and metadata phrasing.
type Strategy interface {
	BankName() string
	Parse(doc *table.Document) (*Result, error)
}

// Registry maps bank display names to strategies. It is constructed once,
// registrations happen at startup, and the object is passed by reference to
// the dispatch call; there is no process-wide singleton.
type Registry struct {
	logger     *slog.Logger
	names      []string
	lowered    []string
	strategies []Strategy
	matcher    *ahocorasick.Matcher
}

// NewRegistry builds an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds a strategy under a display name. Registration order defines
// identification priority: when several registered names occur in a page,
// the earliest-registered one wins.
func (r *Registry) Register(name string, s Strategy) error {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return fmt.Errorf("register strategy: empty bank name")
	}
	for _, existing := range r.lowered {
		if existing == lowered {
			return fmt.Errorf("%w: %s", ErrDuplicateBank, name)
		}
	}

	r.names = append(r.names, name)
	r.lowered = append(r.lowered, lowered)
	r.strategies = append(r.strategies, s)
	r.rebuildMatcher()
	return nil
}

// Names returns the registered display names in priority order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Registry) rebuildMatcher() {
	patterns := make([][]byte, len(r.lowered))
	for i, name := range r.lowered {
		patterns[i] = []byte(name)
	}
	r.matcher = ahocorasick.NewMatcher(patterns)
}

// Identify scans first-page text for registered bank names in a single
// pass. Matching is case-insensitive substring; ties break on registration
// order. No match returns ErrBankUnrecognized.
func (r *Registry) Identify(firstPageText string) (Strategy, error) {
	if r.matcher == nil || len(r.names) == 0 {
		return nil, ErrBankUnrecognized
	}

	hits := r.matcher.Match([]byte(strings.ToLower(firstPageText)))
	if len(hits) == 0 {
		return nil, ErrBankUnrecognized
	}

	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(r.strategies) {
			continue
		}
		if best == -1 || idx < best {
			best = idx
		}
	}
	if best == -1 {
		return nil, ErrBankUnrecognized
	}

	r.logger.Debug("bank identified", "bank", r.names[best], "priority", best)
	return r.strategies[best], nil
}

// Parse identifies the bank from the document's first page and dispatches
// to its strategy.
func (r *Registry) Parse(doc *table.Document) (*Result, error) {
	strategy, err := r.Identify(doc.FirstPageText())
	if err != nil {
		return nil, err
	}
	return strategy.Parse(doc)
}
