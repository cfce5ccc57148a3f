package metadata

import (
	"log/slog"
	"strings"
)

// Extractor derives Metadata from first-page text. Each field owns
// an ordered strategy chain: structural regexes first, entity recognition
// as the fallback, so higher-precision sources always win.
type Extractor struct {
	logger *slog.Logger

	bankName      []Strategy
	accountHolder []Strategy
	accountNumber []Strategy
	ifscCode      []Strategy
	balance       []Strategy
	period        []PeriodStrategy
}

// NewExtractor builds an extractor with the default strategy chains.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		logger:        logger,
		bankName:      []Strategy{newBankNameLabel(), orgEntity{}},
		accountHolder: []Strategy{newAccountHolderLabel(), holderEntity{}},
		accountNumber: []Strategy{newAccountNumberLabel(), cardinalEntity{}},
		ifscCode:      []Strategy{ifscStrategy{}},
		balance:       []Strategy{newBalanceLabels()},
		period:        []PeriodStrategy{newSingleDatePeriod(), newRangePeriod()},
	}
}

// Extract runs every chain against the text. The result is never partial:
// undetected fields carry their sentinel. Empty input yields a fully
// sentinel-populated record.
func (e *Extractor) Extract(text string) Metadata {
	snap := Snapshot{
		Text:  text,
		Lines: splitLines(text),
		Found: Empty(),
	}

	// Bank name resolves first so the holder chain can exclude it.
	if v, ok := e.run(e.bankName, snap); ok {
		snap.Found.BankName = v
		e.logger.Debug("metadata field detected", "field", "bankName", "value", v)
	}
	if v, ok := e.run(e.accountHolder, snap); ok {
		snap.Found.AccountHolder = v
		e.logger.Debug("metadata field detected", "field", "accountHolder", "value", v)
	}
	if v, ok := e.run(e.accountNumber, snap); ok {
		snap.Found.AccountNumber = v
		e.logger.Debug("metadata field detected", "field", "accountNumber", "value", v)
	}
	if v, ok := e.run(e.ifscCode, snap); ok {
		snap.Found.IFSCCode = v
		e.logger.Debug("metadata field detected", "field", "ifscCode", "value", v)
	}
	for _, s := range e.period {
		if from, to, ok := s.Extract(snap); ok {
			snap.Found.TransactionFrom = from
			snap.Found.TransactionTo = to
			e.logger.Debug("metadata period detected", "from", from, "to", to)
			break
		}
	}
	if v, ok := e.run(e.balance, snap); ok {
		snap.Found.ClearedBalance = v
		e.logger.Debug("metadata field detected", "field", "clearedBalance", "value", v)
	}

	return snap.Found
}

func (e *Extractor) run(chain []Strategy, snap Snapshot) (string, bool) {
	for _, s := range chain {
		if v, ok := s.Extract(snap); ok {
			return v, true
		}
	}
	return "", false
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(strings.TrimRight(line, "\r")); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
