package metadata

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/statement-extractor/internal/statement/normalizer"
)

// Snapshot is the read-only view a strategy extracts from: the first-page
// text, its lines, and the fields resolved by earlier strategies (entity
// strategies use those to avoid re-detecting the bank as the holder).
type Snapshot struct {
	Text  string
	Lines []string
	Found Metadata
}

// Strategy attempts to extract a single metadata value. Strategies are
// tried in priority order per field; the first hit wins and the rest of
// the chain is not consulted.
type Strategy interface {
	Extract(snap Snapshot) (string, bool)
}

// PeriodStrategy extracts the statement period. The two label shapes are
// mutually exclusive, so the first matching strategy settles both ends of
// the range.
type PeriodStrategy interface {
	Extract(snap Snapshot) (from, to string, ok bool)
}

// patternStrategy returns the first capture group of the first pattern
// that matches, trying patterns in priority order.
type patternStrategy struct {
	patterns []*regexp.Regexp
}

func (s patternStrategy) Extract(snap Snapshot) (string, bool) {
	for _, re := range s.patterns {
		if m := re.FindStringSubmatch(snap.Text); m != nil {
			if value := strings.TrimSpace(m[1]); value != "" {
				return value, true
			}
		}
	}
	return "", false
}

// ifscPattern is the routing-code shape: four letters, a literal zero,
// six alphanumerics.
var ifscPattern = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)

// ifscStrategy matches the whole routing-code token anywhere in the text.
type ifscStrategy struct{}

func (ifscStrategy) Extract(snap Snapshot) (string, bool) {
	if m := ifscPattern.FindString(snap.Text); m != "" {
		return m, true
	}
	return "", false
}

// singleDatePeriod handles the "Transactions From: <date>" label, which
// carries one date used for both ends of the period.
type singleDatePeriod struct {
	re *regexp.Regexp
}

func newSingleDatePeriod() singleDatePeriod {
	return singleDatePeriod{re: regexp.MustCompile(`(?i)Transactions From:\s*(\d{1,2}[/-]\d{1,2}[/-]\d{4})`)}
}

func (s singleDatePeriod) Extract(snap Snapshot) (string, string, bool) {
	m := s.re.FindStringSubmatch(snap.Text)
	if m == nil {
		return "", "", false
	}
	date := normalizeOrNA(m[1])
	return date, date, true
}

// rangePeriod handles the explicit "Transaction Period: <date> to <date>"
// label.
type rangePeriod struct {
	re *regexp.Regexp
}

func newRangePeriod() rangePeriod {
	return rangePeriod{re: regexp.MustCompile(`(?i)Transaction Period:\s*(\d{1,2}[/-]\d{1,2}[/-]\d{4})\s*to\s*(\d{1,2}[/-]\d{1,2}[/-]\d{4})`)}
}

func (s rangePeriod) Extract(snap Snapshot) (string, string, bool) {
	m := s.re.FindStringSubmatch(snap.Text)
	if m == nil {
		return "", "", false
	}
	return normalizeOrNA(m[1]), normalizeOrNA(m[2]), true
}

// normalizeOrNA keeps the "label matched but date garbled" case explicit:
// the period chain stops, but the value stays a sentinel.
func normalizeOrNA(raw string) string {
	date, err := normalizer.Date(raw)
	if err != nil {
		return NotAvailable
	}
	return date
}

func newBankNameLabel() patternStrategy {
	return patternStrategy{patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*Bank\s*Name\s*[:\-]\s*(.+?)\s*$`),
	}}
}

func newAccountHolderLabel() patternStrategy {
	return patternStrategy{patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?im)Account\s*Holder\s*(?:Name)?\s*[:\-]\s*([A-Z][A-Za-z .]+)`),
		regexp.MustCompile(`(?im)Customer\s*Name\s*[:\-]\s*([A-Z][A-Za-z .]+)`),
	}}
}

func newAccountNumberLabel() patternStrategy {
	return patternStrategy{patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)Account\s*(?:No\.?|Number)\s*[:\-]?\s*([0-9]{8,18})`),
		regexp.MustCompile(`(?i)A/?C\s*(?:No\.?|Number)\s*[:\-]?\s*([0-9]{8,18})`),
	}}
}

// newBalanceLabels covers the closing-balance synonyms in priority order;
// the first label present in the text wins.
func newBalanceLabels() patternStrategy {
	return patternStrategy{patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)Cleared\s*Balance\s*[:\-]?\s*([0-9,]+\.\d{2})`),
		regexp.MustCompile(`(?i)Available\s*Balance\s*[:\-]?\s*([0-9,]+\.\d{2})`),
		regexp.MustCompile(`(?i)Closing\s*Balance\s*[:\-]?\s*([0-9,]+\.\d{2})`),
	}}
}
