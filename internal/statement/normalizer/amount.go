package normalizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountNoise matches everything except digits and the two separators we
// keep. Currency symbols, spaces and stray OCR artifacts are stripped.
var amountNoise = regexp.MustCompile(`[^0-9.,]`)

// Amount normalizes a raw monetary string. All characters except digits,
// '.' and ',' are stripped; grouping separators are preserved verbatim
// rather than converted between locales. Empty or unparseable input yields
// "", distinct from a legitimate zero, which stays a "0.00"-style string.
func Amount(raw string) string {
	cleaned := amountNoise.ReplaceAllString(strings.TrimSpace(raw), "")
	// Currency abbreviations like "Rs." leave a stray boundary separator.
	cleaned = strings.Trim(cleaned, ".,")
	if cleaned == "" {
		return ""
	}
	if !parsable(cleaned) {
		return ""
	}
	return cleaned
}

// parsable checks that the cleaned string denotes a number under either the
// comma-grouped ("1,234.56") or dot-grouped ("1.234,56") convention.
func parsable(s string) bool {
	if _, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "")); err == nil {
		return true
	}
	european := strings.ReplaceAll(s, ".", "")
	european = strings.Replace(european, ",", ".", 1)
	if strings.Contains(european, ",") {
		return false
	}
	_, err := decimal.NewFromString(european)
	return err == nil
}
