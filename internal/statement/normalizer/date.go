// Package normalizer provides pure normalization functions for the raw date
// and amount strings found in bank statements. Nothing here holds state.
package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseableDate indicates that no supported date format matched the input.
var ErrUnparseableDate = errors.New("unparseable date")

// CanonicalDateLayout is the output layout for all normalized dates.
const CanonicalDateLayout = "02-01-2006"

// dateLayouts are tried in priority order. The canonical layout comes first
// so already-normalized values round-trip unchanged. Source documents are
// day-first locales, so day-first layouts precede everything else.
var dateLayouts = []string{
	CanonicalDateLayout, // DD-MM-YYYY
	"02/01/2006",
	"2/1/2006",
	"2-1-2006",
	"02-01-06",
	"02/01/06",
	"02.01.2006",
	"02 Jan 2006",
	"02-Jan-2006",
	"02/Jan/2006",
	"02 Jan 06",
	"Jan 02, 2006",
	"2006-01-02",
}

// Date converts a free-form date string into the canonical DD-MM-YYYY form.
// Layouts are tried in priority order; if none match, a generic day-first
// parse is attempted. It never guesses a synthetic date: failure returns
// ErrUnparseableDate. Ambiguous values such as "01/02/03" resolve with the
// configured day-first policy and are not disambiguated further.
func Date(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrUnparseableDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(CanonicalDateLayout), nil
		}
	}

	if t, ok := parseDayFirst(s); ok {
		return t.Format(CanonicalDateLayout), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
}

// parseDayFirst is the generic fallback: split the input on common
// separators and interpret the pieces day-before-month.
func parseDayFirst(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.' || r == ' ' || r == ','
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}

	month, ok := parseMonth(parts[1])
	if !ok {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		if year >= 69 {
			year += 1900
		} else {
			year += 2000
		}
	}

	if day < 1 || day > 31 || year < 1900 || year > 2200 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 31 Feb); reject anything that moved.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

func parseMonth(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n, true
		}
		return 0, false
	}
	if len(s) < 3 {
		return 0, false
	}
	abbr := strings.ToUpper(s[:1]) + strings.ToLower(s[1:3])
	if t, err := time.Parse("Jan", abbr); err == nil {
		return int(t.Month()), true
	}
	return 0, false
}
