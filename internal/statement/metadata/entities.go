package metadata

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// knownBanks is the lexicon used to canonicalize OCR-mangled organization
// names. Order does not matter; the closest fuzzy match wins.
var knownBanks = []string{
	"State Bank of India",
	"Central Bank of India",
	"City Union Bank",
	"Lakshmi Vilas Bank",
	"Punjab National Bank",
	"Union Bank of India",
	"Indian Overseas Bank",
	"Bank of Baroda",
	"Baroda Gramin Bank",
	"Canara Bank",
	"HDFC Bank",
	"ICICI Bank",
	"Axis Bank",
	"Karur Vysya Bank",
}

// maxBankRank bounds the edit distance accepted when snapping a detected
// organization onto the lexicon.
const maxBankRank = 5

// orgEntity recognizes the issuing bank: the first phrase shaped like an
// organization name ending in a bank keyword. Detected phrases are snapped
// onto the known-bank lexicon when a close fuzzy match exists, which
// absorbs the single-character OCR errors these headers typically carry.
type orgEntity struct{}

func (orgEntity) Extract(snap Snapshot) (string, bool) {
	for _, line := range snap.Lines {
		if phrase := bankPhrase(line); phrase != "" {
			return canonicalBank(phrase), true
		}
	}
	return "", false
}

// bankPhrase pulls the capitalized word run around the first "Bank" token
// in a line, including a trailing "of <Place>" tail.
func bankPhrase(line string) string {
	words := strings.Fields(line)
	bankIdx := -1
	for i, w := range words {
		if strings.EqualFold(strings.Trim(w, ".,:;"), "bank") {
			bankIdx = i
			break
		}
	}
	if bankIdx == -1 {
		return ""
	}

	start := bankIdx
	for start > 0 && isNameWord(words[start-1]) {
		start--
	}
	end := bankIdx + 1
	for end < len(words)-1 && strings.EqualFold(words[end], "of") && isNameWord(words[end+1]) {
		end += 2
	}

	phrase := strings.Join(words[start:end], " ")
	phrase = strings.Trim(phrase, ".,:;")
	if phrase == "" || strings.EqualFold(phrase, "bank") {
		return ""
	}
	return phrase
}

func isNameWord(w string) bool {
	w = strings.Trim(w, ".,:;&")
	if w == "" {
		return false
	}
	r := rune(w[0])
	return r >= 'A' && r <= 'Z' && !strings.ContainsAny(w, "0123456789")
}

// canonicalBank snaps a detected phrase to the closest lexicon entry, or
// returns the phrase unchanged when nothing is close enough.
func canonicalBank(phrase string) string {
	best := ""
	bestRank := maxBankRank + 1
	for _, known := range knownBanks {
		rank := fuzzy.RankMatchNormalizedFold(phrase, known)
		if rank >= 0 && rank < bestRank {
			bestRank = rank
			best = known
		}
	}
	if best != "" {
		return best
	}
	return phrase
}

// holderStopWords disqualify a line from being a person/organization name.
var holderStopWords = []string{
	"statement", "account", "branch", "balance", "date", "period",
	"ifsc", "page", "transaction", "address", "phone", "email",
}

var holderShape = regexp.MustCompile(`^(?:[A-Z][A-Za-z.']*\s+){1,3}[A-Z][A-Za-z.']*$`)

// holderEntity recognizes the account holder: the first person-or-org
// shaped line distinct from the already-resolved bank name.
type holderEntity struct{}

func (holderEntity) Extract(snap Snapshot) (string, bool) {
	bank := snap.Found.BankName
	for _, line := range snap.Lines {
		candidate := strings.TrimSpace(line)
		if candidate == "" || !holderShape.MatchString(candidate) {
			continue
		}
		lower := strings.ToLower(candidate)
		if containsAny(lower, holderStopWords) || strings.Contains(lower, "bank") {
			continue
		}
		if bank != "" && bank != UnknownBank && strings.Contains(strings.ToLower(bank), lower) {
			continue
		}
		return candidate, true
	}
	return "", false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// cardinalPattern matches long digit runs. The length floor avoids
// grabbing branch codes and PINs as account numbers.
var cardinalPattern = regexp.MustCompile(`\b\d{8,18}\b`)

// cardinalEntity recognizes the account number as the first sufficiently
// long numeric token.
type cardinalEntity struct{}

func (cardinalEntity) Extract(snap Snapshot) (string, bool) {
	if m := cardinalPattern.FindString(snap.Text); m != "" {
		return m, true
	}
	return "", false
}
