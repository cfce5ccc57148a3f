package service

import (
	"github.com/FACorreiaa/statement-extractor/internal/statement/registry"
	"github.com/FACorreiaa/statement-extractor/internal/statement/transaction"
)

// dedupKey is the identity of one transaction. Overlapping table-extraction
// passes routinely re-emit the same row, so duplicates are expected input,
// dropped silently rather than logged as errors.
type dedupKey struct {
	date        string
	description string
	debit       string
	credit      string
	balance     string
}

// Deduplicate removes later occurrences of an identical key, preserving
// order. The first occurrence wins.
func Deduplicate(txs []transaction.Transaction) []transaction.Transaction {
	if len(txs) < 2 {
		return txs
	}
	seen := make(map[dedupKey]struct{}, len(txs))
	out := txs[:0:0]
	for _, tx := range txs {
		key := dedupKey{tx.Date, tx.Description, tx.Debit, tx.Credit, tx.Balance}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tx)
	}
	return out
}

// DeduplicateBank applies the same five-field key to per-bank records,
// using the post date as the date component.
func DeduplicateBank(txs []registry.Transaction) []registry.Transaction {
	if len(txs) < 2 {
		return txs
	}
	seen := make(map[dedupKey]struct{}, len(txs))
	out := txs[:0:0]
	for _, tx := range txs {
		key := dedupKey{tx.PostDate, tx.Description, tx.Debit, tx.Credit, tx.Balance}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tx)
	}
	return out
}
