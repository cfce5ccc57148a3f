package service

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/statement-extractor/internal/statement/metadata"
	"github.com/FACorreiaa/statement-extractor/internal/statement/registry"
	"github.com/FACorreiaa/statement-extractor/internal/statement/transaction"
)

// ResponseCode classifies the outcome of one document extraction.
type ResponseCode string

const (
	CodeSuccess              ResponseCode = "Success"
	CodePartialMissingFields ResponseCode = "PartialMissingFields"
	CodeNoValidTransactions  ResponseCode = "NoValidTransactions"
	CodeProcessingError      ResponseCode = "ProcessingError"
)

// Numeric returns the legacy two-digit alias downstream consumers still
// parse alongside the symbolic code.
func (c ResponseCode) Numeric() string {
	switch c {
	case CodeSuccess:
		return "00"
	case CodeNoValidTransactions:
		return "01"
	case CodePartialMissingFields:
		return "02"
	default:
		return "99"
	}
}

// Policy selects which signal decides success. The generic header-mapping
// pipeline keys on transaction count; the per-bank registry pipeline keys
// on metadata completeness. A deployment configures one, never both.
type Policy string

const (
	PolicyTransactions Policy = "transactions"
	PolicyMetadata     Policy = "metadata"
)

// ParsePolicy validates a configured policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyTransactions:
		return PolicyTransactions, nil
	case PolicyMetadata:
		return PolicyMetadata, nil
	default:
		return "", fmt.Errorf("unknown response policy %q", s)
	}
}

// Result is the JSON artifact of the generic pipeline.
type Result struct {
	ResponseCode ResponseCode              `json:"responseCode"`
	Code         string                    `json:"code"`
	Message      string                    `json:"message"`
	Metadata     metadata.Metadata         `json:"metadata"`
	Transactions []transaction.Transaction `json:"transactions"`
}

// BankResult is the JSON artifact of the registry pipeline, carrying the
// richer per-bank transaction shape.
type BankResult struct {
	ResponseCode ResponseCode           `json:"responseCode"`
	Code         string                 `json:"code"`
	Message      string                 `json:"message"`
	Metadata     metadata.Metadata      `json:"metadata"`
	Transactions []registry.Transaction `json:"transactions"`
}

// assemble decides the response code and message for one extraction under
// the configured policy. The missing-fields remark names each absent field
// exactly; consumers alert on specific fields going dark.
func assemble(policy Policy, meta metadata.Metadata, txCount int) (ResponseCode, string) {
	switch policy {
	case PolicyMetadata:
		if missing := meta.MissingFields(); len(missing) > 0 {
			return CodePartialMissingFields,
				fmt.Sprintf("Missing metadata fields: %s", strings.Join(missing, ", "))
		}
		if txCount == 0 {
			return CodeNoValidTransactions, "No valid transactions were found"
		}
		return CodeSuccess, "Extraction completed successfully"
	default:
		if txCount == 0 {
			return CodeNoValidTransactions, "No valid transactions were found"
		}
		return CodeSuccess, "Extraction completed successfully"
	}
}
