// Package service orchestrates the extraction pipeline: metadata from the
// first page, tables from every page in order, row extraction,
// deduplication and response assembly.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/statement-extractor/internal/statement/header"
	"github.com/FACorreiaa/statement-extractor/internal/statement/metadata"
	"github.com/FACorreiaa/statement-extractor/internal/statement/registry"
	"github.com/FACorreiaa/statement-extractor/internal/statement/table"
	"github.com/FACorreiaa/statement-extractor/internal/statement/transaction"
)

// Service runs documents through the extraction pipeline. Construct once
// and share; it is safe for concurrent use.
type Service struct {
	logger   *slog.Logger
	meta     *metadata.Extractor
	rows     *transaction.Extractor
	synonyms header.SynonymTable
	registry *registry.Registry
	policy   Policy
	metrics  *Metrics
}

// Option customizes a Service.
type Option func(*Service)

// WithSynonyms overrides the header synonym table.
func WithSynonyms(t header.SynonymTable) Option {
	return func(s *Service) { s.synonyms = t }
}

// WithPolicy sets the response-code policy.
func WithPolicy(p Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithRegistry attaches a bank parser registry for ProcessBank.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Service) { s.registry = r }
}

// WithMetrics attaches extraction metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New builds a Service with default synonyms and the transaction-count
// response policy.
func New(logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		logger:   logger,
		meta:     metadata.NewExtractor(logger),
		rows:     transaction.NewExtractor(logger),
		synonyms: header.DefaultSynonyms(),
		policy:   PolicyTransactions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process runs the generic header-mapping pipeline over one document.
// Row- and table-level failures are recovered locally to maximize partial
// yield; only context cancellation aborts mid-document.
func (s *Service) Process(ctx context.Context, doc *table.Document) (*Result, error) {
	jobID := uuid.New().String()
	logger := s.logger.With("job_id", jobID)

	meta := s.meta.Extract(doc.FirstPageText())

	var txs []transaction.Transaction
	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, tbl := range page.Tables {
			result, err := s.rows.ExtractTable(page.Number, tbl, s.synonyms)
			if err != nil {
				if errors.Is(err, transaction.ErrTableRejected) {
					logger.Warn("table rejected", "page", page.Number, "error", err)
					s.countTableRejected()
					continue
				}
				return nil, err
			}
			for _, skip := range result.Skips {
				s.countRowSkipped(skip.Reason)
			}
			txs = append(txs, result.Transactions...)
		}
	}

	txs = Deduplicate(txs)
	code, message := assemble(s.policy, meta, len(txs))
	s.countDocument(code)
	logger.Info("document processed",
		"code", string(code), "transactions", len(txs), "missing_fields", len(meta.MissingFields()))

	return &Result{
		ResponseCode: code,
		Code:         code.Numeric(),
		Message:      message,
		Metadata:     meta,
		Transactions: txs,
	}, nil
}

// ProcessSource extracts a document from a source and processes it. A
// collaborator failure is surfaced as a ProcessingError result, never a
// raw error to the caller.
func (s *Service) ProcessSource(ctx context.Context, src table.Source) (*Result, error) {
	doc, err := src.Extract()
	if err != nil {
		s.logger.Error("document extraction failed", "error", err)
		s.countDocument(CodeProcessingError)
		return &Result{
			ResponseCode: CodeProcessingError,
			Code:         CodeProcessingError.Numeric(),
			Message:      "Document could not be processed",
			Metadata:     metadata.Empty(),
		}, nil
	}
	return s.Process(ctx, doc)
}

// ProcessBank runs the per-bank registry pipeline. An unrecognized bank is
// a hard failure propagated to the caller; no generic fallback mapping is
// guessed for an unknown table shape.
func (s *Service) ProcessBank(ctx context.Context, doc *table.Document) (*BankResult, error) {
	if s.registry == nil {
		return nil, registry.ErrBankUnrecognized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobID := uuid.New().String()
	logger := s.logger.With("job_id", jobID)

	parsed, err := s.registry.Parse(doc)
	if err != nil {
		return nil, err
	}
	for i := 0; i < parsed.SkippedRows; i++ {
		s.countRowSkipped("bank_row_filtered")
	}

	txs := DeduplicateBank(parsed.Transactions)
	code, message := assemble(s.policy, parsed.Metadata, len(txs))
	s.countDocument(code)
	logger.Info("document processed",
		"bank", parsed.Metadata.BankName, "code", string(code), "transactions", len(txs))

	return &BankResult{
		ResponseCode: code,
		Code:         code.Numeric(),
		Message:      message,
		Metadata:     parsed.Metadata,
		Transactions: txs,
	}, nil
}

// ProcessBankSource is ProcessSource for the registry pipeline. Unlike
// collaborator failures, ErrBankUnrecognized stays an error.
func (s *Service) ProcessBankSource(ctx context.Context, src table.Source) (*BankResult, error) {
	doc, err := src.Extract()
	if err != nil {
		s.logger.Error("document extraction failed", "error", err)
		s.countDocument(CodeProcessingError)
		return &BankResult{
			ResponseCode: CodeProcessingError,
			Code:         CodeProcessingError.Numeric(),
			Message:      "Document could not be processed",
			Metadata:     metadata.Empty(),
		}, nil
	}
	return s.ProcessBank(ctx, doc)
}

func (s *Service) countRowSkipped(reason transaction.SkipReason) {
	if s.metrics != nil {
		s.metrics.RowsSkipped.WithLabelValues(string(reason)).Inc()
	}
}

func (s *Service) countTableRejected() {
	if s.metrics != nil {
		s.metrics.TablesRejected.Inc()
	}
}

func (s *Service) countDocument(code ResponseCode) {
	if s.metrics != nil {
		s.metrics.Documents.WithLabelValues(string(code)).Inc()
	}
}
