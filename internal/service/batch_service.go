package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"invoiceagent/internal/config"
	"invoiceagent/internal/domain"
	"invoiceagent/internal/extract"
	"invoiceagent/internal/policy"
	"invoiceagent/internal/report"
	"invoiceagent/internal/validate"
)

// BatchService is the batch entry point: it turns a set of staged invoice
// files plus free-text limitations into a ReportData.
type BatchService interface {
	Process(ctx context.Context, files []domain.BatchFile, limitations string) (*domain.ReportData, error)
}

type batchService struct {
	interpreter *policy.Interpreter
	extractor   *extract.Engine
	validator   *validate.Validator
	cfg         *config.PipelineConfig
}

// NewBatchService creates a new BatchService implementation.
func NewBatchService(
	interpreter *policy.Interpreter,
	extractor *extract.Engine,
	validator *validate.Validator,
	cfg *config.PipelineConfig,
) BatchService {
	return &batchService{
		interpreter: interpreter,
		extractor:   extractor,
		validator:   validator,
		cfg:         cfg,
	}
}

// Process interprets the limitations once, runs extraction and validation for
// every file on a bounded worker pool, and aggregates the results. A failure
// processing one file never aborts the others; results come back in
// submission order regardless of completion order. Files with an unsupported
// extension are skipped without producing a result.
func (s *batchService) Process(ctx context.Context, files []domain.BatchFile, limitations string) (*domain.ReportData, error) {
	if limitations == "" {
		return nil, domain.ErrMissingLimitations
	}
	if len(files) == 0 {
		return nil, domain.ErrNoFiles
	}

	batchCtx := ctx
	if s.cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		batchCtx, cancel = context.WithTimeout(ctx, s.cfg.BatchTimeout)
		defer cancel()
	}

	rules := s.interpreter.Interpret(batchCtx, limitations)
	log.Printf("batchService.Process: rules interpreted (categories=%v, max=%.2f %s), processing %d files",
		rules.AllowedCategories, rules.MaxAmount, rules.Currency, len(files))

	concurrency := s.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	// slot per submitted file; nil marks a skipped file
	slots := make([]*domain.InvoiceResult, len(files))
	var wg sync.WaitGroup

	for i := range files {
		file := files[i]

		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // release

			slots[i] = s.processFile(batchCtx, file, rules)
		}(i)
	}
	wg.Wait()

	results := make([]domain.InvoiceResult, 0, len(files))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	return report.Aggregate(results, rules), nil
}

// processFile runs extraction and validation for one file. It returns nil for
// unsupported extensions and the safe default result for every other failure,
// including a batch deadline hit while the file was still pending.
func (s *batchService) processFile(ctx context.Context, file domain.BatchFile, rules *domain.RuleSet) *domain.InvoiceResult {
	if err := ctx.Err(); err != nil {
		log.Printf("batchService: batch deadline reached before processing %s", file.Filename)
		return domain.FallbackResult(file.Filename, err)
	}

	doc, err := s.extractor.Extract(file.Path, file.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			log.Printf("batchService: skipping %s: %v", file.Filename, err)
			return nil
		}
		log.Printf("batchService: extraction failed for %s: %v", file.Filename, err)
		return domain.FallbackResult(file.Filename, err)
	}

	return s.validator.Validate(ctx, doc, rules)
}
