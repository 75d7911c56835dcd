package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/model"
)

// BatchProcessor handles concurrent processing of multiple subjects.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-subject execution
// 2. It allows different batch strategies (e.g., rate limiting)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each subject.
	// A factory ensures each subject gets a fresh pipeline instance so
	// no state leaks between subjects.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of subjects in flight, sized to
	// respect downstream provider rate limits.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent subjects.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     2,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans multiple subjects concurrently.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each subject gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Subjects share no mutable state, so results are written to per-index
// slots and returned in seed order. Every subject produces a report, even
// when its scan was cancelled mid-flight.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, subjects []model.Subject) []*model.SubjectReport {
	bp.logger.Info("starting batch processing",
		"total_subjects", len(subjects),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	results := make([]*model.SubjectReport, len(subjects))

	var g errgroup.Group
	g.SetLimit(bp.concurrency)

	for i, subject := range subjects {
		g.Go(func() error {
			bp.logger.Info("scanning subject",
				"subject", subject.FullName,
				"index", i+1,
				"total", len(subjects),
			)

			scan := NewSubjectScan(subject)
			if err := bp.pipelineFactory().Execute(ctx, scan); err != nil {
				bp.logger.Warn("subject scan ended early",
					"subject", subject.FullName,
					"error", err,
				)
				// A cancelled scan still gets ranked so partial
				// evidence is not silently dropped.
				scan.Report.Finalize(config.DefaultMaxEvidence)
			}

			results[i] = scan.Report
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines never return errors

	bp.logger.Info("batch processing completed",
		"total_subjects", len(subjects),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)
	return results
}
