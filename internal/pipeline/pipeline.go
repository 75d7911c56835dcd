package pipeline

import (
	"context"
	"log/slog"

	"github.com/osintbo/rastro/internal/model"
)

// SubjectScan carries one subject through the pipeline: the immutable seed
// record plus the report being built for it.
type SubjectScan struct {
	// Subject is the seed record. Never mutated by steps.
	Subject model.Subject

	// Report accumulates evidence and counters across steps.
	Report *model.SubjectReport
}

// NewSubjectScan creates the scan state for one subject.
func NewSubjectScan(subject model.Subject) *SubjectScan {
	return &SubjectScan{
		Subject: subject,
		Report:  model.NewSubjectReport(subject),
	}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// scan state from previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features
type Step interface {
	// Do executes the pipeline step.
	// Returns an error only for critical failures; degraded results
	// (empty branches, timeouts) are recorded in the report and return nil.
	Do(ctx context.Context, scan *SubjectScan) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps for one subject.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, a default logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
//
// Design decision: We check context.Done() before each step rather than
// during, because steps handle their own timeouts. This allows graceful
// cleanup between steps while still respecting cancellation.
//
// A failed step never stops the pipeline; its error is logged and the
// remaining steps still run, so a broken collection branch still produces
// a ranked (possibly empty) report.
func (p *Pipeline) Execute(ctx context.Context, scan *SubjectScan) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"subject", scan.Subject.FullName,
				"reason", ctx.Err(),
			)
			scan.Report.TimedOut = true
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"subject", scan.Subject.FullName,
		)

		if err := step.Do(ctx, scan); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"subject", scan.Subject.FullName,
				"error", err,
			)
			continue
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"subject", scan.Subject.FullName,
		)
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
