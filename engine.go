package rewards

import (
	"runtime"

	"go.uber.org/zap"
)

// Engine aggregates the rows of one extract.
//
// Rows are applied one at a time, in extract order, by a single caller. Once
// the last row is applied, Finalize derives averages and rankings and hands
// back the report. An Engine is not safe for concurrent use.
type Engine struct {
	metrics   *Metrics
	logger    *zap.Logger
	workers   int
	warnings  []*UnrecognizedTierWarning
	finalized bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report warnings and progress.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkers sets how many coins are ranked concurrently by Finalize.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

// NewEngine returns an Engine with an empty aggregation state.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		metrics: NewMetrics(),
		logger:  zap.NewNop(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Metrics returns the aggregation state. Callers must not modify it.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// Warnings returns the recoverable conditions met so far.
func (e *Engine) Warnings() []*UnrecognizedTierWarning { return e.warnings }
