// Package env carries the per-context state that analysis objects need:
// the logger, the flop counter and the thread configuration.
//
// An Env is passed explicitly to every constructor that logs or counts.
// It is single-writer: one goroutine mutates its counter and thread count.
package env

import (
	"log/slog"

	"github.com/roach88/tacs/internal/flops"
	"github.com/roach88/tacs/internal/refcount"
	"github.com/roach88/tacs/internal/threads"
)

// Options configures New.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// NumThreads is the initial worker count, clipped to [1, threads.MaxThreads].
	// Zero means 1.
	NumThreads int
}

// Env is the execution context.
type Env struct {
	Logger *slog.Logger
	Flops  *flops.Counter

	threads *refcount.Shared[*threads.Info]
}

// New creates an Env. The caller owns it and must call Close.
func New(opts Options) *Env {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.NumThreads == 0 {
		opts.NumThreads = 1
	}

	e := &Env{
		Logger:  logger,
		Flops:   &flops.Counter{},
		threads: refcount.Own(threads.NewInfo(1)),
	}
	e.SetNumThreads(opts.NumThreads)
	return e
}

// Threads returns the thread configuration. The result is borrowed.
func (e *Env) Threads() *threads.Info {
	return e.threads.Get()
}

// SetNumThreads sets the worker count and returns the value actually stored.
// Out-of-range requests are clipped and logged.
func (e *Env) SetNumThreads(n int) int {
	info := e.threads.Get()
	if info.SetNumThreads(n) {
		e.Logger.Warn("thread count clipped",
			"requested", n,
			"using", info.NumThreads(),
			"max", threads.MaxThreads,
		)
	}
	return info.NumThreads()
}

// AddFlops records n operations on the context's counter.
func (e *Env) AddFlops(n float64) {
	if e != nil {
		e.Flops.Add(n)
	}
}

// Close releases the context's references.
func (e *Env) Close() {
	e.threads.Release()
}
