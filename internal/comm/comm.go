package comm

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/roach88/tacs/internal/scalar"
)

// ErrAlreadyInitialized is returned by Initialize when a session is active.
var ErrAlreadyInitialized = errors.New("comm: already initialized")

var initialized atomic.Bool

// IsInitialized reports whether a session is active in this process.
func IsInitialized() bool {
	return initialized.Load()
}

// Session owns the reduction operators for one Initialize/Finalize cycle.
type Session struct {
	// ID correlates log lines from one process lifetime.
	ID string

	Min ReduceOp
	Max ReduceOp

	logger *slog.Logger
	closed bool
}

// Initialize opens the process session. logger may be nil.
func Initialize(logger *slog.Logger) (*Session, error) {
	if !initialized.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialized
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Session{
		ID:     uuid.Must(uuid.NewV7()).String(),
		Min:    ReduceOp{kind: OpMin},
		Max:    ReduceOp{kind: OpMax},
		logger: logger,
	}
	s.logger.Info("comm initialized",
		"session", s.ID,
		"scalar", scalar.BuildMode(),
	)
	return s, nil
}

// Finalize closes the session. Calling it more than once is a no-op.
func (s *Session) Finalize() {
	if s.closed {
		return
	}
	s.closed = true
	initialized.Store(false)
	s.logger.Info("comm finalized", "session", s.ID)
}
