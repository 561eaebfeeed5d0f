package harness

import (
	"fmt"
	"log/slog"

	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/optim"
	"github.com/roach88/tacs/internal/problem"
	"github.com/roach88/tacs/internal/scalar"
)

// Run executes a scenario and returns the result.
//
// Each scenario builds its problem in a fresh environment. The returned
// error is reserved for scenarios that cannot be executed at all; failed
// expectations are reported through Result.Errors.
func Run(s *Scenario) (*Result, error) {
	return RunWithLogger(s, nil)
}

// RunWithLogger is Run with diagnostics sent to logger.
func RunWithLogger(s *Scenario, logger *slog.Logger) (*Result, error) {
	p, err := problem.Load(s.Problem)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}

	e := env.New(env.Options{Logger: logger, NumThreads: p.Threads})
	defer e.Close()

	m := p.Build(e)
	defer m.Close()
	sys := m.System

	result := NewResult()
	for i, step := range s.Steps {
		if len(step.Design) > 0 {
			if len(step.Design) != sys.NumDesignVars() {
				return nil, fmt.Errorf("steps[%d]: design has %d entries, problem has %d",
					i, len(step.Design), sys.NumDesignVars())
			}
			sys.SetDesignVars(scalar.FromReals(step.Design))
		}

		ev, err := evaluate(sys, i)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		result.AddTrace(ev)
		checkExpect(result, i, step.Expect, ev)
	}

	e.Logger.Debug("scenario evaluated",
		"scenario", s.Name,
		"steps", len(result.Trace),
	)

	checkAssertions(result, s.Assertions, sys)
	return result, nil
}

// evaluate records the system at its current design.
func evaluate(sys *optim.System, step int) (TraceEvent, error) {
	n := sys.NumCon()
	con := make([]scalar.Scalar, n)
	lb := make([]scalar.Scalar, n)
	ub := make([]scalar.Scalar, n)

	if err := sys.ConRange(lb, ub); err != nil {
		return TraceEvent{}, err
	}
	if err := sys.EvalCon(con); err != nil {
		return TraceEvent{}, err
	}

	violation := 0.0
	for i := range con {
		c := scalar.RealPart(con[i])
		violation = max(violation, scalar.RealPart(lb[i])-c, c-scalar.RealPart(ub[i]))
	}

	return TraceEvent{
		Step:         step,
		Design:       roundAll(scalar.RealParts(sys.DesignVector())),
		Constraints:  roundAll(scalar.RealParts(con)),
		MaxViolation: round(violation),
		Feasible:     violation <= DefaultTolerance,
	}, nil
}
