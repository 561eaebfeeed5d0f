package harness

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/roach88/tacs/internal/optim"
)

// checkExpect compares one step's evaluation with its expect clause.
func checkExpect(r *Result, step int, exp *ExpectClause, ev TraceEvent) {
	if exp == nil {
		return
	}

	if exp.Feasible != nil && *exp.Feasible != ev.Feasible {
		r.AddError(fmt.Sprintf("steps[%d]: expected feasible=%t, got %t (max violation %g)",
			step, *exp.Feasible, ev.Feasible, ev.MaxViolation))
	}

	tol := exp.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	for _, row := range slices.Sorted(maps.Keys(exp.Constraints)) {
		want := exp.Constraints[row]
		if row < 0 || row >= len(ev.Constraints) {
			r.AddError(fmt.Sprintf("steps[%d]: constraint row %d out of range [0, %d)",
				step, row, len(ev.Constraints)))
			continue
		}
		if got := ev.Constraints[row]; math.Abs(got-want) > tol {
			r.AddError(fmt.Sprintf("steps[%d]: constraint %d = %g, expected %g (tolerance %g)",
				step, row, got, want, tol))
		}
	}
}

// checkAssertions evaluates trace-level assertions.
func checkAssertions(r *Result, assertions []Assertion, sys *optim.System) {
	for i, a := range assertions {
		switch a.Type {
		case AssertPatternOK:
			if err := sys.CheckPattern(); err != nil {
				r.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
			}

		case AssertFeasibleAtEnd:
			if len(r.Trace) == 0 || !r.Trace[len(r.Trace)-1].Feasible {
				r.AddError(fmt.Sprintf("assertions[%d]: final step is not feasible", i))
			}

		case AssertViolationNonincreasing:
			for k := 1; k < len(r.Trace); k++ {
				prev, cur := r.Trace[k-1].MaxViolation, r.Trace[k].MaxViolation
				if cur > prev {
					r.AddError(fmt.Sprintf("assertions[%d]: max violation grew from %g to %g at step %d",
						i, prev, cur, k))
					break
				}
			}

		case AssertStepCount:
			if len(r.Trace) != a.Count {
				r.AddError(fmt.Sprintf("assertions[%d]: expected %d steps, got %d", i, a.Count, len(r.Trace)))
			}
		}
	}
}
