// Package harness runs design scenarios against a problem's constraint
// system and checks the outcome.
//
// A scenario names a problem file, a sequence of design points to evaluate
// and assertions over the resulting trace.
//
// # Scenario Format
//
//	name: wingbox_taper
//	description: "Thinning the outer skin restores feasibility"
//	problem: ../problems/wingbox.yaml
//	steps:
//	  - expect:
//	      feasible: false
//	      constraints: {1: 0.004}
//	  - design: [0.010, 0.012, 0.014]
//	    expect: {feasible: true}
//	assertions:
//	  - type: pattern_ok
//	  - type: violation_nonincreasing
//	  - type: step_count
//	    count: 2
//
// The problem path is resolved relative to the scenario file. A step without
// a design evaluates the current point, which for the first step is the
// starting design of the problem.
//
// # Assertion Types
//
//   - pattern_ok: every block fills exactly its registered sparsity pattern
//   - feasible_at_end: the last step satisfies all constraint bounds
//   - violation_nonincreasing: the maximum bound violation never grows
//   - step_count: the trace has exactly Count steps
//
// # Golden Files
//
// RunWithGolden compares the trace against testdata/golden/<name>.golden.
// Values are rounded to 12 significant digits before they are written, so
// golden files do not depend on the last bits of floating point evaluation.
package harness
