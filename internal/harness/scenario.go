package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultTolerance is the bound slack a step may have and still count as
// feasible, and the default tolerance for expected constraint values.
const DefaultTolerance = 1e-9

// Scenario defines a sequence of design points to evaluate.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Problem is the path to a .yaml or .cue problem file.
	// Relative paths are resolved against the scenario file's directory.
	Problem string `yaml:"problem"`

	// Steps are evaluated in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the whole trace.
	Assertions []Assertion `yaml:"assertions"`
}

// Step moves to a design point and evaluates the constraints there.
type Step struct {
	// Design replaces the full design vector. Empty keeps the current one.
	Design []float64 `yaml:"design,omitempty"`

	// Expect is checked against the evaluation. Nil checks nothing.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected evaluation results.
type ExpectClause struct {
	// Feasible, when set, must equal the step's feasibility.
	Feasible *bool `yaml:"feasible,omitempty"`

	// Constraints maps global row index to expected value.
	Constraints map[int]float64 `yaml:"constraints,omitempty"`

	// Tolerance for Constraints. Zero means DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Assertion validates the trace.
type Assertion struct {
	// Type is one of the Assert constants.
	Type string `yaml:"type"`

	// Count is the expected number of steps (used by step_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertPatternOK              = "pattern_ok"
	AssertFeasibleAtEnd          = "feasible_at_end"
	AssertViolationNonincreasing = "violation_nonincreasing"
	AssertStepCount              = "step_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "step:" vs "steps:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the problem path BEFORE validation
	if scenario.Problem != "" && !filepath.IsAbs(scenario.Problem) {
		scenario.Problem = filepath.Join(filepath.Dir(path), scenario.Problem)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Problem == "" {
		return fmt.Errorf("problem is required")
	}
	if _, err := os.Stat(s.Problem); os.IsNotExist(err) {
		return fmt.Errorf("problem file not found: %s", s.Problem)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Expect != nil && step.Expect.Tolerance < 0 {
			return fmt.Errorf("steps[%d].expect: tolerance must be non-negative", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertPatternOK, AssertFeasibleAtEnd, AssertViolationNonincreasing:
	case AssertStepCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for step_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
