package harness

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestRun_Wingbox(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/wingbox_taper.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Trace, 2)
	assert.False(t, result.Trace[0].Feasible)
	assert.Equal(t, 0.0015, result.Trace[0].MaxViolation)
	assert.True(t, result.Trace[1].Feasible)
	assert.Equal(t, 0.0, result.Trace[1].MaxViolation)
}

func TestRun_ExpectFailures(t *testing.T) {
	scenario := &Scenario{
		Name:    "wrong",
		Problem: wingboxProblem,
		Steps: []Step{
			{Expect: &ExpectClause{
				Feasible:    boolPtr(true),
				Constraints: map[int]float64{0: 1, 9: 0},
			}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "expected feasible=true, got false")
	assert.Contains(t, result.Errors[1], "constraint 0 = 0.002, expected 1")
	assert.Contains(t, result.Errors[2], "constraint row 9 out of range [0, 4)")
}

func TestRun_ToleranceOverride(t *testing.T) {
	scenario := &Scenario{
		Name:    "loose",
		Problem: wingboxProblem,
		Steps: []Step{
			{Expect: &ExpectClause{Constraints: map[int]float64{2: 0.04}, Tolerance: 0.01}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_Assertions(t *testing.T) {
	tests := []struct {
		name       string
		steps      []Step
		assertion  Assertion
		wantErrors []string
	}{
		{
			name:       "feasible at end fails",
			steps:      []Step{{}},
			assertion:  Assertion{Type: AssertFeasibleAtEnd},
			wantErrors: []string{"final step is not feasible"},
		},
		{
			name:       "violation grows",
			steps:      []Step{{Design: []float64{0.010, 0.012, 0.014}}, {Design: []float64{0.010, 0.012, 0.016}}},
			assertion:  Assertion{Type: AssertViolationNonincreasing},
			wantErrors: []string{"max violation grew from 0 to 0.0015 at step 1"},
		},
		{
			name:       "step count mismatch",
			steps:      []Step{{}},
			assertion:  Assertion{Type: AssertStepCount, Count: 3},
			wantErrors: []string{"expected 3 steps, got 1"},
		},
		{
			name:      "pattern ok",
			steps:     []Step{{}},
			assertion: Assertion{Type: AssertPatternOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(&Scenario{
				Name:       tt.name,
				Problem:    wingboxProblem,
				Steps:      tt.steps,
				Assertions: []Assertion{tt.assertion},
			})
			require.NoError(t, err)
			require.Len(t, result.Errors, len(tt.wantErrors))
			for i, want := range tt.wantErrors {
				assert.Contains(t, result.Errors[i], want)
			}
			assert.Equal(t, len(tt.wantErrors) == 0, result.Pass)
		})
	}
}

func TestRun_DesignLengthMismatch(t *testing.T) {
	_, err := Run(&Scenario{
		Name:    "short",
		Problem: wingboxProblem,
		Steps:   []Step{{Design: []float64{1}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]: design has 1 entries, problem has 3")
}

func TestRun_MissingProblem(t *testing.T) {
	_, err := Run(&Scenario{Name: "gone", Problem: "testdata/absent.yaml", Steps: []Step{{}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load problem")
}

func TestRunWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := RunWithLogger(&Scenario{Name: "logged", Problem: wingboxProblem, Steps: []Step{{}}}, logger)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "scenario evaluated")
	assert.Contains(t, buf.String(), "scenario=logged")
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.038, round(0.01+0.012+0.016))
	assert.Equal(t, 0.0, round(0))
	assert.Equal(t, []float64{0.1, 0.3}, roundAll([]float64{0.1, 0.1 + 0.2}))
}
