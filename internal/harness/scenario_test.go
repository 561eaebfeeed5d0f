package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wingboxProblem = "../problem/testdata/wingbox.yaml"

// writeScenario writes content to a scenario file in a temp dir. The problem
// path in content should be absolute.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func absProblem(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(wingboxProblem)
	require.NoError(t, err)
	return p
}

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/wingbox_taper.yaml")
	require.NoError(t, err)

	assert.Equal(t, "wingbox_taper", scenario.Name)
	assert.Equal(t, wingboxProblem, scenario.Problem)
	require.Len(t, scenario.Steps, 2)
	assert.Empty(t, scenario.Steps[0].Design)
	assert.Equal(t, []float64{0.010, 0.012, 0.014}, scenario.Steps[1].Design)
	require.NotNil(t, scenario.Steps[0].Expect.Feasible)
	assert.False(t, *scenario.Steps[0].Expect.Feasible)
	assert.Equal(t, map[int]float64{1: 0.004, 2: 0.038}, scenario.Steps[0].Expect.Constraints)
	assert.Len(t, scenario.Assertions, 4)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/absent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "misspelled steps"
problem: `+absProblem(t)+`
step:
  - design: [1, 2, 3]
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Validation(t *testing.T) {
	problem := absProblem(t)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nproblem: " + problem + "\nsteps: [{}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nproblem: " + problem + "\nsteps: [{}]\n",
			wantErr: "description is required",
		},
		{
			name:    "missing problem",
			content: "name: n\ndescription: d\nsteps: [{}]\n",
			wantErr: "problem is required",
		},
		{
			name:    "problem not found",
			content: "name: n\ndescription: d\nproblem: /nonexistent/p.yaml\nsteps: [{}]\n",
			wantErr: "problem file not found",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\nproblem: " + problem + "\n",
			wantErr: "steps list is required",
		},
		{
			name:    "negative tolerance",
			content: "name: n\ndescription: d\nproblem: " + problem + "\nsteps:\n  - expect: {tolerance: -1}\n",
			wantErr: "tolerance must be non-negative",
		},
		{
			name:    "unknown assertion",
			content: "name: n\ndescription: d\nproblem: " + problem + "\nsteps: [{}]\nassertions:\n  - type: converged\n",
			wantErr: `unknown assertion type "converged"`,
		},
		{
			name:    "negative count",
			content: "name: n\ndescription: d\nproblem: " + problem + "\nsteps: [{}]\nassertions:\n  - {type: step_count, count: -1}\n",
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
