package problem

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/scalar"
)

func TestLoad_YAMLAndCUEAgree(t *testing.T) {
	fromYAML, err := Load("testdata/wingbox.yaml")
	require.NoError(t, err)

	fromCUE, err := Load("testdata/wingbox.cue")
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromCUE)
	assert.Equal(t, "wingbox", fromYAML.Name)
	assert.Equal(t, 4, fromYAML.Threads)
	assert.Equal(t, 3, fromYAML.NumDesignVars())
	require.Len(t, fromYAML.Constraints, 3)
	assert.Equal(t, [][]int{{0, 2}}, fromYAML.Constraints[2].Pairs)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = 'x'"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported problem file extension")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read problem file")
}

func TestParseYAML_RejectsUnknownFields(t *testing.T) {
	_, err := ParseYAML([]byte(`
name: p
panel:
  - {name: a, dv: 0, thickness: 1, lower: 0, upper: 2}
`))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestParseCUE_SchemaViolation(t *testing.T) {
	_, err := ParseCUE([]byte(`
name: "p"
panels: [{name: "a", dv: 0, thickness: 1, lower: 0, upper: 2}]
constraints: [{kind: "adjacency", name: "t", vars: [0], max_step: -1}]
`), "bad.cue")
	assert.ErrorContains(t, err, "schema violation")

	_, err = ParseCUE([]byte(`name: "p", panels: []`), "empty.cue")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	panel := func(name string, dv int) PanelSpec {
		return PanelSpec{Name: name, DV: dv, Thickness: 1, Lower: 0, Upper: 2}
	}

	tests := []struct {
		name    string
		problem Problem
		wantErr string
	}{
		{
			name:    "missing name",
			problem: Problem{Panels: []PanelSpec{panel("a", 0)}},
			wantErr: "name is required",
		},
		{
			name:    "no panels",
			problem: Problem{Name: "p"},
			wantErr: "panels list is required",
		},
		{
			name:    "shared design variable",
			problem: Problem{Name: "p", Panels: []PanelSpec{panel("a", 0), panel("b", 0)}},
			wantErr: `already owned by "a"`,
		},
		{
			name: "inverted bounds",
			problem: Problem{Name: "p", Panels: []PanelSpec{
				{Name: "a", DV: 0, Lower: 3, Upper: 1},
			}},
			wantErr: "lower 3 exceeds upper 1",
		},
		{
			name: "unknown kind",
			problem: Problem{Name: "p", Panels: []PanelSpec{panel("a", 0)}, Constraints: []ConstraintSpec{
				{Kind: "quadratic", Name: "q"},
			}},
			wantErr: `unknown kind "quadratic"`,
		},
		{
			name: "linear length mismatch",
			problem: Problem{Name: "p", Panels: []PanelSpec{panel("a", 0)}, Constraints: []ConstraintSpec{
				{Kind: KindLinear, Name: "l", Rows: []RowSpec{{Cols: []int{0}, Coeffs: []float64{1, 2}}}},
			}},
			wantErr: "1 cols but 2 coeffs",
		},
		{
			name: "adjacency out of range",
			problem: Problem{Name: "p", Panels: []PanelSpec{panel("a", 0)}, Constraints: []ConstraintSpec{
				{Kind: KindAdjacency, Name: "t", Vars: []int{0, 1}},
			}},
			wantErr: "design variable 1 outside [0, 1)",
		},
		{
			name: "adjacency repeat",
			problem: Problem{Name: "p", Panels: []PanelSpec{panel("a", 0), panel("b", 1)}, Constraints: []ConstraintSpec{
				{Kind: KindAdjacency, Name: "t", Vars: []int{0, 1, 1}},
			}},
			wantErr: "repeats its neighbour",
		},
		{
			name: "product arity",
			problem: Problem{Name: "p", Panels: []PanelSpec{panel("a", 0)}, Constraints: []ConstraintSpec{
				{Kind: KindProduct, Name: "s", Pairs: [][]int{{0}}},
			}},
			wantErr: "need exactly 2 entries",
		},
		{
			name: "fixed panel",
			problem: Problem{Name: "p", Panels: []PanelSpec{panel("a", 0), panel("fixed", -1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.problem.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNormalize_NFC(t *testing.T) {
	// Decomposed input: "e" followed by U+0301 COMBINING ACUTE ACCENT.
	doc := "name: \"cafe\u0301\"\npanels:\n  - {name: \"pane\u0301l\", dv: 0, thickness: 1, lower: 0, upper: 2}\n"
	p, err := ParseYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", p.Name)
	assert.Equal(t, "pan\u00e9l", p.Panels[0].Name)
}

func TestBuild(t *testing.T) {
	p, err := Load("testdata/wingbox.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	e := env.New(env.Options{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))})
	defer e.Close()

	m := p.Build(e)
	assert.Contains(t, buf.String(), "problem built")
	s := m.System

	assert.Equal(t, 3, s.NumDesignVars())
	assert.Equal(t, 4, s.NumCon())
	assert.Equal(t, []int{0, 2, 3}, s.Offsets())
	assert.False(t, s.IsLinear())

	assert.Equal(t, []float64{0.010, 0.012, 0.016}, scalar.RealParts(s.DesignVector()))
	lb, ub := s.DesignBounds()
	assert.Equal(t, []float64{0.002, 0.002, 0.002}, scalar.RealParts(lb))
	assert.Equal(t, []float64{0.05, 0.05, 0.05}, scalar.RealParts(ub))

	con := make([]scalar.Scalar, s.NumCon())
	require.NoError(t, s.EvalCon(con))
	got := scalar.RealParts(con)
	assert.InDelta(t, 0.002, got[0], 1e-15)
	assert.InDelta(t, 0.004, got[1], 1e-15)
	assert.InDelta(t, 0.038, got[2], 1e-15)
	assert.InDelta(t, 0.00016, got[3], 1e-15)

	require.NoError(t, s.CheckPattern())

	panels := m.Panels()
	require.Len(t, panels, 3)
	assert.Equal(t, 2, panels[0].RefCount())

	m.Close()
	assert.Equal(t, 3, strings.Count(buf.String(), "panel destroyed"))
	assert.Equal(t, 3, strings.Count(buf.String(), "constraint destroyed"))
}
