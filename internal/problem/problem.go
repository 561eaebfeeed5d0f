package problem

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Constraint kinds.
const (
	KindLinear    = "linear"
	KindAdjacency = "adjacency"
	KindProduct   = "product"
)

// Problem is the top-level document.
type Problem struct {
	Name        string           `yaml:"name" json:"name"`
	Threads     int              `yaml:"threads,omitempty" json:"threads,omitempty"`
	Panels      []PanelSpec      `yaml:"panels" json:"panels"`
	Constraints []ConstraintSpec `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// PanelSpec describes a panel and the design variable it owns.
type PanelSpec struct {
	Name      string  `yaml:"name" json:"name"`
	DV        int     `yaml:"dv" json:"dv"`
	Thickness float64 `yaml:"thickness" json:"thickness"`
	Lower     float64 `yaml:"lower" json:"lower"`
	Upper     float64 `yaml:"upper" json:"upper"`
}

// ConstraintSpec describes one constraint block. Which fields apply depends
// on Kind.
type ConstraintSpec struct {
	Kind string `yaml:"kind" json:"kind"`
	Name string `yaml:"name" json:"name"`

	// linear
	Rows []RowSpec `yaml:"rows,omitempty" json:"rows,omitempty"`

	// adjacency
	Vars    []int   `yaml:"vars,omitempty" json:"vars,omitempty"`
	MaxStep float64 `yaml:"max_step,omitempty" json:"max_step,omitempty"`

	// product
	Pairs [][]int `yaml:"pairs,omitempty" json:"pairs,omitempty"`
	Lower float64 `yaml:"lower,omitempty" json:"lower,omitempty"`
}

// RowSpec is one linear row.
type RowSpec struct {
	Cols   []int     `yaml:"cols" json:"cols"`
	Coeffs []float64 `yaml:"coeffs" json:"coeffs"`
	Lower  float64   `yaml:"lower" json:"lower"`
	Upper  float64   `yaml:"upper" json:"upper"`
}

// NumDesignVars returns one more than the largest design variable index
// owned by a panel.
func (p *Problem) NumDesignVars() int {
	n := 0
	for _, ps := range p.Panels {
		n = max(n, ps.DV+1)
	}
	return n
}

// normalize rewrites every name to NFC.
func (p *Problem) normalize() {
	p.Name = norm.NFC.String(p.Name)
	for i := range p.Panels {
		p.Panels[i].Name = norm.NFC.String(p.Panels[i].Name)
	}
	for i := range p.Constraints {
		p.Constraints[i].Name = norm.NFC.String(p.Constraints[i].Name)
	}
}

// Validate checks the document for structural errors.
func (p *Problem) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Panels) == 0 {
		return fmt.Errorf("panels list is required and must be non-empty")
	}

	owner := make(map[int]string)
	for i, ps := range p.Panels {
		if ps.Name == "" {
			return fmt.Errorf("panels[%d]: name is required", i)
		}
		if ps.DV < 0 {
			continue
		}
		if prev, ok := owner[ps.DV]; ok {
			return fmt.Errorf("panels[%d] %q: design variable %d already owned by %q", i, ps.Name, ps.DV, prev)
		}
		owner[ps.DV] = ps.Name
		if ps.Lower > ps.Upper {
			return fmt.Errorf("panels[%d] %q: lower %g exceeds upper %g", i, ps.Name, ps.Lower, ps.Upper)
		}
	}

	numDV := p.NumDesignVars()
	for i, cs := range p.Constraints {
		if err := cs.validate(numDV); err != nil {
			return fmt.Errorf("constraints[%d] %q: %w", i, cs.Name, err)
		}
	}
	return nil
}

func (cs *ConstraintSpec) validate(numDV int) error {
	if cs.Name == "" {
		return fmt.Errorf("name is required")
	}
	checkVar := func(v int) error {
		if v < 0 || v >= numDV {
			return fmt.Errorf("design variable %d outside [0, %d)", v, numDV)
		}
		return nil
	}

	switch cs.Kind {
	case KindLinear:
		for r, row := range cs.Rows {
			if len(row.Cols) != len(row.Coeffs) {
				return fmt.Errorf("rows[%d]: %d cols but %d coeffs", r, len(row.Cols), len(row.Coeffs))
			}
			if row.Lower > row.Upper {
				return fmt.Errorf("rows[%d]: lower %g exceeds upper %g", r, row.Lower, row.Upper)
			}
			for _, c := range row.Cols {
				if err := checkVar(c); err != nil {
					return fmt.Errorf("rows[%d]: %w", r, err)
				}
			}
		}
	case KindAdjacency:
		for k, v := range cs.Vars {
			if err := checkVar(v); err != nil {
				return err
			}
			if k > 0 && cs.Vars[k-1] == v {
				return fmt.Errorf("vars[%d]: repeats its neighbour %d", k, v)
			}
		}
		if cs.MaxStep < 0 {
			return fmt.Errorf("max_step must be non-negative")
		}
	case KindProduct:
		for k, pr := range cs.Pairs {
			if len(pr) != 2 {
				return fmt.Errorf("pairs[%d]: need exactly 2 entries, got %d", k, len(pr))
			}
			for _, v := range pr {
				if err := checkVar(v); err != nil {
					return fmt.Errorf("pairs[%d]: %w", k, err)
				}
			}
		}
	default:
		return fmt.Errorf("unknown kind %q", cs.Kind)
	}
	return nil
}
