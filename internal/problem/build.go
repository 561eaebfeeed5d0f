package problem

import (
	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/model"
	"github.com/roach88/tacs/internal/optim"
	"github.com/roach88/tacs/internal/refcount"
)

// Model is a built problem: the owned analysis objects and the System that
// composes them.
type Model struct {
	Name   string
	System *optim.System

	panels      []*refcount.Shared[*model.Panel]
	constraints []*refcount.Shared[model.Constraint]
}

// Build creates the panels and constraint blocks of p and registers them
// with a new System. The caller owns the Model and must call Close.
func (p *Problem) Build(e *env.Env) *Model {
	m := &Model{
		Name:   p.Name,
		System: optim.NewSystem(e, p.NumDesignVars()),
	}

	for _, ps := range p.Panels {
		h := refcount.Own(model.NewPanel(e, ps.Name, ps.DV, ps.Thickness, ps.Lower, ps.Upper))
		m.panels = append(m.panels, h)
		m.System.AddDesignVars(h.Get())
	}

	for _, cs := range p.Constraints {
		h := refcount.Own(newConstraint(e, cs))
		m.constraints = append(m.constraints, h)
		m.System.AddConstraints(h.Get())
	}

	// Blocks see the starting design before anything is evaluated.
	m.System.SetDesignVars(m.System.DesignVector())

	e.Logger.Info("problem built",
		"problem", p.Name,
		"design_vars", m.System.NumDesignVars(),
		"constraints", m.System.NumCon(),
		"blocks", len(m.constraints),
	)
	return m
}

func newConstraint(e *env.Env, cs ConstraintSpec) model.Constraint {
	switch cs.Kind {
	case KindLinear:
		rows := make([]model.Row, len(cs.Rows))
		for i, r := range cs.Rows {
			rows[i] = model.Row{Cols: r.Cols, Coeffs: r.Coeffs, Lower: r.Lower, Upper: r.Upper}
		}
		return model.NewLinear(e, cs.Name, rows)
	case KindAdjacency:
		return model.NewAdjacency(e, cs.Name, cs.Vars, cs.MaxStep)
	case KindProduct:
		pairs := make([][2]int, len(cs.Pairs))
		for i, pr := range cs.Pairs {
			pairs[i] = [2]int{pr[0], pr[1]}
		}
		return model.NewProduct(e, cs.Name, pairs, cs.Lower)
	}
	panic("problem: unvalidated constraint kind " + cs.Kind)
}

// Panels returns the panels. The result is borrowed.
func (m *Model) Panels() []*model.Panel {
	out := make([]*model.Panel, len(m.panels))
	for i, h := range m.panels {
		out[i] = h.Get()
	}
	return out
}

// Close releases the System and every owned object.
func (m *Model) Close() {
	m.System.Close()
	for _, h := range m.constraints {
		h.Release()
	}
	for _, h := range m.panels {
		h.Release()
	}
	m.constraints = nil
	m.panels = nil
}
