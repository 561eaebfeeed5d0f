package model

import (
	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/refcount"
	"github.com/roach88/tacs/internal/scalar"
)

// Panel is a shell region whose thickness is one design variable.
type Panel struct {
	refcount.Base

	Name  string
	DVNum int

	Thickness scalar.Scalar
	Lower     float64
	Upper     float64

	env *env.Env
}

// NewPanel creates a Panel bound to design variable dvNum. A negative dvNum
// makes the thickness fixed.
func NewPanel(e *env.Env, name string, dvNum int, thickness, lower, upper float64) *Panel {
	return &Panel{
		Name:      name,
		DVNum:     dvNum,
		Thickness: scalar.FromReal(thickness),
		Lower:     lower,
		Upper:     upper,
		env:       e,
	}
}

// ObjectName returns "Panel(<name>)".
func (p *Panel) ObjectName() string {
	return "Panel(" + p.Name + ")"
}

func (p *Panel) owns(n int) bool {
	return p.DVNum >= 0 && p.DVNum < n
}

// SetDesignVars takes the thickness from x[DVNum].
func (p *Panel) SetDesignVars(x []scalar.Scalar) {
	if p.owns(len(x)) {
		p.Thickness = x[p.DVNum]
	}
}

// GetDesignVars writes the thickness to x[DVNum].
func (p *Panel) GetDesignVars(x []scalar.Scalar) {
	if p.owns(len(x)) {
		x[p.DVNum] = p.Thickness
	}
}

// GetDesignVarRange writes the thickness bounds.
func (p *Panel) GetDesignVarRange(lb, ub []scalar.Scalar) {
	if p.owns(len(lb)) {
		lb[p.DVNum] = scalar.FromReal(p.Lower)
	}
	if p.owns(len(ub)) {
		ub[p.DVNum] = scalar.FromReal(p.Upper)
	}
}

// Destroy implements refcount.Destroyer.
func (p *Panel) Destroy() {
	p.env.Logger.Debug("panel destroyed", "panel", p.Name, "dv", p.DVNum)
}
