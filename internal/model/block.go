package model

import (
	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/optim"
	"github.com/roach88/tacs/internal/refcount"
	"github.com/roach88/tacs/internal/scalar"
)

// Constraint is a reference-counted constraint block.
type Constraint interface {
	refcount.Object
	optim.SparseConstraints
}

// conBase holds what every constraint block shares: its name, the design
// vector it was last handed, and the execution context.
type conBase struct {
	refcount.Base
	optim.NoDesignVars

	name string
	x    []scalar.Scalar
	env  *env.Env
}

// ObjectName returns the block name.
func (c *conBase) ObjectName() string {
	return c.name
}

// SetDesignVars keeps a copy of x.
func (c *conBase) SetDesignVars(x []scalar.Scalar) {
	c.x = append(c.x[:0], x...)
}

// at returns x[i], or zero when the block was never handed that entry.
func (c *conBase) at(i int) scalar.Scalar {
	if i >= 0 && i < len(c.x) {
		return c.x[i]
	}
	return 0
}

// Destroy implements refcount.Destroyer.
func (c *conBase) Destroy() {
	c.env.Logger.Debug("constraint destroyed", "block", c.name)
}
