package model

import (
	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/scalar"
)

// Adjacency bounds the step between consecutive variables of a chain:
//
//	-MaxStep <= x[v_{k+1}] - x[v_k] <= MaxStep
//
// It is the usual thickness-taper constraint between neighbouring panels.
type Adjacency struct {
	conBase
	vars    []int
	maxStep float64
}

// NewAdjacency creates an Adjacency block over the chain vars. Consecutive
// entries must differ.
func NewAdjacency(e *env.Env, name string, vars []int, maxStep float64) *Adjacency {
	return &Adjacency{
		conBase: conBase{name: name, env: e},
		vars:    vars,
		maxStep: maxStep,
	}
}

// IsLinear reports true.
func (a *Adjacency) IsLinear() bool { return true }

// NumCon is one row per consecutive pair in the chain.
func (a *Adjacency) NumCon() int {
	return max(len(a.vars)-1, 0)
}

// ConCSRSize is two entries per row.
func (a *Adjacency) ConCSRSize() int { return 2 * a.NumCon() }

// ConRange bounds each step to [-MaxStep, MaxStep].
func (a *Adjacency) ConRange(offset int, lb, ub []scalar.Scalar) int {
	n := a.NumCon()
	for k := 0; k < n; k++ {
		lb[offset+k] = scalar.FromReal(-a.maxStep)
		ub[offset+k] = scalar.FromReal(a.maxStep)
	}
	return n
}

// AddConCSR registers the two chain variables of each row.
func (a *Adjacency) AddConCSR(offset int, rowp, cols []int) int {
	n := a.NumCon()
	for k := 0; k < n; k++ {
		start := rowp[offset+k]
		cols[start] = a.vars[k]
		cols[start+1] = a.vars[k+1]
		rowp[offset+k+1] = start + 2
	}
	return n
}

// EvalCon writes each step x[v_{k+1}] - x[v_k].
func (a *Adjacency) EvalCon(offset int, con []scalar.Scalar) int {
	n := a.NumCon()
	for k := 0; k < n; k++ {
		con[offset+k] = a.at(a.vars[k+1]) - a.at(a.vars[k])
	}
	a.env.AddFlops(float64(n))
	return n
}

// EvalConDVSens writes -1 and 1 for every row.
func (a *Adjacency) EvalConDVSens(offset int, vals []scalar.Scalar, rowp, _ []int) int {
	n := a.NumCon()
	for k := 0; k < n; k++ {
		start := rowp[offset+k]
		vals[start] = -1
		vals[start+1] = 1
	}
	return n
}
