package model

import (
	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/optim"
	"github.com/roach88/tacs/internal/scalar"
)

// Product requires x[a]*x[b] >= Lower for each pair (a, b). It is the
// simplest nonlinear block: a bending-stiffness floor on stacked plies.
type Product struct {
	conBase
	pairs [][2]int
	lower float64
}

// NewProduct creates a Product block.
func NewProduct(e *env.Env, name string, pairs [][2]int, lower float64) *Product {
	return &Product{
		conBase: conBase{name: name, env: e},
		pairs:   pairs,
		lower:   lower,
	}
}

func product[T scalar.Number](a, b T) T {
	return a * b
}

// IsLinear reports false.
func (p *Product) IsLinear() bool { return false }

// NumCon returns one row per pair.
func (p *Product) NumCon() int { return len(p.pairs) }

// ConCSRSize counts one entry for a squared variable and two otherwise.
func (p *Product) ConCSRSize() int {
	n := 0
	for _, pr := range p.pairs {
		n += rowWidth(pr)
	}
	return n
}

func rowWidth(pr [2]int) int {
	if pr[0] == pr[1] {
		return 1
	}
	return 2
}

// ConRange bounds each row below by the floor and leaves it unbounded above.
func (p *Product) ConRange(offset int, lb, ub []scalar.Scalar) int {
	for i := range p.pairs {
		lb[offset+i] = scalar.FromReal(p.lower)
		ub[offset+i] = scalar.FromReal(optim.Infinity)
	}
	return len(p.pairs)
}

// AddConCSR registers a, then b when it differs from a.
func (p *Product) AddConCSR(offset int, rowp, cols []int) int {
	for i, pr := range p.pairs {
		start := rowp[offset+i]
		cols[start] = pr[0]
		if rowWidth(pr) == 2 {
			cols[start+1] = pr[1]
		}
		rowp[offset+i+1] = start + rowWidth(pr)
	}
	return len(p.pairs)
}

// EvalCon writes x[a]*x[b] for each pair.
func (p *Product) EvalCon(offset int, con []scalar.Scalar) int {
	for i, pr := range p.pairs {
		con[offset+i] = product(p.at(pr[0]), p.at(pr[1]))
	}
	p.env.AddFlops(float64(len(p.pairs)))
	return len(p.pairs)
}

// EvalConDVSens writes x[b] and x[a], or 2*x[a] for a squared variable.
func (p *Product) EvalConDVSens(offset int, vals []scalar.Scalar, rowp, _ []int) int {
	for i, pr := range p.pairs {
		start := rowp[offset+i]
		if rowWidth(pr) == 1 {
			vals[start] = 2 * p.at(pr[0])
			continue
		}
		vals[start] = p.at(pr[1])
		vals[start+1] = p.at(pr[0])
	}
	p.env.AddFlops(float64(len(p.pairs)))
	return len(p.pairs)
}
