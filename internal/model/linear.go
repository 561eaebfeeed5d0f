package model

import (
	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/scalar"
)

// Row is one linear constraint: Lower <= sum_j Coeffs[j]*x[Cols[j]] <= Upper.
type Row struct {
	Cols   []int
	Coeffs []float64
	Lower  float64
	Upper  float64
}

// Linear is a block of explicit sparse linear rows.
type Linear struct {
	conBase
	rows []Row
	nnz  int
}

// NewLinear creates a Linear block. Cols and Coeffs of each row must have
// equal length.
func NewLinear(e *env.Env, name string, rows []Row) *Linear {
	l := &Linear{conBase: conBase{name: name, env: e}, rows: rows}
	for _, r := range rows {
		l.nnz += len(r.Cols)
	}
	return l
}

// IsLinear reports true.
func (l *Linear) IsLinear() bool { return true }

// NumCon returns the number of rows.
func (l *Linear) NumCon() int { return len(l.rows) }

// ConCSRSize returns the total number of coefficients.
func (l *Linear) ConCSRSize() int { return l.nnz }

// ConRange writes each row's Lower and Upper.
func (l *Linear) ConRange(offset int, lb, ub []scalar.Scalar) int {
	for i, r := range l.rows {
		lb[offset+i] = scalar.FromReal(r.Lower)
		ub[offset+i] = scalar.FromReal(r.Upper)
	}
	return len(l.rows)
}

// AddConCSR registers each row's Cols in order.
func (l *Linear) AddConCSR(offset int, rowp, cols []int) int {
	for i, r := range l.rows {
		start := rowp[offset+i]
		copy(cols[start:], r.Cols)
		rowp[offset+i+1] = start + len(r.Cols)
	}
	return len(l.rows)
}

// EvalCon writes the dot product of each row with x.
func (l *Linear) EvalCon(offset int, con []scalar.Scalar) int {
	for i, r := range l.rows {
		var sum scalar.Scalar
		for j, c := range r.Cols {
			sum += scalar.FromReal(r.Coeffs[j]) * l.at(c)
		}
		con[offset+i] = sum
	}
	l.env.AddFlops(float64(2 * l.nnz))
	return len(l.rows)
}

// EvalConDVSens writes the coefficients, which do not depend on x.
func (l *Linear) EvalConDVSens(offset int, vals []scalar.Scalar, rowp, _ []int) int {
	for i, r := range l.rows {
		start := rowp[offset+i]
		for j, a := range r.Coeffs {
			vals[start+j] = scalar.FromReal(a)
		}
	}
	return len(l.rows)
}
