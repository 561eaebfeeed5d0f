package testutil

import (
	"math"

	"github.com/roach88/tacs/internal/optim"
	"github.com/roach88/tacs/internal/refcount"
	"github.com/roach88/tacs/internal/scalar"
)

// Block is a constraint block whose local row r touches the columns in
// Cols[r]. Its Jacobian entry for (r, c) is 10*(r+1)+c and its value for
// row r is the sum of x over Cols[r], so both are easy to predict.
type Block struct {
	refcount.Base
	optim.NoDesignVars

	Name   string
	Cols   [][]int
	Linear bool

	// Overrun makes EvalConDVSens write one entry past its last row.
	Overrun bool

	// Skip makes EvalConDVSens leave its first entry unwritten.
	Skip bool

	// OnDestroy, if set, is called from Destroy.
	OnDestroy func(name string)

	x []scalar.Scalar
}

// NewBlock creates a Block. The result is owned.
func NewBlock(name string, cols ...[]int) *Block {
	return &Block{Name: name, Cols: cols, Linear: true}
}

// ObjectName returns Name.
func (b *Block) ObjectName() string { return b.Name }

// Destroy calls OnDestroy.
func (b *Block) Destroy() {
	if b.OnDestroy != nil {
		b.OnDestroy(b.Name)
	}
}

// SetDesignVars keeps a copy of x for EvalCon.
func (b *Block) SetDesignVars(x []scalar.Scalar) {
	b.x = append(b.x[:0], x...)
}

// IsLinear returns Linear.
func (b *Block) IsLinear() bool { return b.Linear }

// NumCon returns len(Cols).
func (b *Block) NumCon() int { return len(b.Cols) }

// ConCSRSize returns the total length of Cols.
func (b *Block) ConCSRSize() int {
	n := 0
	for _, c := range b.Cols {
		n += len(c)
	}
	return n
}

// ConRange bounds row r to [-(r+1), r+1].
func (b *Block) ConRange(offset int, lb, ub []scalar.Scalar) int {
	for r := range b.Cols {
		lb[offset+r] = scalar.FromReal(float64(-r - 1))
		ub[offset+r] = scalar.FromReal(float64(r + 1))
	}
	return len(b.Cols)
}

// AddConCSR registers Cols row by row.
func (b *Block) AddConCSR(offset int, rowp, cols []int) int {
	for r, row := range b.Cols {
		start := rowp[offset+r]
		copy(cols[start:], row)
		rowp[offset+r+1] = start + len(row)
	}
	return len(b.Cols)
}

// EvalCon writes the sum of x over each row's columns.
func (b *Block) EvalCon(offset int, con []scalar.Scalar) int {
	for r, row := range b.Cols {
		var sum scalar.Scalar
		for _, c := range row {
			if c < len(b.x) {
				sum += b.x[c]
			}
		}
		con[offset+r] = sum
	}
	return len(b.Cols)
}

// EvalConDVSens writes 10*(r+1)+c, then applies Skip and Overrun.
func (b *Block) EvalConDVSens(offset int, vals []scalar.Scalar, rowp, cols []int) int {
	for r := range b.Cols {
		for k := rowp[offset+r]; k < rowp[offset+r+1]; k++ {
			vals[k] = scalar.FromReal(float64(10*(r+1) + cols[k]))
		}
	}
	if b.Skip && len(b.Cols) > 0 {
		vals[rowp[offset]] = scalar.FromReal(math.NaN())
	}
	if end := rowp[offset+len(b.Cols)]; b.Overrun && end < len(vals) {
		vals[end] = 1
	}
	return len(b.Cols)
}
