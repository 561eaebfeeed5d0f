package optim

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/tacs/internal/scalar"
)

// CSR is a compressed-row matrix. Row i occupies Cols[RowPtr[i]:RowPtr[i+1]]
// and the matching slice of Values. Values is nil for a pattern-only matrix.
type CSR struct {
	NumRows int
	NumCols int
	RowPtr  []int
	Cols    []int
	Values  []scalar.Scalar
}

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int {
	if len(m.RowPtr) == 0 {
		return 0
	}
	return m.RowPtr[m.NumRows]
}

// Row returns the column indices and values of row i. vals is nil for a
// pattern-only matrix. Both slices alias the matrix.
func (m *CSR) Row(i int) (cols []int, vals []scalar.Scalar) {
	lo, hi := m.RowPtr[i], m.RowPtr[i+1]
	cols = m.Cols[lo:hi]
	if m.Values != nil {
		vals = m.Values[lo:hi]
	}
	return cols, vals
}

// SamePattern reports whether m and o have identical structure.
func (m *CSR) SamePattern(o *CSR) bool {
	return m.NumRows == o.NumRows &&
		m.NumCols == o.NumCols &&
		slices.Equal(m.RowPtr, o.RowPtr) &&
		slices.Equal(m.Cols, o.Cols)
}

// Clone returns a deep copy.
func (m *CSR) Clone() *CSR {
	return &CSR{
		NumRows: m.NumRows,
		NumCols: m.NumCols,
		RowPtr:  slices.Clone(m.RowPtr),
		Cols:    slices.Clone(m.Cols),
		Values:  slices.Clone(m.Values),
	}
}

// rowOf returns the row holding entry k.
func (m *CSR) rowOf(k int) int {
	i, _ := slices.BinarySearchFunc(m.RowPtr, k, func(p, target int) int {
		if p <= target {
			return -1
		}
		return 1
	})
	return i - 1
}

// String renders one line per row as "col=value" pairs using real parts.
func (m *CSR) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "csr %dx%d nnz=%d\n", m.NumRows, m.NumCols, m.NNZ())
	for i := 0; i < m.NumRows; i++ {
		fmt.Fprintf(&b, "row %d:", i)
		cols, vals := m.Row(i)
		for k, c := range cols {
			if vals != nil {
				fmt.Fprintf(&b, " %d=%s", c, strconv.FormatFloat(scalar.RealPart(vals[k]), 'g', -1, 64))
			} else {
				fmt.Fprintf(&b, " %d", c)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
