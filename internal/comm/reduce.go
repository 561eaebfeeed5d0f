package comm

import "github.com/roach88/tacs/internal/scalar"

// OpKind identifies a reduction.
type OpKind int

const (
	OpMin OpKind = iota
	OpMax
)

// String returns the operator name.
func (k OpKind) String() string {
	switch k {
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	default:
		return "?"
	}
}

// ReduceOp is an elementwise reduction over Scalars.
type ReduceOp struct {
	kind OpKind
}

// Kind returns the reduction kind.
func (op ReduceOp) Kind() OpKind {
	return op.kind
}

// Reduce combines in into inout elementwise: inout[i] is replaced by in[i]
// when in[i] wins the comparison of real parts. Ties keep inout[i]. Only
// the first min(len(in), len(inout)) entries are touched.
func (op ReduceOp) Reduce(in, inout []scalar.Scalar) {
	n := min(len(in), len(inout))
	for i := 0; i < n; i++ {
		a, b := scalar.RealPart(in[i]), scalar.RealPart(inout[i])
		switch op.kind {
		case OpMin:
			if a < b {
				inout[i] = in[i]
			}
		case OpMax:
			if a > b {
				inout[i] = in[i]
			}
		}
	}
}
