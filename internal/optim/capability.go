package optim

import "github.com/roach88/tacs/internal/scalar"

// Infinity is the bound value meaning "unbounded".
const Infinity = 1e20

// DesignVars is implemented by objects that own or consume design
// variables. The slices span the whole design vector; an implementer reads
// and writes only the entries it owns and never indexes past len.
type DesignVars interface {
	// SetDesignVars adopts x as the current design.
	SetDesignVars(x []scalar.Scalar)

	// GetDesignVars writes the owned variables into x.
	GetDesignVars(x []scalar.Scalar)

	// GetDesignVarRange writes bounds for the owned variables. Entries for
	// other variables are left untouched.
	GetDesignVarRange(lb, ub []scalar.Scalar)
}

// SparseConstraints is implemented by objects contributing a contiguous
// block of constraint rows. Every method that takes offset addresses global
// row offset+i for local row i, and returns the number of rows it wrote.
type SparseConstraints interface {
	DesignVars

	// IsLinear reports whether the rows are linear in the design variables.
	IsLinear() bool

	// NumCon returns the number of rows in the block.
	NumCon() int

	// ConCSRSize returns the number of structural nonzeros in the block.
	ConCSRSize() int

	// ConRange writes row bounds into lb and ub.
	ConRange(offset int, lb, ub []scalar.Scalar) int

	// AddConCSR registers the block's sparsity. For each local row i it sets
	// rowp[offset+i+1] and fills cols[rowp[offset+i]:rowp[offset+i+1]].
	// rowp[offset] is already set by the caller.
	AddConCSR(offset int, rowp, cols []int) int

	// EvalCon writes the constraint values.
	EvalCon(offset int, con []scalar.Scalar) int

	// EvalConDVSens writes the Jacobian values for the block's rows into
	// vals, in the positions given by the pattern from AddConCSR.
	EvalConDVSens(offset int, vals []scalar.Scalar, rowp, cols []int) int
}

// NoDesignVars is the default DesignVars. Embed it to opt in to the
// capability while overriding only some methods.
type NoDesignVars struct{}

// SetDesignVars ignores x.
func (NoDesignVars) SetDesignVars([]scalar.Scalar) {}

// GetDesignVars leaves x unchanged.
func (NoDesignVars) GetDesignVars([]scalar.Scalar) {}

// GetDesignVarRange leaves the bounds unchanged.
func (NoDesignVars) GetDesignVarRange(_, _ []scalar.Scalar) {}

// NoSparseConstraints is the default SparseConstraints: an empty block.
type NoSparseConstraints struct {
	NoDesignVars
}

// IsLinear reports false.
func (NoSparseConstraints) IsLinear() bool { return false }

// NumCon returns 0.
func (NoSparseConstraints) NumCon() int { return 0 }

// ConCSRSize returns 0.
func (NoSparseConstraints) ConCSRSize() int { return 0 }

// ConRange writes nothing.
func (NoSparseConstraints) ConRange(int, []scalar.Scalar, []scalar.Scalar) int { return 0 }

// AddConCSR registers no entries.
func (NoSparseConstraints) AddConCSR(int, []int, []int) int { return 0 }

// EvalCon writes nothing.
func (NoSparseConstraints) EvalCon(int, []scalar.Scalar) int { return 0 }

// EvalConDVSens writes nothing.
func (NoSparseConstraints) EvalConDVSens(int, []scalar.Scalar, []int, []int) int { return 0 }

// HasDesignVars reports whether obj implements DesignVars.
func HasDesignVars(obj any) bool {
	_, ok := obj.(DesignVars)
	return ok
}

// HasConstraints reports whether obj implements SparseConstraints.
func HasConstraints(obj any) bool {
	_, ok := obj.(SparseConstraints)
	return ok
}

// DesignVarsOf returns obj's DesignVars, or the no-op default.
func DesignVarsOf(obj any) DesignVars {
	if d, ok := obj.(DesignVars); ok {
		return d
	}
	return NoDesignVars{}
}

// ConstraintsOf returns obj's SparseConstraints, or an empty block.
func ConstraintsOf(obj any) SparseConstraints {
	if c, ok := obj.(SparseConstraints); ok {
		return c
	}
	return NoSparseConstraints{}
}

// nameOf returns a diagnostic name for obj.
func nameOf(obj any) string {
	if n, ok := obj.(interface{ ObjectName() string }); ok {
		return n.ObjectName()
	}
	return "anonymous"
}
