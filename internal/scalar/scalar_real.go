//go:build !tacs_complex

package scalar

// Scalar is the library-wide numeric type for a real build.
type Scalar = float64

// IsComplex is false in a real build.
const IsComplex = false

// FromReal converts a real value to a Scalar.
func FromReal(f float64) Scalar { return f }

// New builds a Scalar; the perturbation is dropped in a real build.
func New(re, _ float64) Scalar { return re }
