//go:build tacs_complex

package scalar

// Scalar is the library-wide numeric type for a complex-step build.
type Scalar = complex128

// IsComplex is true in a complex-step build.
const IsComplex = true

// FromReal converts a real value to a Scalar with zero perturbation.
func FromReal(f float64) Scalar { return complex(f, 0) }

// New builds a Scalar from its real and perturbation components.
func New(re, im float64) Scalar { return complex(re, im) }
