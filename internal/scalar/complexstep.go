package scalar

// DefaultStep is the perturbation size used by ComplexStep when h is zero.
// Complex-step has no subtractive cancellation, so the step can sit far
// below machine epsilon.
const DefaultStep = 1e-30

// ComplexStep estimates df/dx at x by evaluating f at x + ih and reading
// the perturbation component of the result.
func ComplexStep(f func(complex128) complex128, x, h float64) float64 {
	if h == 0 {
		h = DefaultStep
	}
	return imag(f(complex(x, h))) / h
}
