// Package scalar defines the numeric value type shared by every analysis
// object in the toolkit.
//
// The representation is fixed at build time:
//
//	go build ./...                    // Scalar = float64
//	go build -tags tacs_complex ./... // Scalar = complex128
//
// The complex build carries a perturbation component alongside every value
// so that complex-step derivative estimates flow through unmodified analysis
// code. The two modes never mix inside one process.
//
// The generic helpers (RealOf, ImagOf, MagnitudeOf) accept either
// representation and exist so that code and tests can exercise the complex
// path even in a real build. RealPart, ImagPart and MagnitudeLike are the
// same operations bound to the build's Scalar.
//
// # MagnitudeLike
//
// MagnitudeLike is NOT a modulus. It flips the sign of a value whose real
// part is negative and leaves the perturbation riding along with it:
//
//	MagnitudeLike(-2 + 1e-30i) == 2 - 1e-30i
//
// A true modulus would return 2 + 0i and destroy the derivative.
package scalar
