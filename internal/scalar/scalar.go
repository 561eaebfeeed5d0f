package scalar

// Number is satisfied by both scalar representations.
type Number interface {
	float64 | complex128
}

// Mode names the scalar representation selected at build time.
type Mode string

const (
	ModeReal    Mode = "real"
	ModeComplex Mode = "complex"
)

// BuildMode reports which representation this binary was built with.
func BuildMode() Mode {
	if IsComplex {
		return ModeComplex
	}
	return ModeReal
}

// RealOf returns the real component of v. It is the identity for float64.
func RealOf[T Number](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return x
	case complex128:
		return real(x)
	}
	panic("unreachable")
}

// ImagOf returns the perturbation component of v; always 0 for float64.
func ImagOf[T Number](v T) float64 {
	if x, ok := any(v).(complex128); ok {
		return imag(x)
	}
	return 0
}

// MagnitudeOf returns v when its real part is non-negative and -v otherwise.
func MagnitudeOf[T Number](v T) T {
	if RealOf(v) < 0 {
		return -v
	}
	return v
}

// RealPart returns the real component of a build Scalar.
func RealPart(v Scalar) float64 { return RealOf(v) }

// ImagPart returns the perturbation component of a build Scalar.
func ImagPart(v Scalar) float64 { return ImagOf(v) }

// MagnitudeLike is the sign-correcting absolute value used throughout the
// analysis code. See the package documentation.
func MagnitudeLike(v Scalar) Scalar { return MagnitudeOf(v) }

// RealParts copies the real components of v into a new slice.
func RealParts(v []Scalar) []float64 {
	out := make([]float64, len(v))
	for i, s := range v {
		out[i] = RealOf(s)
	}
	return out
}

// FromReals converts a slice of real values to build Scalars.
func FromReals(v []float64) []Scalar {
	out := make([]Scalar, len(v))
	for i, f := range v {
		out[i] = FromReal(f)
	}
	return out
}
