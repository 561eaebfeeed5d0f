package scalar

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealOf_RealIsIdentity(t *testing.T) {
	for _, v := range []float64{0, 1.5, -2.25, math.MaxFloat64, -math.SmallestNonzeroFloat64} {
		assert.Equal(t, v, RealOf(v))
	}
}

func TestRealOf_ComplexExtractsRealComponent(t *testing.T) {
	assert.Equal(t, 3.0, RealOf(complex(3, 7)))
	assert.Equal(t, -4.5, RealOf(complex(-4.5, 1e-30)))
}

func TestImagOf(t *testing.T) {
	assert.Equal(t, 0.0, ImagOf(12.0))
	assert.Equal(t, 1e-30, ImagOf(complex(-1, 1e-30)))
}

func TestMagnitudeOf_Real(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2, 2},
		{0, 0},
		{-3.5, 3.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MagnitudeOf(tt.in))
	}
}

func TestMagnitudeOf_ComplexPreservesPerturbation(t *testing.T) {
	// Non-negative real part: unchanged, perturbation included.
	v := complex(2, 1e-30)
	assert.Equal(t, v, MagnitudeOf(v))

	// Negative real part: the whole value is negated.
	v = complex(-2, 1e-30)
	got := MagnitudeOf(v)
	assert.Equal(t, complex(2, -1e-30), got)
	assert.NotZero(t, imag(got), "perturbation must not be zeroed")

	// A modulus would fold the perturbation into the real part.
	assert.NotEqual(t, complex(cmplx.Abs(v), 0), got)
}

func TestMagnitudeOf_ZeroRealPartKeepsSign(t *testing.T) {
	v := complex(0, -1e-30)
	assert.Equal(t, v, MagnitudeOf(v))
}

func TestComplexStep_ThroughMagnitude(t *testing.T) {
	abs := func(z complex128) complex128 { return MagnitudeOf(z) }

	// d|x|/dx is -1 left of the origin and +1 right of it.
	assert.InDelta(t, -1.0, ComplexStep(abs, -2, 0), 1e-15)
	assert.InDelta(t, 1.0, ComplexStep(abs, 3, 0), 1e-15)
}

func TestComplexStep_Polynomial(t *testing.T) {
	f := func(z complex128) complex128 { return z*z*z - 2*z }
	x := 1.7
	want := 3*x*x - 2
	assert.InDelta(t, want, ComplexStep(f, x, 1e-20), 1e-12)
}

func TestBuildScalarHelpers(t *testing.T) {
	v := New(-1.25, 0.5)
	assert.Equal(t, -1.25, RealPart(v))
	if IsComplex {
		assert.Equal(t, 0.5, ImagPart(v))
		assert.Equal(t, ModeComplex, BuildMode())
	} else {
		assert.Equal(t, 0.0, ImagPart(v))
		assert.Equal(t, ModeReal, BuildMode())
	}
	assert.Equal(t, 1.25, RealPart(MagnitudeLike(v)))
	assert.Equal(t, -ImagPart(v), ImagPart(MagnitudeLike(v)))
}

func TestRealPartsRoundTrip(t *testing.T) {
	in := []float64{1, -2, 3.5}
	assert.Equal(t, in, RealParts(FromReals(in)))
	assert.Empty(t, RealParts(nil))
}
