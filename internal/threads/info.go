package threads

import "github.com/roach88/tacs/internal/refcount"

// MaxThreads is the upper bound on the worker count.
const MaxThreads = 16

// Info stores a worker-thread count in [1, MaxThreads].
type Info struct {
	refcount.Base
	numThreads int
}

// NewInfo creates an Info with n clipped into range. The result is owned.
func NewInfo(n int) *Info {
	t := &Info{}
	t.SetNumThreads(n)
	return t
}

// ObjectName implements refcount.Object.
func (t *Info) ObjectName() string {
	return "ThreadInfo"
}

// SetNumThreads stores n clipped to [1, MaxThreads] and reports whether
// clipping was needed. Out-of-range values are caller errors.
func (t *Info) SetNumThreads(n int) (clipped bool) {
	c := Clip(n)
	t.numThreads = c
	return c != n
}

// NumThreads returns the stored count. A zero Info reports 1.
func (t *Info) NumThreads() int {
	if t.numThreads < 1 {
		return 1
	}
	return t.numThreads
}

// Clip returns n bounded to [1, MaxThreads].
func Clip(n int) int {
	return min(max(n, 1), MaxThreads)
}
