// Package flops counts floating-point operations for performance accounting.
//
// Counting is switched on with the tacs_flops build tag. Without it Enabled
// is a false constant and Counter.Add compiles away.
//
// A Counter is not synchronized. It belongs to one execution context (see
// env.Env) and must not be mutated from several goroutines at once. It is
// a diagnostic and must never drive control flow.
package flops
