// Package store provides SQLite-backed history of optimization runs.
//
// A run records the problem it was built from and the shape of its design
// vector and constraint system. Each evaluation records the design vector,
// the constraint values and the flop count at one iteration.
//
// Vectors are stored as JSON arrays of real parts; the perturbation of a
// complex-step build is never persisted.
//
// # Ordering
//
// Evaluations are ordered by iteration number, never by wall time, so
// reading a run back gives the same sequence it was written in.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
