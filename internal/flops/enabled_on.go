//go:build tacs_flops

package flops

// Enabled reports whether this build counts operations.
const Enabled = true
