// Package threads holds the worker-thread count used by parallel regions.
//
// An Info is owned by the orchestration layer, which alone decides how many
// workers a parallel region uses. This package does no threading itself.
package threads
