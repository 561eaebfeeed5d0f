// Package testutil provides deterministic fixtures for exercising the
// capability and ownership contracts in tests.
package testutil
