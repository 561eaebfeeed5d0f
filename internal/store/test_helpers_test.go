package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/tacs/internal/scalar"
)

// createTestStore creates a new store in a temporary directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun begins a run with the given vector sizes.
func createTestRun(t *testing.T, s *Store, problem string, numDV, numCon int) string {
	t.Helper()
	id, err := s.BeginRun(context.Background(), RunInfo{
		Problem:        problem,
		ProblemHash:    "hash-" + problem,
		ScalarMode:     scalar.BuildMode(),
		NumDesignVars:  numDV,
		NumConstraints: numCon,
	})
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	return id
}

// pragmaValue returns the current value of a PRAGMA.
func pragmaValue(t *testing.T, s *Store, name string) string {
	t.Helper()
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		t.Fatalf("PRAGMA %s failed: %v", name, err)
	}
	return value
}
