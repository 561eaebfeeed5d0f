package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/tacs/internal/scalar"
)

// RunInfo describes the system a run evaluates.
type RunInfo struct {
	Problem        string
	ProblemHash    string
	ScalarMode     scalar.Mode
	NumDesignVars  int
	NumConstraints int
}

// BeginRun inserts a run record and returns its generated ID.
// Run IDs are UUIDv7 so they sort by creation time; seq is assigned inside
// the insert and gives the authoritative order.
func (s *Store) BeginRun(ctx context.Context, info RunInfo) (string, error) {
	if info.Problem == "" {
		return "", fmt.Errorf("begin run: problem name is required")
	}
	id := uuid.Must(uuid.NewV7()).String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, problem, problem_hash, scalar_mode, num_design_vars, num_constraints)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?)
	`,
		id,
		info.Problem,
		info.ProblemHash,
		string(info.ScalarMode),
		info.NumDesignVars,
		info.NumConstraints,
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}

	return id, nil
}

// RecordEvaluation stores one evaluation of a run.
//
// The design and constraint vectors must match the sizes declared in
// BeginRun. Recording the same iteration twice is an error.
//
// Note: The run referenced by runID must exist (foreign key constraint).
func (s *Store) RecordEvaluation(ctx context.Context, runID string, iteration int, design, con []scalar.Scalar, flops float64) error {
	run, err := s.Run(ctx, runID)
	if err != nil {
		return fmt.Errorf("record evaluation: %w", err)
	}
	if len(design) != run.NumDesignVars {
		return fmt.Errorf("record evaluation: design vector has %d entries, run declares %d",
			len(design), run.NumDesignVars)
	}
	if len(con) != run.NumConstraints {
		return fmt.Errorf("record evaluation: constraint vector has %d entries, run declares %d",
			len(con), run.NumConstraints)
	}

	designJSON, err := marshalVector(design)
	if err != nil {
		return fmt.Errorf("record evaluation: %w", err)
	}
	conJSON, err := marshalVector(con)
	if err != nil {
		return fmt.Errorf("record evaluation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(run_id, iteration, design, constraints, flops)
		VALUES (?, ?, ?, ?, ?)
	`,
		runID,
		iteration,
		designJSON,
		conJSON,
		flops,
	)
	if err != nil {
		return fmt.Errorf("record evaluation: %w", err)
	}

	return nil
}
