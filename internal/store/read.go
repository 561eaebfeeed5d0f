package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/tacs/internal/scalar"
)

// Run is a stored run record.
type Run struct {
	ID             string `json:"id"`
	Seq            int64  `json:"seq"`
	Problem        string `json:"problem"`
	ProblemHash    string `json:"problem_hash"`
	ScalarMode     string `json:"scalar_mode"`
	NumDesignVars  int    `json:"num_design_vars"`
	NumConstraints int    `json:"num_constraints"`
}

// Evaluation is one stored iteration of a run. Vectors hold real parts.
type Evaluation struct {
	Iteration   int       `json:"iteration"`
	Design      []float64 `json:"design"`
	Constraints []float64 `json:"constraints"`
	Flops       float64   `json:"flops"`
}

// Run retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, problem, problem_hash, scalar_mode, num_design_vars, num_constraints
		FROM runs
		WHERE id = ?
	`, id)

	var r Run
	if err := row.Scan(&r.ID, &r.Seq, &r.Problem, &r.ProblemHash, &r.ScalarMode, &r.NumDesignVars, &r.NumConstraints); err != nil {
		return Run{}, err
	}
	return r, nil
}

// History returns all runs of a problem, oldest first.
func (s *Store) History(ctx context.Context, problem string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, problem, problem_hash, scalar_mode, num_design_vars, num_constraints
		FROM runs
		WHERE problem = ?
		ORDER BY seq ASC
	`, problem)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seq, &r.Problem, &r.ProblemHash, &r.ScalarMode, &r.NumDesignVars, &r.NumConstraints); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Evaluations returns every evaluation of a run ordered by iteration.
func (s *Store) Evaluations(ctx context.Context, runID string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT iteration, design, constraints, flops
		FROM evaluations
		WHERE run_id = ?
		ORDER BY iteration ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var evals []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	return evals, nil
}

// LastDesign returns the design vector of the highest recorded iteration,
// converted back to build Scalars. Returns sql.ErrNoRows if the run has no
// evaluations.
func (s *Store) LastDesign(ctx context.Context, runID string) ([]scalar.Scalar, error) {
	var designJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT design
		FROM evaluations
		WHERE run_id = ?
		ORDER BY iteration DESC
		LIMIT 1
	`, runID).Scan(&designJSON)
	if err != nil {
		return nil, err
	}

	re, err := unmarshalVector(designJSON)
	if err != nil {
		return nil, err
	}
	return scalar.FromReals(re), nil
}

// scanEvaluation scans a row into an Evaluation struct.
func scanEvaluation(rows *sql.Rows) (Evaluation, error) {
	var ev Evaluation
	var designJSON, conJSON string

	if err := rows.Scan(&ev.Iteration, &designJSON, &conJSON, &ev.Flops); err != nil {
		return Evaluation{}, fmt.Errorf("scan evaluation: %w", err)
	}

	design, err := unmarshalVector(designJSON)
	if err != nil {
		return Evaluation{}, err
	}
	ev.Design = design

	con, err := unmarshalVector(conJSON)
	if err != nil {
		return Evaluation{}, err
	}
	ev.Constraints = con

	return ev, nil
}
