package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tacs/internal/optim"
	"github.com/roach88/tacs/internal/scalar"
	"github.com/roach88/tacs/internal/store"
)

// AssembleOptions holds flags for the assemble command.
type AssembleOptions struct {
	DB      string
	Threads int
}

// SparseMatrix is the JSON form of the constraint Jacobian.
type SparseMatrix struct {
	NumRows int       `json:"num_rows"`
	NumCols int       `json:"num_cols"`
	RowPtr  []int     `json:"rowp"`
	Cols    []int     `json:"cols"`
	Values  []float64 `json:"values"`
}

// AssembleResult is one evaluation of a problem's constraint system.
type AssembleResult struct {
	Problem       string            `json:"problem"`
	ProblemHash   string            `json:"problem_hash"`
	Scalar        string            `json:"scalar"`
	Threads       int               `json:"threads"`
	NumDesignVars int               `json:"num_design_vars"`
	NumCon        int               `json:"num_constraints"`
	Linear        bool              `json:"linear"`
	Blocks        []optim.BlockInfo `json:"blocks"`
	Design        []float64         `json:"design"`
	Lower         []float64         `json:"lower"`
	Constraints   []float64         `json:"constraints"`
	Upper         []float64         `json:"upper"`
	MinMargin     float64           `json:"min_margin"`
	MaxViolation  float64           `json:"max_violation"`
	Flops         float64           `json:"flops"`
	Jacobian      SparseMatrix      `json:"jacobian"`
	RunID         string            `json:"run_id,omitempty"`

	design []scalar.Scalar
	con    []scalar.Scalar
	jac    *optim.CSR
}

// String renders the text output.
func (r AssembleResult) String() string {
	var b strings.Builder
	linear := "nonlinear"
	if r.Linear {
		linear = "linear"
	}
	fmt.Fprintf(&b, "problem %s (%s, %d threads)\n", r.Problem, r.Scalar, r.Threads)
	fmt.Fprintf(&b, "design variables: %d\n", r.NumDesignVars)
	fmt.Fprintf(&b, "constraints: %d in %d blocks (%s)\n", r.NumCon, len(r.Blocks), linear)
	for _, blk := range r.Blocks {
		fmt.Fprintf(&b, "  %-16s offset=%d rows=%d nnz=%d\n", blk.Name, blk.Offset, blk.Rows, blk.NNZ)
	}
	for i, c := range r.Constraints {
		fmt.Fprintf(&b, "  c[%d] = %-12g in [%g, %g]\n", i, c, r.Lower[i], r.Upper[i])
	}
	fmt.Fprintf(&b, "min margin: %g\n", r.MinMargin)
	fmt.Fprintf(&b, "max violation: %g\n", r.MaxViolation)
	if r.RunID != "" {
		fmt.Fprintf(&b, "run: %s\n", r.RunID)
	}
	if r.jac != nil {
		b.WriteString(strings.TrimRight(r.jac.String(), "\n"))
	}
	return b.String()
}

// NewAssembleCommand creates the assemble command.
func NewAssembleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AssembleOptions{}

	cmd := &cobra.Command{
		Use:   "assemble <problem>",
		Short: "Evaluate constraints and assemble the Jacobian",
		Long: `Load a problem (.yaml or .cue), build its constraint system and evaluate
it at the starting design: constraint values, bounds and the sparse
constraint Jacobian.

With --db the evaluation is appended to a SQLite history database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "record the evaluation in this database")
	cmd.Flags().IntVar(&opts.Threads, "threads", 0, "worker threads (overrides the problem file)")

	return cmd
}

func runAssemble(opts *RootOptions, aopts *AssembleOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sess, err := openSession(formatter, path, aopts.Threads)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoad, err, map[string]string{"file": path})
	}
	defer sess.Close()

	result, err := assemble(sess)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeEval, err, nil)
	}
	formatter.VerboseLog("assembled %d x %d Jacobian with %d entries",
		result.NumCon, result.NumDesignVars, result.jac.NNZ())

	if aopts.DB != "" {
		runID, err := recordRun(commandContext(cmd), aopts.DB, result)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err, map[string]string{"db": aopts.DB})
		}
		result.RunID = runID
		formatter.VerboseLog("recorded run %s in %s", runID, aopts.DB)
	}

	return formatter.Success(result)
}

// assemble evaluates the session's system at its current design.
func assemble(sess *session) (*AssembleResult, error) {
	sys := sess.model.System

	x := sys.DesignVector()
	con := make([]scalar.Scalar, sys.NumCon())
	lb := make([]scalar.Scalar, sys.NumCon())
	ub := make([]scalar.Scalar, sys.NumCon())

	if err := sys.ConRange(lb, ub); err != nil {
		return nil, err
	}
	if err := sys.EvalCon(con); err != nil {
		return nil, err
	}
	jac, err := sys.Jacobian()
	if err != nil {
		return nil, err
	}

	margin, violation := constraintMargins(sess, con, lb, ub)

	hash, err := sess.problem.Hash()
	if err != nil {
		return nil, err
	}

	return &AssembleResult{
		Problem:       sess.problem.Name,
		ProblemHash:   hash,
		Scalar:        string(scalar.BuildMode()),
		Threads:       sess.env.Threads().NumThreads(),
		NumDesignVars: sys.NumDesignVars(),
		NumCon:        sys.NumCon(),
		Linear:        sys.IsLinear(),
		Blocks:        sys.Blocks(),
		Design:        scalar.RealParts(x),
		Lower:         scalar.RealParts(lb),
		Constraints:   scalar.RealParts(con),
		Upper:         scalar.RealParts(ub),
		MinMargin:     margin,
		MaxViolation:  violation,
		Flops:         sess.env.Flops.Total(),
		Jacobian: SparseMatrix{
			NumRows: jac.NumRows,
			NumCols: jac.NumCols,
			RowPtr:  jac.RowPtr,
			Cols:    jac.Cols,
			Values:  scalar.RealParts(jac.Values),
		},
		design: x,
		con:    con,
		jac:    jac,
	}, nil
}

// constraintMargins folds per-row slack through the session's reductions.
// The margin of a row is its distance to the nearer bound, negative when
// violated. With no constraints the margin is optim.Infinity.
func constraintMargins(sess *session, con, lb, ub []scalar.Scalar) (margin, violation float64) {
	minAcc := []scalar.Scalar{scalar.FromReal(optim.Infinity)}
	maxAcc := []scalar.Scalar{scalar.FromReal(0)}

	for i := range con {
		c := scalar.RealPart(con[i])
		m := min(c-scalar.RealPart(lb[i]), scalar.RealPart(ub[i])-c)
		sess.comm.Min.Reduce([]scalar.Scalar{scalar.FromReal(m)}, minAcc)
		sess.comm.Max.Reduce([]scalar.Scalar{scalar.FromReal(-m)}, maxAcc)
	}
	return scalar.RealPart(minAcc[0]), scalar.RealPart(maxAcc[0])
}

// recordRun appends the result to the history database at path.
func recordRun(ctx context.Context, path string, r *AssembleResult) (string, error) {
	st, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer st.Close()

	runID, err := st.BeginRun(ctx, store.RunInfo{
		Problem:        r.Problem,
		ProblemHash:    r.ProblemHash,
		ScalarMode:     scalar.BuildMode(),
		NumDesignVars:  r.NumDesignVars,
		NumConstraints: r.NumCon,
	})
	if err != nil {
		return "", err
	}
	if err := st.RecordEvaluation(ctx, runID, 0, r.design, r.con, r.Flops); err != nil {
		return "", err
	}
	return runID, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
