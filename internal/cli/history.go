package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tacs/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	DB string
}

// HistoryRun is a stored run with its evaluation count.
type HistoryRun struct {
	store.Run
	Evaluations int `json:"evaluations"`
}

// HistoryResult lists the recorded runs of one problem.
type HistoryResult struct {
	Problem string       `json:"problem"`
	Runs    []HistoryRun `json:"runs"`
}

// String renders the text output.
func (r HistoryResult) String() string {
	if len(r.Runs) == 0 {
		return fmt.Sprintf("no runs recorded for %s", r.Problem)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d runs of %s", len(r.Runs), r.Problem)
	for _, run := range r.Runs {
		fmt.Fprintf(&b, "\n  #%d %s %s problem=%s dv=%d con=%d evals=%d",
			run.Seq, run.ID, run.ScalarMode, shortHash(run.ProblemHash),
			run.NumDesignVars, run.NumConstraints, run.Evaluations)
	}
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:           "history <problem-name>",
		Short:         "List recorded runs of a problem",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "history database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *RootOptions, hopts *HistoryOptions, problemName string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := commandContext(cmd)
	details := map[string]string{"db": hopts.DB}

	// Reading history must not create an empty file at a mistyped path.
	if _, err := os.Stat(hopts.DB); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err, details)
	}

	st, err := store.Open(hopts.DB)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err, details)
	}
	defer st.Close()

	runs, err := st.History(ctx, problemName)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err, details)
	}

	result := HistoryResult{Problem: problemName, Runs: []HistoryRun{}}
	for _, run := range runs {
		evals, err := st.Evaluations(ctx, run.ID)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err, details)
		}
		result.Runs = append(result.Runs, HistoryRun{Run: run, Evaluations: len(evals)})
	}

	return formatter.Success(result)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
