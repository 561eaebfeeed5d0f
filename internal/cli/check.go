package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tacs/internal/optim"
)

// CheckResult reports a passing pattern check.
type CheckResult struct {
	Problem string            `json:"problem"`
	Blocks  []optim.BlockInfo `json:"blocks"`
	NNZ     int               `json:"nnz"`
}

// String renders the text output.
func (r CheckResult) String() string {
	return fmt.Sprintf("%s: pattern ok (%d blocks, %d entries)", r.Problem, len(r.Blocks), r.NNZ)
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <problem>",
		Short: "Verify that every block fills exactly its registered pattern",
		Long: `Build a problem and verify its sparsity contract block by block: the
registered pattern is stable, every registered entry is written by the
sensitivity pass, and no block writes outside its own rows.

Exits with status 1 when a block breaks the contract.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sess, err := openSession(formatter, path, 0)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoad, err, map[string]string{"file": path})
	}
	defer sess.Close()

	sys := sess.model.System
	if err := sys.CheckPattern(); err != nil {
		return reportPatternError(formatter, err)
	}

	pattern, err := sys.Pattern()
	if err != nil {
		return reportPatternError(formatter, err)
	}

	return formatter.Success(CheckResult{
		Problem: sess.problem.Name,
		Blocks:  sys.Blocks(),
		NNZ:     pattern.NNZ(),
	})
}

// patternDetails is the CLIError payload for a pattern violation.
type patternDetails struct {
	Code   string `json:"code"`
	Block  string `json:"block,omitempty"`
	Offset int    `json:"offset"`
	Row    int    `json:"row"`
}

func reportPatternError(formatter *OutputFormatter, err error) error {
	var pe *optim.PatternError
	if !errors.As(err, &pe) {
		return formatter.Fail(ExitCommandError, ErrCodeEval, err, nil)
	}
	return formatter.Fail(ExitFailure, ErrCodePattern, err, patternDetails{
		Code:   string(pe.Code),
		Block:  pe.Block,
		Offset: pe.Offset,
		Row:    pe.Row,
	})
}
