package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tacs/internal/flops"
	"github.com/roach88/tacs/internal/optim"
	"github.com/roach88/tacs/internal/scalar"
	"github.com/roach88/tacs/internal/threads"
)

// InfoResult describes how the binary was built.
type InfoResult struct {
	Scalar       string  `json:"scalar"`
	FlopCounting bool    `json:"flop_counting"`
	MaxThreads   int     `json:"max_threads"`
	Infinity     float64 `json:"infinity"`
}

// String renders the text output.
func (r InfoResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scalar:        %s\n", r.Scalar)
	fmt.Fprintf(&b, "flop counting: %s\n", onOff(r.FlopCounting))
	fmt.Fprintf(&b, "max threads:   %d\n", r.MaxThreads)
	fmt.Fprintf(&b, "infinity:      %g", r.Infinity)
	return b.String()
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "info",
		Short:         "Show build configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newFormatter(rootOpts, cmd).Success(buildInfo())
		},
	}
}

func buildInfo() InfoResult {
	return InfoResult{
		Scalar:       string(scalar.BuildMode()),
		FlopCounting: flops.Enabled,
		MaxThreads:   threads.MaxThreads,
		Infinity:     optim.Infinity,
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
