package cli

import (
	"flag"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the hackasm command tree. glog's flags (-v,
// -logtostderr, ...) are exposed as persistent flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hackasm",
		Short: "Assembler and emulator for the Hack computer",
		Long: `Hackasm translates Hack assembly into the .hack text format read by the
Hack CPU, and runs programs on a built-in emulator of that CPU.

Assembly is done in two passes over the cleaned source: the first binds
every (LABEL) to its ROM address, the second resolves @symbols, allocates
variables from RAM address 16 upward and encodes each instruction as a
16-bit word.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// glog reads its settings from the standard flag set
			_ = flag.CommandLine.Parse(nil)
		},
	}

	_ = flag.Set("logtostderr", "true")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newAsmCmd(), newSymbolsCmd(), newRunCmd())
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	defer glog.Flush()

	if err := NewRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}
