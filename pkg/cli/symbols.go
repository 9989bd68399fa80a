package cli

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"hackasm/pkg/asm"
)

func newSymbolsCmd() *cobra.Command {
	var pretty, color bool

	cmd := &cobra.Command{
		Use:   "symbols sourceFile",
		Short: "Print the symbol table built while assembling a file",
		Long: `Symbols assembles the file and prints every binding in the final symbol
table: the predefined names, the labels bound in the first pass and the
variables allocated in the second. The default listing is sorted by address;
--pretty prints the table as a structured value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read input file %q: %w", args[0], err)
			}

			a := asm.NewAssembler()
			if _, _, err := a.Assemble(asm.Clean(string(source))); err != nil {
				return fmt.Errorf("assembly failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if !pretty {
				fmt.Fprint(out, a.Symbols())
				return nil
			}

			printer := pp.New()
			printer.SetColoringEnabled(color)
			_, err = printer.Fprintln(out, a.Symbols().Symbols())
			return err
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print the table as a map")
	cmd.Flags().BoolVar(&color, "color", false, "colorize --pretty output")
	return cmd
}
