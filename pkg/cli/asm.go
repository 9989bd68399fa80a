package cli

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"hackasm/pkg/asm"
	"hackasm/pkg/utils"
)

func newAsmCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "asm sourceFile",
		Short: "Assemble a .asm file into .hack text",
		Long: `Asm reads one Hack assembly file, strips comments and blanks, and writes
one 16-digit binary line per instruction. The output goes next to the input
with a .hack extension unless -o is given. Nothing is written when the
source has a fatal error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath := args[0]
			source, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("failed to read input file %q: %w", inPath, err)
			}

			words, _, err := asm.AssembleSource(string(source))
			if err != nil {
				return fmt.Errorf("assembly failed: %w", err)
			}

			output := outPath
			if output == "" {
				output = utils.ReplaceExt(inPath, ".hack")
			}
			if err := os.WriteFile(output, []byte(asm.FormatHack(words)), 0o644); err != nil {
				return fmt.Errorf("failed to write %q: %w", output, err)
			}

			glog.V(1).Infof("%s: %d words", inPath, len(words))
			fmt.Fprintf(cmd.OutOrStdout(), "assembled %d words -> %s\n", len(words), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output .hack file path (default: input with .hack extension)")
	return cmd
}
