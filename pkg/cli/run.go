package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"hackasm/pkg/cpu"
	"hackasm/pkg/utils"
)

type runOptions struct {
	steps      int
	dump       string
	key        int
	screenshot string
	scale      int
	saveState  string
	loadState  string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [program.asm|program.hack]",
		Short: "Run a program on the Hack CPU emulator",
		Long: `Run loads a program (assembling it first when it is not a .hack file) and
executes it until it halts or the step limit is reached. A program halts by
running past its last instruction or by entering the "(END) @END 0;JMP"
loop. Registers are printed at the end; --dump prints a RAM range and
--screenshot saves the screen as a PNG.

--save-state writes the machine to a ZIP archive after the run, and
--load-state resumes such an archive instead of loading a program.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd.OutOrStdout(), args, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.steps, "steps", 10_000_000, "maximum number of instructions to execute (0 = no limit)")
	f.StringVar(&opts.dump, "dump", "", "RAM range to print after the run, as start:end (end exclusive)")
	f.IntVar(&opts.key, "key", 0, "key code held on the keyboard during the run")
	f.StringVar(&opts.screenshot, "screenshot", "", "write the screen to this PNG file after the run")
	f.IntVar(&opts.scale, "scale", 1, "integer scale factor for --screenshot")
	f.StringVar(&opts.saveState, "save-state", "", "write the machine state to this file after the run")
	f.StringVar(&opts.loadState, "load-state", "", "resume from a state file written by --save-state")
	return cmd
}

func runProgram(out io.Writer, args []string, opts runOptions) error {
	vm := cpu.NewCPU()
	name := ""

	switch {
	case opts.loadState != "" && len(args) > 0:
		return fmt.Errorf("use either a program or --load-state, not both")
	case opts.loadState != "":
		if err := vm.RestoreFromFile(opts.loadState); err != nil {
			return fmt.Errorf("failed to restore %q: %w", opts.loadState, err)
		}
		name = opts.loadState
	case len(args) == 1:
		program, err := utils.LoadProgram(args[0])
		if err != nil {
			return err
		}
		if err := vm.Load(program); err != nil {
			return err
		}
		name = args[0]
	default:
		return fmt.Errorf("nothing to do: provide a program or --load-state")
	}

	start, end, err := parseRange(opts.dump)
	if err != nil {
		return err
	}

	vm.SetKey(uint16(opts.key))
	if opts.steps > 0 {
		vm.RunSteps(opts.steps)
	} else {
		vm.Run()
	}
	if !vm.Halted {
		glog.Warningf("%s: stopped after %d steps without halting", name, vm.Steps)
	}

	fmt.Fprintf(out, "run complete (%s): PC=%d A=%d D=%d steps=%d halted=%t\n",
		name, vm.PC, vm.A, vm.D, vm.Steps, vm.Halted)

	for addr := start; addr < end; addr++ {
		fmt.Fprintf(out, "RAM[%d] = %d\n", addr, int16(vm.Peek(uint16(addr))))
	}

	if opts.screenshot != "" {
		if err := vm.SaveScreenshot(opts.screenshot, opts.scale); err != nil {
			return fmt.Errorf("failed to save screenshot %q: %w", opts.screenshot, err)
		}
	}
	if opts.saveState != "" {
		if err := vm.HibernateToFile(opts.saveState); err != nil {
			return fmt.Errorf("failed to save state %q: %w", opts.saveState, err)
		}
	}

	return nil
}

// parseRange parses "start:end" into a half-open RAM range.
func parseRange(s string) (int, int, error) {
	if s == "" {
		return 0, 0, nil
	}
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --dump %q: want start:end", s)
	}
	start, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --dump start %q", lo)
	}
	end, err := strconv.Atoi(hi)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --dump end %q", hi)
	}
	if start < 0 || end > cpu.RAMSize || start > end {
		return 0, 0, fmt.Errorf("invalid --dump range %d:%d", start, end)
	}
	return start, end, nil
}
