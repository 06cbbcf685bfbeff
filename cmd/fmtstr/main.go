// Command fmtstr renders brace format strings from the command line.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		report(stderr, err, a.color)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "fmtstr",
		Short: "Render brace format strings",
		Long: `fmtstr renders format strings such as "{2:>8} {1:.2f}" with values given
on the command line, in YAML files, or in batches.`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().String("config", "", "config file (default "+defaultConfigHint+")")
	root.PersistentFlags().String("color", "", "colorize diagnostics (auto|on|off)")
	root.PersistentFlags().Bool("verbose", false, "log debug output to stderr")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newPresetsCmd(a))
	return root
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
