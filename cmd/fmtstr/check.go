package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bjaus/fmtstr"
	"github.com/bjaus/fmtstr/internal/values"
)

// segmentRow is one line of the check output.
type segmentRow struct {
	Pos  int    `yaml:"pos"`
	Kind string `yaml:"kind"`
	Arg  int    `yaml:"arg,omitempty"`
	Text string `yaml:"text"`
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <format>",
		Short: "Compile a format string and list its segments",
		Long: `Compile a format string and print its segments. Literal rows show the
text, variable rows the 1-based argument and the specifier.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runCheck,
	}
	cmd.Flags().StringP("output", "o", "text", "output format (text|yaml)")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	t, err := fmtstr.Compile(args[0])
	if err != nil {
		return err
	}
	rows := segmentRows(t)
	a.log.Debug("compiled", "segments", len(rows), "requested", t.Requested())

	w := cmd.OutOrStdout()
	switch out, _ := cmd.Flags().GetString("output"); out {
	case "yaml":
		return values.WriteYAML(w, rows, 2)
	case "text":
	default:
		return fmt.Errorf("unknown output format %q", out)
	}

	line := fmtstr.MustNew("{:<5}{:<10}{:>3}  {}")
	if err := line.Args("POS", "KIND", "ARG", "TEXT"); err != nil {
		return err
	}
	if err := line.Writeln(w); err != nil {
		return err
	}
	for _, r := range rows {
		var arg any = "-"
		if r.Arg > 0 {
			arg = r.Arg
		}
		if err := line.Args(r.Pos, r.Kind, arg, strconv.Quote(r.Text)); err != nil {
			return err
		}
		if err := line.Writeln(w); err != nil {
			return err
		}
	}
	return fmtstr.Fprintln(w, "{} segments, {} arguments", len(rows), t.Requested())
}

func segmentRows(t *fmtstr.Template) []segmentRow {
	segs := t.Segments()
	rows := make([]segmentRow, 0, len(segs))
	for _, s := range segs {
		r := segmentRow{Pos: s.Pos, Kind: s.Kind.String()}
		if s.Kind == fmtstr.Variable {
			r.Arg = s.Index + 1
			r.Text = t.Spec(s)
		} else {
			r.Text = t.Source()[s.Start:s.End]
		}
		rows = append(rows, r)
	}
	return rows
}
