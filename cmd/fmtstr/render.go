package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/fmtstr"
	"github.com/bjaus/fmtstr/internal/values"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags] <format> [value...]",
		Short: "Render a format string with values",
		Long: `Render a format string with the given values.

Values are read as YAML scalars: integers, floats, booleans and null keep
their type and anything else is a string. With --preset the format string
comes from the config file and every argument is a value.`,
		Example: `  fmtstr render "{2} before {1}" b a
  fmtstr render -n "{:>8.2f}|" 3.14159
  fmtstr render --preset money 12.5`,
		RunE: a.runRender,
	}
	cmd.Flags().String("values", "", "YAML file with values appended after the arguments")
	cmd.Flags().String("preset", "", "take the format string from the config file")
	cmd.Flags().BoolP("newline", "n", false, "print a trailing newline")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string) error {
	preset, _ := cmd.Flags().GetString("preset")
	format, rest, err := a.format(preset, args)
	if err != nil {
		return err
	}

	vals := make([]any, 0, len(rest))
	for _, arg := range rest {
		vals = append(vals, values.Literal(arg))
	}
	if path, _ := cmd.Flags().GetString("values"); path != "" {
		more, err := values.LoadFile(path)
		if err != nil {
			return fmt.Errorf("values: %w", err)
		}
		vals = append(vals, more...)
	}

	s, err := fmtstr.New(format)
	if err != nil {
		return err
	}
	if err := s.Args(vals...); err != nil {
		return err
	}
	a.log.Debug("rendering", "format", format, "requested", s.Requested(), "provided", s.Provided())
	if s.Provided() > s.Requested() {
		a.log.Warn("unused values", "requested", s.Requested(), "provided", s.Provided())
	}

	if newline, _ := cmd.Flags().GetBool("newline"); newline {
		return s.Writeln(cmd.OutOrStdout())
	}
	return s.Write(cmd.OutOrStdout())
}
