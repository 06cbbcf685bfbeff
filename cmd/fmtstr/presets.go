package main

import (
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/bjaus/fmtstr"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the format presets of the config file",
		Args:  cobra.NoArgs,
		RunE:  a.runPresets,
	}
}

func (a *app) runPresets(cmd *cobra.Command, _ []string) error {
	names := a.cfg.PresetNames()
	width := 0
	for _, n := range names {
		width = max(width, utf8.RuneCountInString(n))
	}
	line := fmtstr.MustNew("{:<" + strconv.Itoa(width) + "}  {}")
	for _, n := range names {
		if err := line.Args(n, a.cfg.Presets[n]); err != nil {
			return err
		}
		if err := line.Writeln(cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	return nil
}
