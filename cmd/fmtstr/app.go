package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bjaus/fmtstr"
	"github.com/bjaus/fmtstr/internal/config"
)

const defaultConfigHint = config.DefaultPath + " if present"

// app is the state shared by all commands.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	color bool
}

// setup loads the config file, builds the logger and settles the color mode.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	path, _ := flags.GetString("config")
	if path == "" {
		path = config.DefaultPath
	} else if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	for _, k := range cfg.Unknown {
		a.log.Warn("unknown config key", "path", path, "key", k)
	}

	mode, _ := flags.GetString("color")
	if mode == "" {
		mode = cfg.ColorMode()
	}
	switch strings.ToLower(mode) {
	case config.ColorOn:
		a.color = true
	case config.ColorOff:
		a.color = false
	case config.ColorAuto:
		a.color = isTerminal(cmd.ErrOrStderr())
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidColor, mode)
	}
	a.log.Debug("config loaded", "path", path, "presets", len(cfg.Presets), "color", a.color)
	return nil
}

// format picks the format string: the named preset, or else the first
// argument. It returns the remaining arguments.
func (a *app) format(preset string, args []string) (string, []string, error) {
	if preset != "" {
		f, err := a.cfg.Preset(preset)
		return f, args, err
	}
	if len(args) == 0 {
		return "", nil, errors.New("missing format string")
	}
	return args[0], args[1:], nil
}

// report prints err to w. Format errors get the caret diagnostic.
func report(w io.Writer, err error, colorize bool) {
	bad := color.New(color.FgRed, color.Bold)
	mark := color.New(color.FgGreen, color.Bold)
	if colorize {
		bad.EnableColor()
		mark.EnableColor()
	} else {
		bad.DisableColor()
		mark.DisableColor()
	}

	var fe *fmtstr.FormatError
	if !errors.As(err, &fe) {
		fmt.Fprintln(w, bad.Sprint("error:"), err)
		return
	}
	if ctx := strings.TrimSuffix(err.Error(), ": "+fe.Error()); ctx != err.Error() {
		fmt.Fprintln(w, bad.Sprint("error:"), ctx)
	}
	lines := strings.Split(fe.Describe(), "\n")
	lines[0] = bad.Sprint("format error:") + strings.TrimPrefix(lines[0], "format error:")
	if len(lines) == 3 {
		lines[2] = strings.TrimSuffix(lines[2], "^") + mark.Sprint("^")
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}
