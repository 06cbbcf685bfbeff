package main

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bjaus/fmtstr"
	"github.com/bjaus/fmtstr/internal/values"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] <jobs.yaml>",
		Short: "Render a YAML list of jobs",
		Long: `Render every job of a YAML file and print one line per job in file order.

Each job has a format (or a preset from the config file) and a list of
values:

  - name: greeting
    format: "Hello {}"
    values: [World]
  - preset: money
    values: [12.5]`,
		Args: cobra.ExactArgs(1),
		RunE: a.runBatch,
	}
	cmd.Flags().Uint("jobs", 0, "max jobs rendered in parallel (0=GOMAXPROCS)")
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, args []string) error {
	jobs, err := values.LoadJobs(args[0])
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	n, _ := cmd.Flags().GetUint("jobs")
	limit, err := safecast.Conv[int](n)
	if err != nil {
		return fmt.Errorf("--jobs: %w", err)
	}
	if limit == 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	out, err := a.renderJobs(cmd.Context(), jobs, limit)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, line := range out {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// renderJobs renders jobs with at most limit running at once. Jobs sharing a
// format string share one compiled session and render on clones of it.
func (a *app) renderJobs(ctx context.Context, jobs []values.Job, limit int) ([]string, error) {
	compiled := make(map[string]*fmtstr.Session)
	base := make([]*fmtstr.Session, len(jobs))
	for i, j := range jobs {
		format := j.Format
		if format == "" {
			var err error
			if format, err = a.cfg.Preset(j.Preset); err != nil {
				return nil, jobError(i, j, err)
			}
		}
		s, ok := compiled[format]
		if !ok {
			var err error
			if s, err = fmtstr.New(format); err != nil {
				return nil, jobError(i, j, err)
			}
			compiled[format] = s
		}
		base[i] = s
	}
	a.log.Debug("batch compiled", "jobs", len(jobs), "formats", len(compiled), "limit", limit)

	out := make([]string, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(limit, len(jobs))))
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := base[i].Clone()
			if err := s.Args(j.Values...); err != nil {
				return jobError(i, j, err)
			}
			text, err := s.Render()
			if err != nil {
				return jobError(i, j, err)
			}
			out[i] = text
			a.log.Debug("job rendered", "job", i+1, "name", j.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func jobError(i int, j values.Job, err error) error {
	label := "job " + strconv.Itoa(i+1)
	if j.Name != "" {
		label += " " + strconv.Quote(j.Name)
	}
	if j.Line > 0 {
		label += " (line " + strconv.Itoa(j.Line) + ")"
	}
	return fmt.Errorf("%s: %w", label, err)
}
