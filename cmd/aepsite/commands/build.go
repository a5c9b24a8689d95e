package commands

import (
	"fmt"
	"io"
	"time"

	"git.home.luguber.info/inful/aepsite/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Override output.root"`
	DryRun  bool   `name:"dry-run" help:"Compute outputs without writing them"`
	Offline bool   `help:"Reuse existing clones of git sources instead of fetching"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Root = b.Output
	}

	ctx, cancel := signalContext()
	defer cancel()

	inst := newBuildService(ctx, cfg)
	defer inst.Close()

	report, err := inst.svc.Run(ctx, build.BuildRequest{
		Config: cfg,
		Options: build.BuildOptions{
			DryRun:  b.DryRun || cfg.Output.DryRun,
			Offline: b.Offline,
		},
	})
	inst.writeMetrics(ctx)
	if err != nil {
		return err
	}
	printReport(g.Out, report)
	return nil
}

// printReport writes a short human summary of r.
func printReport(w io.Writer, r *build.Report) {
	_, _ = fmt.Fprintf(w, "Build %s %s in %s\n", r.BuildID, r.Status, r.Duration.Round(time.Millisecond))
	for _, e := range r.Editions {
		_, _ = fmt.Fprintf(w, "  edition %s: %d written, %d assembled, %d skipped\n", e.Name, e.Written, e.Assembled, e.Skipped)
	}
	_, _ = fmt.Fprintf(w, "  outputs: %d written, %d unchanged", r.Outputs.Written, r.Outputs.Unchanged)
	if r.Outputs.DryRun > 0 {
		_, _ = fmt.Fprintf(w, ", %d not written (dry run)", r.Outputs.DryRun)
	}
	_, _ = fmt.Fprintln(w)
	for _, s := range r.Skipped {
		_, _ = fmt.Fprintf(w, "  skipped %s: %s\n", s.Folder, s.Error)
	}
	if len(r.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "  %d warnings, see log\n", len(r.Warnings))
	}
}
