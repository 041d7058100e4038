package commands

import (
	"time"

	"github.com/kevinreber/sitecfg/internal/build"
	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/render"
	"github.com/kevinreber/sitecfg/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Format     string        `short:"f" help:"Output format (ts|json|yaml); defaults to output.format"`
	Out        string        `short:"o" help:"Output file; defaults to output.path"`
	CheckLinks bool          `name:"check-links" help:"Apply the link policies before each write"`
	Debounce   time.Duration `help:"Quiet period before re-rendering" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	opts := build.BuildOptions{OutputPath: w.Out, CheckLinks: w.CheckLinks}
	if w.Format != "" {
		f, err := render.ParseFormat(w.Format)
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid --format").Build()
		}
		opts.Format = f
	}

	svc := build.NewBuildService().WithClock(g.Now).WithStdout(g.Stdout)
	watcher, err := watch.New(svc, build.BuildRequest{ConfigPath: root.Config, Options: opts},
		watch.WithDebounce(w.Debounce))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return watcher.Run(ctx)
}
