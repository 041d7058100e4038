package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kevinreber/sitecfg/internal/build"
	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/logfields"
	"github.com/kevinreber/sitecfg/internal/render"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Format     string `short:"f" help:"Output format (ts|json|yaml); defaults to output.format"`
	Out        string `short:"o" help:"Output file, '-' for stdout; defaults to output.path"`
	CheckLinks bool   `name:"check-links" help:"Apply the link policies before writing"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	opts := build.BuildOptions{OutputPath: r.Out, CheckLinks: r.CheckLinks}
	if r.Format != "" {
		f, err := render.ParseFormat(r.Format)
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid --format").Build()
		}
		opts.Format = f
	}

	svc := build.NewBuildService().WithClock(g.Now).WithStdout(g.Stdout)
	res, err := svc.Run(context.Background(), build.BuildRequest{ConfigPath: root.Config, Options: opts})
	if err != nil {
		return err
	}

	slog.Info("Render complete",
		logfields.Path(res.OutputPath),
		logfields.Format(string(res.Format)),
		slog.String("status", string(res.Status)),
		slog.Duration("duration", res.Duration))
	if res.OutputPath != "-" {
		_, _ = fmt.Fprintf(g.Stdout, "%s %s\n", res.Status, res.OutputPath)
	}
	return nil
}
