package commands

import (
	"fmt"

	"github.com/kevinreber/sitecfg/internal/config"
	"github.com/kevinreber/sitecfg/internal/linkcheck"
	"github.com/kevinreber/sitecfg/internal/site"
)

// CheckLinksCmd implements the 'check-links' command.
type CheckLinksCmd struct {
	Docs string `help:"Docs directory; defaults to docs.dir" type:"path"`
	Blog string `help:"Blog directory; defaults to docs.blog_dir" type:"path"`
}

func (c *CheckLinksCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.LoadOptional(root.Config, g.Now())
	if err != nil {
		return err
	}
	opts := linkcheck.Options{DocsDir: cfg.Docs.Dir, BlogDir: cfg.Docs.BlogDir, Exclude: cfg.Docs.Exclude}
	if c.Docs != "" {
		opts.DocsDir = c.Docs
	}
	if c.Blog != "" {
		opts.BlogDir = c.Blog
	}

	checker, err := linkcheck.New(cfg.Site, opts)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	report, err := checker.Run(ctx)
	if report != nil {
		for _, f := range report.Findings {
			_, _ = fmt.Fprintln(g.Stdout, f.String())
		}
		_, _ = fmt.Fprintf(g.Stdout, "%d pages, %d routes, %d warnings, %d errors\n",
			report.Pages, report.Routes, report.Count(site.SeverityWarn), report.Count(site.SeverityThrow))
	}
	return err
}
