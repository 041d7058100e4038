package commands

import (
	"fmt"

	"github.com/kevinreber/sitecfg/internal/config"
	"github.com/kevinreber/sitecfg/internal/foundation/errors"
)

// URLCmd implements the 'url' command.
type URLCmd struct {
	Route string `arg:"" optional:"" help:"Site route, e.g. /docs/tmux-setup"`
	Edit  string `help:"Print the edit URL of a file under the docs directory"`
	Blog  string `help:"Print the edit URL of a file under the blog directory"`
	Pages bool   `help:"Print the GitHub Pages address"`
}

func (u *URLCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.LoadOptional(root.Config, g.Now())
	if err != nil {
		return err
	}

	var out string
	switch {
	case u.Edit != "":
		out = cfg.Site.DocsEditURL(u.Edit)
		if out == "" {
			return errors.ConfigError("docs plugin has no editUrl").Build()
		}
	case u.Blog != "":
		out = cfg.Site.BlogEditURL(u.Blog)
		if out == "" {
			return errors.ConfigError("blog plugin has no editUrl").Build()
		}
	case u.Pages:
		out = cfg.Site.PagesURL()
		if out == "" {
			return errors.ConfigError("organizationName is not set").Build()
		}
	case u.Route != "":
		out, err = cfg.Site.CanonicalURL(u.Route)
		if err != nil {
			return err
		}
	default:
		return errors.ValidationError("a route or one of --edit, --blog, --pages is required").Build()
	}

	_, _ = fmt.Fprintln(g.Stdout, out)
	return nil
}
