package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/kevinreber/sitecfg/internal/config"
	"github.com/kevinreber/sitecfg/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force   bool `help:"Overwrite existing configuration file"`
	FromGit bool `name:"from-git" help:"Derive organization, project, url and editUrl from the origin remote"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	var remote *config.Remote
	if i.FromGit {
		r, err := config.InferFromGit(filepath.Dir(root.Config))
		if err != nil {
			return err
		}
		slog.Info("Inferred repository from origin", logfields.URL(r.URL), slog.String("branch", r.Branch))
		remote = &r
	}

	if err := config.Init(root.Config, i.Force, g.Now(), remote); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "wrote %s\n", root.Config)
	return nil
}
