package commands

import (
	"fmt"
	"log/slog"

	"github.com/kevinreber/sitecfg/internal/config"
	"github.com/kevinreber/sitecfg/internal/logfields"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.LoadOptional(root.Config, g.Now())
	if err != nil {
		return err
	}
	slog.Debug("Configuration resolved",
		logfields.Path(cfg.Output.Path),
		logfields.Format(string(cfg.Output.Format)),
		logfields.Snapshot(cfg.Site.Snapshot()))

	source := cfg.Path
	if source == "" {
		source = "published defaults"
	}
	_, _ = fmt.Fprintf(g.Stdout, "configuration valid (%s, snapshot %s)\n", source, cfg.Site.Snapshot())
	return nil
}
