package commands

import (
	"context"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/kevinreber/sitecfg/internal/config"
	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/version"
)

// Global carries state shared by every command.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Overlay configuration file" default:"sitecfg.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable debug logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render     RenderCmd     `cmd:"" help:"Render the site configuration for the static-site builder"`
	Validate   ValidateCmd   `cmd:"" help:"Validate the resolved site configuration"`
	URL        URLCmd        `cmd:"" name:"url" help:"Print the canonical URL of a route or the edit URL of a source file"`
	Init       InitCmd       `cmd:"" help:"Write an example overlay configuration"`
	CheckLinks CheckLinksCmd `cmd:"" name:"check-links" help:"Apply the link policies to the docs and blog sources"`
	Watch      WatchCmd      `cmd:"" help:"Render, then re-render whenever the overlay changes"`
}

// AfterApply runs after flag parsing; setup logging once. Flags win over the
// overlay's logging section.
func (c *CLI) AfterApply(g *Global) error {
	level := config.LogLevelInfo
	format := config.LogFormatText
	if lc, ok := config.PeekLogging(c.Config); ok {
		level, format = lc.Level, lc.Format
	}
	if c.Verbose {
		level = config.LogLevelDebug
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}

	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(g.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(g.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// Execute parses args, runs the selected command and returns the process
// exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(args, &Global{Stdout: stdout, Stderr: stderr, Now: time.Now})
}

func execute(args []string, g *Global, opts ...kong.Option) int {
	var cli CLI
	opts = append([]kong.Option{
		kong.Name("sitecfg"),
		kong.Description("Owns the Docusaurus site configuration for kevinreber/tmux-configs."),
		kong.UsageOnError(),
		kong.Writers(g.Stdout, g.Stderr),
		kong.Vars{"version": version.String()},
		kong.Bind(g),
	}, opts...)

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, nil).Report(
			errors.WrapError(err, errors.CategoryInternal, "build command line parser").Build())
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 1
	}

	if err := kctx.Run(&cli); err != nil {
		return errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(err)
	}
	return 0
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
