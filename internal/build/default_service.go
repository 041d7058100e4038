package build

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/kevinreber/sitecfg/internal/config"
	"github.com/kevinreber/sitecfg/internal/linkcheck"
	"github.com/kevinreber/sitecfg/internal/logfields"
	"github.com/kevinreber/sitecfg/internal/render"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	now    func() time.Time
	stdout io.Writer
}

// NewBuildService creates a DefaultBuildService using the wall clock and os.Stdout.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{now: time.Now, stdout: os.Stdout}
}

// WithClock sets the clock used for the copyright year (for testing).
func (s *DefaultBuildService) WithClock(now func() time.Time) *DefaultBuildService {
	s.now = now
	return s
}

// WithStdout sets the writer used when the output path is "-".
func (s *DefaultBuildService) WithStdout(w io.Writer) *DefaultBuildService {
	s.stdout = w
	return s
}

// Run executes load → check → render → write.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	result := &BuildResult{StartTime: s.now()}
	finish := func(status BuildStatus, err error) (*BuildResult, error) {
		if err != nil && ctx.Err() != nil {
			status = BuildStatusCancelled
		}
		result.Status = status
		result.EndTime = s.now()
		result.Duration = result.EndTime.Sub(result.StartTime)
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return finish(BuildStatusCancelled, err)
	}

	cfg, err := config.LoadOptional(req.ConfigPath, result.StartTime)
	if err != nil {
		return finish(BuildStatusFailed, err)
	}

	result.Format = cfg.Output.Format
	if req.Options.Format != "" {
		result.Format = req.Options.Format
	}
	result.OutputPath = req.Options.OutputPath
	if result.OutputPath == "" {
		if result.OutputPath, err = cfg.Output.PathFor(result.Format); err != nil {
			return finish(BuildStatusFailed, err)
		}
	}
	result.Snapshot = cfg.Site.Snapshot()

	if req.Options.CheckLinks {
		checker, err := linkcheck.New(cfg.Site, linkcheck.Options{
			DocsDir: cfg.Docs.Dir,
			BlogDir: cfg.Docs.BlogDir,
			Exclude: cfg.Docs.Exclude,
		})
		if err != nil {
			return finish(BuildStatusFailed, err)
		}
		report, err := checker.Run(ctx)
		result.Links = report
		if err != nil {
			return finish(BuildStatusFailed, err)
		}
	}

	r, err := render.ForFormat(result.Format, render.WithClock(s.now))
	if err != nil {
		return finish(BuildStatusFailed, err)
	}

	if result.OutputPath == "-" {
		if err := r.Render(s.stdout, cfg.Site); err != nil {
			return finish(BuildStatusFailed, err)
		}
		return finish(BuildStatusSuccess, nil)
	}

	changed, err := render.WriteFile(result.OutputPath, r, cfg.Site)
	if err != nil {
		return finish(BuildStatusFailed, err)
	}
	if !changed {
		return finish(BuildStatusUnchanged, nil)
	}

	slog.Debug("Build complete", logfields.Path(result.OutputPath), logfields.Snapshot(result.Snapshot))
	return finish(BuildStatusSuccess, nil)
}
