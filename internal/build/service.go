package build

import (
	"context"
	"time"

	"github.com/kevinreber/sitecfg/internal/linkcheck"
	"github.com/kevinreber/sitecfg/internal/render"
)

// BuildService is the canonical interface for rendering the site configuration.
type BuildService interface {
	// Run loads, checks, renders and writes. On failure the previous output
	// file is left untouched.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs for one render.
type BuildRequest struct {
	// ConfigPath is the overlay file. A missing file means published defaults.
	ConfigPath string

	// Options override values from the overlay.
	Options BuildOptions
}

// BuildOptions provides optional overrides and extra steps.
type BuildOptions struct {
	// OutputPath overrides output.path; "-" writes to the service's stdout.
	OutputPath string

	// Format overrides output.format.
	Format render.Format

	// CheckLinks runs the link policies before writing. Throw-level findings
	// fail the build.
	CheckLinks bool
}

// BuildResult contains the outcome of a build.
type BuildResult struct {
	Status BuildStatus

	// OutputPath is where the record was written, "-" for stdout.
	OutputPath string
	Format     render.Format

	// Snapshot is the hash of the build-affecting fields of the record.
	Snapshot string

	// Links is set when CheckLinks was requested.
	Links *linkcheck.Report

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates new output was written.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusUnchanged indicates the rendered output matched the existing file.
	BuildStatusUnchanged BuildStatus = "unchanged"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the context ended before the build finished.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed without error.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusUnchanged
}
