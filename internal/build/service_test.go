package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinreber/sitecfg/internal/config"
	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/render"
	"github.com/kevinreber/sitecfg/internal/site"
)

var fixedNow = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

func newService(stdout *bytes.Buffer) *DefaultBuildService {
	return NewBuildService().WithClock(func() time.Time { return fixedNow }).WithStdout(stdout)
}

func TestBuildStatus_IsSuccess(t *testing.T) {
	tests := []struct {
		status   BuildStatus
		expected bool
	}{
		{BuildStatusSuccess, true},
		{BuildStatusUnchanged, true},
		{BuildStatusFailed, false},
		{BuildStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsSuccess())
		})
	}
}

func TestRun_DefaultsToStdout(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()

	res, err := newService(&out).Run(context.Background(), BuildRequest{
		ConfigPath: filepath.Join(dir, config.DefaultPath),
		Options:    BuildOptions{OutputPath: "-", Format: render.FormatJSON},
	})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusSuccess, res.Status)
	assert.Equal(t, render.FormatJSON, res.Format)

	parsed, err := render.Parse(render.FormatJSON, &out)
	require.NoError(t, err)
	assert.Equal(t, site.Default(fixedNow), parsed)
	assert.Equal(t, parsed.Snapshot(), res.Snapshot)
}

func TestRun_WritesOnceThenUnchanged(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, config.DefaultPath)
	require.NoError(t, os.WriteFile(overlay, []byte("output:\n  path: out/docusaurus.config.ts\n"), 0o644))

	svc := newService(&bytes.Buffer{})
	req := BuildRequest{ConfigPath: overlay}

	res, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, BuildStatusSuccess, res.Status)
	assert.Equal(t, filepath.Join(dir, "out", "docusaurus.config.ts"), res.OutputPath)

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export default config;")

	res, err = svc.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, BuildStatusUnchanged, res.Status)
}

func TestRun_FormatOverridePicksMatchingFile(t *testing.T) {
	dir := t.TempDir()

	res, err := newService(&bytes.Buffer{}).Run(context.Background(), BuildRequest{
		ConfigPath: filepath.Join(dir, config.DefaultPath),
		Options:    BuildOptions{Format: render.FormatYAML},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docusaurus.config.yaml"), res.OutputPath)
	assert.FileExists(t, res.OutputPath)
	assert.NoFileExists(t, filepath.Join(dir, "docusaurus.config.ts"))
}

func TestRun_FailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, config.DefaultPath)
	output := filepath.Join(dir, "docusaurus.config.ts")
	require.NoError(t, os.WriteFile(output, []byte("previous"), 0o644))
	require.NoError(t, os.WriteFile(overlay, []byte("site:\n  baseUrl: nope\n"), 0o644))

	res, err := newService(&bytes.Buffer{}).Run(context.Background(), BuildRequest{ConfigPath: overlay})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Equal(t, BuildStatusFailed, res.Status)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestRun_CheckLinks(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, config.DefaultPath)
	req := BuildRequest{ConfigPath: overlay, Options: BuildOptions{CheckLinks: true, OutputPath: "-"}}

	res, err := newService(&bytes.Buffer{}).Run(context.Background(), req)
	require.Error(t, err, "navbar points at /docs/tmux-setup, which has no page yet")
	assert.True(t, errors.HasCategory(err, errors.CategoryLinks))
	require.NotNil(t, res.Links)
	assert.Equal(t, 1, res.Links.Count(site.SeverityThrow))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "tmux-setup.md"), []byte("# Tmux\n"), 0o644))

	var out bytes.Buffer
	res, err = newService(&out).Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Links.Pages)
	assert.NotEmpty(t, out.String())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newService(&bytes.Buffer{}).Run(ctx, BuildRequest{ConfigPath: filepath.Join(t.TempDir(), config.DefaultPath)})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, BuildStatusCancelled, res.Status)
}
