package linkcheck

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/site"
)

var fixedNow = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

const (
	docsDir = "/site/docs"
	blogDir = "/site/blog"
)

func fixture(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.FromSlash(name), []byte(content), 0o644))
	}
	return fs
}

func cleanTree() map[string]string {
	return map[string]string{
		docsDir + "/tmux-setup.md":      "---\ntitle: Tmux Setup\n---\nSee [plugins](./plugins.md) and [guides](/docs/guides#top).\n",
		docsDir + "/plugins.md":         "---\nid: tmux-plugins\n---\nBack to [setup](tmux-setup.md).\n![shot](./shot.png)\n",
		docsDir + "/01-guides/index.md": "# Guides\n\n[External](https://github.com/tmux/tmux)\n",
		docsDir + "/_partial.md":        "[broken](./nowhere.md)\n",
		blogDir + "/tags.yml":           "tmux:\n  label: Tmux\n",
		blogDir + "/2024-05-01-hello.md": "---\ntags: [tmux]\nauthors: kevin\n---\nIntro.\n\n<!-- truncate -->\n\nMore.\n",
		blogDir + "/draft.md":           "---\ndraft: true\n---\nno marker, [broken](./nowhere.md)\n",
	}
}

type harness struct {
	cfg  site.Config
	fs   afero.Fs
	logs bytes.Buffer
}

func newHarness(t *testing.T, files map[string]string) *harness {
	return &harness{cfg: site.Default(fixedNow), fs: fixture(t, files)}
}

func (h *harness) run(t *testing.T, ctx context.Context) (*Report, error) {
	t.Helper()
	c, err := New(h.cfg, Options{
		DocsDir: docsDir,
		BlogDir: blogDir,
		Fs:      h.fs,
		Logger:  slog.New(slog.NewTextHandler(&h.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	require.NoError(t, err)
	return c.Run(ctx)
}

func policies(r *Report) []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Policy)
	}
	return out
}

func TestRun_CleanTree(t *testing.T) {
	h := newHarness(t, cleanTree())

	report, err := h.run(t, context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Findings)
	assert.Equal(t, 4, report.Pages, "drafts and excluded partials are not routed")
	assert.Contains(t, h.logs.String(), "Link check complete")
}

func TestRun_ReportsEveryPolicy(t *testing.T) {
	files := cleanTree()
	files[docsDir+"/broken.md"] = "[gone](./missing.md) and [route](/docs/nope) and [ok](/tmux-configs/docs/tmux-plugins)\n"
	files[blogDir+"/2024-06-01-long.md"] = "---\ntags: [{label: Terminal, permalink: /terminal}, undeclared]\nauthors:\n  - name: Guest\n---\nNo marker here.\n"
	h := newHarness(t, files)

	report, err := h.run(t, context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryLinks))
	require.NotNil(t, report)

	assert.ElementsMatch(t, []string{
		PolicyBrokenLinks,
		PolicyBrokenMarkdownLinks,
		PolicyUntruncatedPosts,
		PolicyInlineTags,
		PolicyInlineTags,
		PolicyInlineAuthors,
	}, policies(report))
	assert.Equal(t, 1, report.Count(site.SeverityThrow))
	assert.Equal(t, 5, report.Count(site.SeverityWarn))

	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	findings, _ := ce.Context().Get("findings")
	require.Len(t, findings, 1)
	assert.Contains(t, findings.([]string)[0], "/docs/nope")
	assert.Contains(t, h.logs.String(), "level=WARN")
}

func TestRun_SeverityApplication(t *testing.T) {
	files := cleanTree()
	files[docsDir+"/broken.md"] = "[gone](./missing.md)\n"

	t.Run("ignore drops", func(t *testing.T) {
		h := newHarness(t, files)
		h.cfg.OnBrokenMarkdownLinks = site.SeverityIgnore
		report, err := h.run(t, context.Background())
		require.NoError(t, err)
		assert.Empty(t, report.Findings)
		assert.NotContains(t, h.logs.String(), "missing.md")
	})

	t.Run("log emits info", func(t *testing.T) {
		h := newHarness(t, files)
		h.cfg.OnBrokenMarkdownLinks = site.SeverityLog
		report, err := h.run(t, context.Background())
		require.NoError(t, err)
		require.Len(t, report.Findings, 1)
		assert.Contains(t, h.logs.String(), "level=INFO msg=\"markdown link ./missing.md does not resolve to a file\"")
	})

	t.Run("throw fails", func(t *testing.T) {
		h := newHarness(t, files)
		h.cfg.OnBrokenMarkdownLinks = site.SeverityThrow
		report, err := h.run(t, context.Background())
		require.Error(t, err)
		assert.Equal(t, 1, report.Count(site.SeverityThrow))
	})
}

func TestRun_ThemeLinks(t *testing.T) {
	h := newHarness(t, cleanTree())
	h.cfg.ThemeConfig.Navbar.Items = append(h.cfg.ThemeConfig.Navbar.Items,
		site.NavItem{Href: "/docs/missing-page", Label: "Missing"},
		site.NavItem{Href: "/img/logo.png", Label: "Static"},
		site.NavItem{Href: "/tmux-configs/blog", Label: "Blog"},
	)

	report, err := h.run(t, context.Background())
	require.Error(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "themeConfig.navbar.items[2]", report.Findings[0].Source)
	assert.Equal(t, site.SeverityThrow, report.Findings[0].Severity)
}

func TestRun_MissingDocsDirectory(t *testing.T) {
	h := newHarness(t, map[string]string{})

	report, err := h.run(t, context.Background())
	require.Error(t, err, "the default navbar points at /docs/tmux-setup")
	assert.Equal(t, 0, report.Pages)
	assert.Equal(t, PolicyBrokenLinks, report.Findings[0].Policy)
}

func TestRun_NoBlogPlugin(t *testing.T) {
	files := cleanTree()
	files[blogDir+"/untruncated.md"] = "No marker.\n"
	h := newHarness(t, files)
	h.cfg.Presets[0].Options.Blog = nil

	report, err := h.run(t, context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Pages)
}

func TestRun_CustomExclude(t *testing.T) {
	files := cleanTree()
	files[docsDir+"/wip/notes.md"] = "[gone](./missing.md)\n"
	h := newHarness(t, files)

	c, err := New(h.cfg, Options{DocsDir: docsDir, BlogDir: blogDir, Fs: h.fs, Exclude: []string{"**/wip/**"}})
	require.NoError(t, err)
	report, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Findings)

	_, err = New(h.cfg, Options{Exclude: []string{"[unclosed"}})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestRun_CancelledContext(t *testing.T) {
	h := newHarness(t, cleanTree())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.run(t, ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidFrontmatter(t *testing.T) {
	files := cleanTree()
	files[docsDir+"/bad.md"] = "---\ntitle: [unterminated\n---\n"
	h := newHarness(t, files)

	_, err := h.run(t, context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryLinks))
}
