// Package linkcheck runs the site record's link-integrity and blog content
// policies against the local docs and blog trees, so CI can fail before the
// external builder is invoked.
package linkcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/frontmatter"
	"github.com/kevinreber/sitecfg/internal/logfields"
	"github.com/kevinreber/sitecfg/internal/markdown"
	"github.com/kevinreber/sitecfg/internal/site"
	"github.com/kevinreber/sitecfg/internal/util/sets"
)

// defaultExclude mirrors the builder's content exclusions, matched against
// the slash-prefixed path relative to the plugin directory.
var defaultExclude = []string{
	"**/_*.{md,mdx}",
	"**/_*/**",
	"**/__tests__/**",
}

// Options locates the content and configures the run.
type Options struct {
	DocsDir string
	BlogDir string
	// Exclude adds glob patterns to the default exclusions.
	Exclude []string
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Page is a routed content file.
type Page struct {
	File  string
	Route string
	Meta  frontmatter.Meta
	Body  []byte
}

// Checker evaluates the policies of one site record.
type Checker struct {
	site    site.Config
	opts    Options
	fs      afero.Fs
	logger  *slog.Logger
	exclude []glob.Glob
}

// New prepares a checker. It fails only on invalid exclude patterns.
func New(cfg site.Config, opts Options) (*Checker, error) {
	c := &Checker{site: cfg, opts: opts, fs: opts.Fs, logger: opts.Logger}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	for _, p := range append(append([]string{}, defaultExclude...), opts.Exclude...) {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid exclude pattern").
				WithContext("pattern", p).Build()
		}
		c.exclude = append(c.exclude, g)
	}
	return c, nil
}

// Run scans the content trees and applies every policy. The report is
// returned even when throw-level findings make the error non-nil.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	blogOpts := c.blogOptions()

	var docs, posts []*Page
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = c.scan(gctx, c.opts.DocsDir, docRoute)
		return err
	})
	if blogOpts != nil {
		g.Go(func() error {
			var err error
			posts, err = c.scan(gctx, c.opts.BlogDir, blogRoute)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	routes := buildRoutes(docs, posts)
	report := &Report{Pages: len(docs) + len(posts), Routes: len(routes)}
	c.logger.Debug("Derived routes", slog.Any("routes", sets.Sorted(routes)))

	for _, f := range c.checkThemeLinks(routes) {
		report.record(c.logger, f)
	}
	for _, f := range c.checkMarkdownLinks(docs, c.opts.DocsDir, routes) {
		report.record(c.logger, f)
	}
	for _, f := range c.checkMarkdownLinks(posts, c.opts.BlogDir, routes) {
		report.record(c.logger, f)
	}
	if blogOpts != nil {
		declared, err := c.declaredKeys(filepath.Join(c.opts.BlogDir, "tags.yml"))
		if err != nil {
			return nil, err
		}
		for _, f := range checkBlogPosts(posts, blogOpts, declared) {
			report.record(c.logger, f)
		}
	}

	c.logger.Info("Link check complete",
		slog.Int("pages", report.Pages),
		slog.Int("routes", report.Routes),
		logfields.Count(len(report.Findings)))
	return report, report.Err()
}

func (c *Checker) blogOptions() *site.BlogOptions {
	if classic, ok := c.site.ClassicPreset(); ok {
		return classic.Options.Blog
	}
	return nil
}

func (c *Checker) excluded(rel string) bool {
	p := "/" + filepath.ToSlash(rel)
	for _, g := range c.exclude {
		if g.Match(p) {
			return true
		}
	}
	return false
}

// scan collects the routed .md/.mdx files under root. A missing root yields
// no pages. Drafts are skipped since production builds do not route them.
func (c *Checker) scan(ctx context.Context, root string, route routeFunc) ([]*Page, error) {
	if root == "" {
		return nil, nil
	}
	ok, err := afero.DirExists(c.fs, root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "stat content directory").
			WithContext("dir", root).Build()
	}
	if !ok {
		c.logger.Debug("Content directory not found, skipping", logfields.Path(root))
		return nil, nil
	}

	var pages []*Page
	err = afero.Walk(c.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if rel != "." && c.excluded(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if ext := strings.ToLower(filepath.Ext(p)); ext != ".md" && ext != ".mdx" {
			return nil
		}
		if c.excluded(rel) {
			return nil
		}

		data, err := afero.ReadFile(c.fs, p)
		if err != nil {
			return err
		}
		meta, body, err := frontmatter.Parse(data)
		if err != nil {
			return errors.WrapError(err, errors.CategoryLinks, "parse frontmatter").
				WithContext("file", p).Build()
		}
		if meta.Draft {
			c.logger.Debug("Skipping draft", logfields.File(p))
			return nil
		}
		pages = append(pages, &Page{File: p, Route: route(rel, meta), Meta: meta, Body: body})
		return nil
	})
	if err != nil {
		if _, ok := errors.AsClassified(err); ok || ctx.Err() != nil {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "walk content directory").
			WithContext("dir", root).Build()
	}
	return pages, nil
}

func buildRoutes(docs, posts []*Page) sets.Set[string] {
	routes := sets.New[string]()
	for _, p := range docs {
		routes.Add(p.Route)
		for _, t := range p.Meta.Tags {
			routes.Add(tagRoute(docsBase, t.Key))
		}
	}
	if len(docs) > 0 {
		routes.Add(docsBase + "/tags")
	}
	if len(posts) > 0 {
		routes.Add(blogBase, blogBase+"/archive", blogBase+"/tags", blogBase+"/authors")
	}
	for _, p := range posts {
		routes.Add(p.Route)
		for _, t := range p.Meta.Tags {
			routes.Add(tagRoute(blogBase, t.Key))
		}
	}
	return routes
}

func (c *Checker) checkThemeLinks(routes sets.Set[string]) []Finding {
	var out []Finding
	for _, l := range c.site.ThemeConfig.Links() {
		if !site.IsInternalHref(l.Href) {
			continue
		}
		r, checkable := resolve(l.Href, c.site.BaseURL)
		if !checkable {
			c.logger.Debug("Link outside docs and blog not checked", logfields.Field(l.Field), logfields.Href(l.Href))
			continue
		}
		if !routes.Has(r) {
			out = append(out, Finding{
				Policy:   PolicyBrokenLinks,
				Severity: c.site.OnBrokenLinks,
				Source:   "themeConfig." + l.Field,
				Target:   l.Href,
				Message:  fmt.Sprintf("%q links to unknown route %s", l.Label, r),
			})
		}
	}
	return out
}

// checkMarkdownLinks reports .md/.mdx file links that do not exist under
// onBrokenMarkdownLinks, and absolute docs/blog URL links without a route
// under onBrokenLinks. Relative URL links resolve at runtime and are skipped.
func (c *Checker) checkMarkdownLinks(pages []*Page, root string, routes sets.Set[string]) []Finding {
	var out []Finding
	for _, p := range pages {
		for _, l := range markdown.ExtractLinks(p.Body) {
			if l.Kind == markdown.LinkKindImage || l.Kind == markdown.LinkKindReferenceDefinition || l.IsExternal() {
				continue
			}
			target := l.Destination
			if i := strings.IndexAny(target, "?#"); i >= 0 {
				target = target[:i]
			}
			if target == "" {
				continue
			}
			if unescaped, err := url.PathUnescape(target); err == nil {
				target = unescaped
			}

			if ext := strings.ToLower(filepath.Ext(target)); ext == ".md" || ext == ".mdx" {
				resolved := filepath.Join(filepath.Dir(p.File), filepath.FromSlash(target))
				if strings.HasPrefix(target, "/") {
					resolved = filepath.Join(root, filepath.FromSlash(target))
				}
				if exists, _ := afero.Exists(c.fs, resolved); !exists {
					out = append(out, Finding{
						Policy:   PolicyBrokenMarkdownLinks,
						Severity: c.site.OnBrokenMarkdownLinks,
						Source:   p.File,
						Target:   l.Destination,
						Message:  fmt.Sprintf("markdown link %s does not resolve to a file", l.Destination),
					})
				}
				continue
			}

			if !strings.HasPrefix(target, "/") {
				continue
			}
			if r, checkable := resolve(target, c.site.BaseURL); checkable && !routes.Has(r) {
				out = append(out, Finding{
					Policy:   PolicyBrokenLinks,
					Severity: c.site.OnBrokenLinks,
					Source:   p.File,
					Target:   l.Destination,
					Message:  fmt.Sprintf("link to unknown route %s", r),
				})
			}
		}
	}
	return out
}

// declaredKeys reads the top-level keys of a tags.yml or authors.yml file.
// A missing file returns nil, meaning nothing is declared.
func (c *Checker) declaredKeys(file string) (sets.Set[string], error) {
	data, err := afero.ReadFile(c.fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read declarations").WithContext("file", file).Build()
	}
	var entries map[string]any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapError(err, errors.CategoryLinks, "parse declarations").WithContext("file", file).Build()
	}
	keys := sets.New[string]()
	for k := range entries {
		keys.Add(k)
	}
	return keys, nil
}
