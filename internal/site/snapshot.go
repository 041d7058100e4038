package site

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
)

// Snapshot computes a stable hash of the fields that change generated routes
// or plugin behavior. The footer copyright is excluded so the yearly rollover
// does not look like a configuration change. Locale order is irrelevant.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) {
		h.Write([]byte(strings.Join(parts, "=")))
		h.Write([]byte{0})
	}

	w("url", c.URL)
	w("baseUrl", c.BaseURL)
	w("organizationName", c.OrganizationName)
	w("projectName", c.ProjectName)
	w("onBrokenLinks", string(c.OnBrokenLinks))
	w("onBrokenMarkdownLinks", string(c.OnBrokenMarkdownLinks))
	w("future.v4", strconv.FormatBool(c.Future.V4))

	locales := slices.Clone(c.I18n.Locales)
	slices.Sort(locales)
	w("i18n.defaultLocale", c.I18n.DefaultLocale)
	w("i18n.locales", strings.Join(locales, ","))

	for _, p := range c.Presets {
		w("preset", p.Name)
		if d := p.Options.Docs; d != nil {
			w("docs.sidebarPath", d.SidebarPath)
			w("docs.editUrl", d.EditURL)
		}
		if b := p.Options.Blog; b != nil {
			feeds := make([]string, len(b.FeedOptions.Type))
			for i, t := range b.FeedOptions.Type {
				feeds[i] = string(t)
			}
			slices.Sort(feeds)
			w("blog.feed", strings.Join(feeds, ","), strconv.FormatBool(b.FeedOptions.XSLT))
			w("blog.showReadingTime", strconv.FormatBool(b.ShowReadingTime))
			w("blog.editUrl", b.EditURL)
			for _, pol := range b.Policies() {
				w("blog."+pol.Name, string(pol.Severity))
			}
		}
		if t := p.Options.Theme; t != nil {
			w("theme.customCss", t.CustomCSS)
		}
	}

	for _, l := range c.ThemeConfig.Links() {
		w(l.Field, l.Label, l.Href)
	}
	w("prism", string(c.ThemeConfig.Prism.Theme), string(c.ThemeConfig.Prism.DarkTheme))
	return hex.EncodeToString(h.Sum(nil))
}
