package config

import (
	"fmt"
	"strings"

	"github.com/kevinreber/sitecfg/internal/render"
	"github.com/kevinreber/sitecfg/internal/site"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

func (r *NormalizationResult) changed(field string, from, to any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to))
}

func (r *NormalizationResult) unknown(field, value, def string) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def))
}

// NormalizeConfig canonicalizes enumerated fields in place before defaults
// are applied. Site values that cannot be parsed are left untouched so that
// validation reports them.
func NormalizeConfig(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	c.Version = strings.TrimSpace(c.Version)
	normalizeLogging(&c.Logging, res)
	normalizeOutput(&c.Output, res)
	normalizeSite(&c.Site, res)
	c.Docs.Exclude = trimStringSlice(c.Docs.Exclude)
	return res
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if raw := string(l.Level); strings.TrimSpace(raw) != "" {
		if _, err := logLevelNormalizer.NormalizeWithError(raw); err != nil {
			res.unknown("logging.level", raw, string(LogLevelInfo))
		}
		if lvl := NormalizeLogLevel(raw); lvl != l.Level {
			res.changed("logging.level", l.Level, lvl)
			l.Level = lvl
		}
	}
	if raw := string(l.Format); strings.TrimSpace(raw) != "" {
		if _, err := logFormatNormalizer.NormalizeWithError(raw); err != nil {
			res.unknown("logging.format", raw, string(LogFormatText))
		}
		if f := NormalizeLogFormat(raw); f != l.Format {
			res.changed("logging.format", l.Format, f)
			l.Format = f
		}
	}
}

func normalizeOutput(o *OutputConfig, res *NormalizationResult) {
	o.Path = strings.TrimSpace(o.Path)
	if o.Format == "" {
		return
	}
	if f, err := render.ParseFormat(string(o.Format)); err == nil && f != o.Format {
		res.changed("output.format", o.Format, f)
		o.Format = f
	}
}

func normalizeSite(c *site.Config, res *NormalizationResult) {
	c.OnBrokenLinks = normalizeEnum("site.onBrokenLinks", c.OnBrokenLinks, site.ParseSeverity, res)
	c.OnBrokenMarkdownLinks = normalizeEnum("site.onBrokenMarkdownLinks", c.OnBrokenMarkdownLinks, site.ParseSeverity, res)

	for i := range c.Presets {
		blog := c.Presets[i].Options.Blog
		if blog == nil {
			continue
		}
		prefix := fmt.Sprintf("site.presets[%d].options.blog.", i)
		blog.OnInlineTags = normalizeEnum(prefix+"onInlineTags", blog.OnInlineTags, site.ParseSeverity, res)
		blog.OnInlineAuthors = normalizeEnum(prefix+"onInlineAuthors", blog.OnInlineAuthors, site.ParseSeverity, res)
		blog.OnUntruncatedBlogPosts = normalizeEnum(prefix+"onUntruncatedBlogPosts", blog.OnUntruncatedBlogPosts, site.ParseSeverity, res)
		for j, ft := range blog.FeedOptions.Type {
			blog.FeedOptions.Type[j] = normalizeEnum(fmt.Sprintf("%sfeedOptions.type[%d]", prefix, j), ft, site.ParseFeedType, res)
		}
	}

	tc := &c.ThemeConfig
	for i, item := range tc.Navbar.Items {
		tc.Navbar.Items[i].Position = normalizeEnum(fmt.Sprintf("site.themeConfig.navbar.items[%d].position", i), item.Position, site.ParsePosition, res)
	}
	tc.Footer.Style = normalizeEnum("site.themeConfig.footer.style", tc.Footer.Style, site.ParseFooterStyle, res)
	tc.Prism.Theme = normalizeEnum("site.themeConfig.prism.theme", tc.Prism.Theme, site.ParsePrismTheme, res)
	tc.Prism.DarkTheme = normalizeEnum("site.themeConfig.prism.darkTheme", tc.Prism.DarkTheme, site.ParsePrismTheme, res)

	c.I18n.Locales = trimStringSlice(c.I18n.Locales)
	c.I18n.DefaultLocale = strings.TrimSpace(c.I18n.DefaultLocale)
}

// normalizeEnum returns the canonical spelling of v, or v unchanged when it is
// empty or unknown.
func normalizeEnum[T ~string](field string, v T, parse func(string) (T, error), res *NormalizationResult) T {
	if v == "" {
		return v
	}
	canonical, err := parse(string(v))
	if err != nil || canonical == v {
		return v
	}
	res.changed(field, v, canonical)
	return canonical
}

// trimStringSlice removes empty entries (after trimming whitespace) from a string slice.
// Does not dedupe or sort. Use this for order-sensitive configuration fields.
func trimStringSlice(in []string) []string {
	if len(in) == 0 {
		return in
	}

	out := make([]string, 0, len(in))
	for _, p := range in {
		if tp := strings.TrimSpace(p); tp != "" {
			out = append(out, tp)
		}
	}
	return out
}
