package site

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/kevinreber/sitecfg/internal/foundation"
)

var (
	severityValidator    = foundation.OneOf("", Severities)
	positionValidator    = foundation.OneOf("position", []Position{PositionLeft, PositionRight})
	footerStyleValidator = foundation.OneOf("style", []FooterStyle{FooterDark, FooterLight})
	feedTypeValidator    = foundation.OneOf("", []FeedType{FeedRSS, FeedAtom, FeedJSON})
	prismThemeValidator  = foundation.OneOf("theme", PrismThemes)
)

// Validate runs the schema and consistency checks on the record. All failures
// are collected; the builder itself remains the final authority.
func (c *Config) Validate() foundation.ValidationResult {
	chain := foundation.NewValidatorChain(
		validateIdentity,
		validateAddressing,
		validateLinkPolicy,
		validateI18n,
		validatePresets,
		validateThemeConfig,
	)
	return chain.Validate(*c)
}

func validateIdentity(c Config) foundation.ValidationResult {
	return foundation.Check(strings.TrimSpace(c.Title) != "", "title", "not_empty", "title cannot be empty")
}

func validateAddressing(c Config) foundation.ValidationResult {
	res := foundation.Valid()

	if u, err := url.Parse(c.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		res = res.Combine(foundation.Invalid(foundation.NewValidationError("url", "valid_url",
			fmt.Sprintf("url must be an absolute http(s) URL, got %q", c.URL))))
	} else if u.Path != "" && u.Path != "/" {
		res = res.Combine(foundation.Invalid(foundation.NewValidationError("url", "no_path",
			"url must not contain a path; put the path in baseUrl")))
	}

	res = res.Combine(validateBasePath(c.BaseURL).Prefixed("baseUrl"))

	for _, f := range [][2]string{{"organizationName", c.OrganizationName}, {"projectName", c.ProjectName}} {
		res = res.Combine(foundation.Check(!strings.ContainsAny(f[1], "/ \t"), f[0], "valid_name",
			fmt.Sprintf("%s must be a single path segment, got %q", f[0], f[1])))
	}
	return res
}

// validateBasePath checks the prefix shared by all generated routes.
func validateBasePath(base string) foundation.ValidationResult {
	switch {
	case base == "":
		return foundation.Invalid(foundation.NewValidationError("", "not_empty", "baseUrl cannot be empty"))
	case !strings.HasPrefix(base, "/"):
		return foundation.Invalid(foundation.NewValidationError("", "leading_slash", "baseUrl must start with /"))
	case !strings.HasSuffix(base, "/"):
		return foundation.Invalid(foundation.NewValidationError("", "trailing_slash", "baseUrl must end with /"))
	case strings.Contains(base, "//"):
		return foundation.Invalid(foundation.NewValidationError("", "clean_path", "baseUrl must not contain empty segments"))
	}
	return foundation.Valid()
}

func validateLinkPolicy(c Config) foundation.ValidationResult {
	return severityValidator(c.OnBrokenLinks).Prefixed("onBrokenLinks").
		Combine(severityValidator(c.OnBrokenMarkdownLinks).Prefixed("onBrokenMarkdownLinks"))
}

func validateI18n(c Config) foundation.ValidationResult {
	res := foundation.Check(len(c.I18n.Locales) > 0, "i18n.locales", "not_empty", "at least one locale must be enabled")

	seen := make(map[string]bool, len(c.I18n.Locales))
	for i, loc := range c.I18n.Locales {
		field := fieldIndex("i18n.locales", i)
		if _, err := language.Parse(loc); err != nil {
			res = res.Combine(foundation.Invalid(foundation.NewValidationError(field, "bcp47",
				fmt.Sprintf("locale %q is not a valid BCP 47 tag", loc))))
		}
		if seen[loc] {
			res = res.Combine(foundation.Invalid(foundation.NewValidationError(field, "unique",
				fmt.Sprintf("locale %q listed twice", loc))))
		}
		seen[loc] = true
	}

	if !seen[c.I18n.DefaultLocale] {
		res = res.Combine(foundation.Invalid(foundation.NewValidationError("i18n.defaultLocale", "member_of_locales",
			fmt.Sprintf("default locale %q must be one of the enabled locales %v", c.I18n.DefaultLocale, c.I18n.Locales))))
	}
	return res
}

func validatePresets(c Config) foundation.ValidationResult {
	res := foundation.Valid()
	for i, p := range c.Presets {
		field := fieldIndex("presets", i)
		res = res.Combine(foundation.Check(p.Name != "", field+".name", "not_empty", "preset name cannot be empty"))
		res = res.Combine(validatePresetOptions(p.Options).Prefixed(field + ".options"))
	}
	return res
}

func validatePresetOptions(o PresetOptions) foundation.ValidationResult {
	res := foundation.Valid()

	if o.Docs != nil {
		res = res.Combine(foundation.Check(o.Docs.SidebarPath != "", "docs.sidebarPath", "not_empty", "sidebarPath cannot be empty"))
		res = res.Combine(validateEditURL(o.Docs.EditURL).Prefixed("docs.editUrl"))
	}

	if b := o.Blog; b != nil {
		res = res.Combine(validateEditURL(b.EditURL).Prefixed("blog.editUrl"))
		for i, t := range b.FeedOptions.Type {
			res = res.Combine(feedTypeValidator(t).Prefixed(fieldIndex("blog.feedOptions.type", i)))
		}
		for _, p := range b.Policies() {
			if p.Severity != "" {
				res = res.Combine(severityValidator(p.Severity).Prefixed("blog." + p.Name))
			}
		}
	}

	if o.Theme != nil {
		res = res.Combine(foundation.Check(o.Theme.CustomCSS != "", "theme.customCss", "not_empty", "customCss cannot be empty"))
	}
	return res
}

func validateEditURL(raw string) foundation.ValidationResult {
	if raw == "" {
		return foundation.Valid()
	}
	u, err := url.Parse(raw)
	return foundation.Check(err == nil && u.IsAbs() && u.Host != "", "", "valid_url",
		fmt.Sprintf("edit URL must be absolute, got %q", raw))
}

func validateThemeConfig(c Config) foundation.ValidationResult {
	tc := c.ThemeConfig
	res := foundation.Valid()

	for i, item := range tc.Navbar.Items {
		if item.Position != "" {
			res = res.Combine(positionValidator(item.Position).Prefixed(fieldIndex("themeConfig.navbar.items", i)))
		}
	}
	for _, l := range tc.Links() {
		res = res.Combine(validateLink(l.Label, l.Href).Prefixed("themeConfig." + l.Field))
	}

	res = res.Combine(footerStyleValidator(tc.Footer.Style).Prefixed("themeConfig.footer"))
	res = res.Combine(prismThemeValidator(tc.Prism.Theme).Prefixed("themeConfig.prism"))
	res = res.Combine(foundation.OneOf("darkTheme", PrismThemes)(tc.Prism.DarkTheme).Prefixed("themeConfig.prism"))
	return res
}

func validateLink(label, href string) foundation.ValidationResult {
	return foundation.Check(strings.TrimSpace(label) != "", "label", "not_empty", "label cannot be empty").
		Combine(foundation.Check(IsValidHref(href), "href", "valid_href",
			fmt.Sprintf("href must be an absolute URL or start with /, got %q", href)))
}

// IsValidHref reports whether href is an absolute http(s) URL or a site path.
func IsValidHref(href string) bool {
	if strings.HasPrefix(href, "/") {
		return !strings.HasPrefix(href, "//")
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsInternalHref reports whether href points into the site itself.
func IsInternalHref(href string) bool {
	return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
}

func fieldIndex(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
