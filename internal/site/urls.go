package site

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
)

// RoutePath prefixes route with the base path, producing the path the page is
// served under ("/docs/x" -> "/tmux-configs/docs/x").
func (c *Config) RoutePath(route string) string {
	base := "/" + strings.Trim(c.BaseURL, "/")
	rest := strings.TrimLeft(route, "/")
	if base == "/" {
		return "/" + rest
	}
	if rest == "" {
		return base + "/"
	}
	return base + "/" + rest
}

// CanonicalURL returns the absolute public URL of route.
func (c *Config) CanonicalURL(route string) (string, error) {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return "", errors.ValidationError("site url is not absolute").
			WithContext("url", c.URL).
			WithCause(err).
			Build()
	}

	routeURL, err := url.Parse(route)
	if err != nil {
		return "", errors.ValidationError("route is not a valid URL path").
			WithContext("route", route).
			WithCause(err).
			Build()
	}
	if routeURL.IsAbs() {
		return route, nil
	}

	out := url.URL{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     c.RoutePath(routeURL.Path),
		RawQuery: routeURL.RawQuery,
		Fragment: routeURL.Fragment,
	}
	return out.String(), nil
}

// PagesURL is the GitHub Pages address implied by organizationName and baseUrl.
func (c *Config) PagesURL() string {
	if c.OrganizationName == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.github.io%s", strings.ToLower(c.OrganizationName), c.RoutePath(""))
}

// DocsEditURL is the edit link the docs plugin shows for a file under docs/.
func (c *Config) DocsEditURL(docPath string) string {
	p, ok := c.ClassicPreset()
	if !ok || p.Options.Docs == nil {
		return ""
	}
	return joinEditURL(p.Options.Docs.EditURL, "docs", docPath)
}

// BlogEditURL is the edit link the blog plugin shows for a file under blog/.
func (c *Config) BlogEditURL(postPath string) string {
	p, ok := c.ClassicPreset()
	if !ok || p.Options.Blog == nil {
		return ""
	}
	return joinEditURL(p.Options.Blog.EditURL, "blog", postPath)
}

func joinEditURL(base, dir, rel string) string {
	if base == "" || rel == "" {
		return ""
	}
	rel = path.Clean("/" + strings.ReplaceAll(rel, "\\", "/"))
	return strings.TrimSuffix(base, "/") + "/" + dir + rel
}
