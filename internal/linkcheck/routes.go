package linkcheck

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kevinreber/sitecfg/internal/frontmatter"
)

const (
	docsBase = "/docs"
	blogBase = "/blog"
)

var (
	// numberPrefix needs a non-separator suffix; "01--intro" routes as "intro".
	numberPrefix = regexp.MustCompile(`^\d+\s*[-_.]+\s*([^-_.\s].*)$`)

	// Date- and version-like names ("2023-01-01-notes", "1.0-release") keep their digits.
	ignoredNumberPrefix = regexp.MustCompile(`^(?:\d{2,4}[-_.]\d{2,4}[-_.]\d{2,4}|\d+[-_.]\d+(?:[-_.]\d+)?)`)

	// datePath finds the last date in a blog path; the folder before it moves
	// after the date in the route.
	datePath = regexp.MustCompile(`^(.*)(\d{4}[-/]\d{1,2}[-/]\d{1,2})[-/]?(.*?)(?:/index)?$`)
)

// routeFunc maps a content file, relative to its plugin directory, to a route.
type routeFunc func(rel string, meta frontmatter.Meta) string

// docRoute follows the docs plugin: number prefixes are dropped, index and
// README files route to their directory, id replaces the file name and slug
// replaces the whole path.
func docRoute(rel string, meta frontmatter.Meta) string {
	dir, name := splitRel(rel)
	dir = stripNumberPrefixes(dir)

	if meta.Slug != "" {
		if strings.HasPrefix(meta.Slug, "/") {
			return cleanRoute(docsBase + meta.Slug)
		}
		return cleanRoute(path.Join(docsBase, dir, meta.Slug))
	}

	if meta.ID != "" {
		name = meta.ID
	} else {
		name = stripNumberPrefix(name)
		if isIndexName(name, dir) {
			name = ""
		}
	}
	return cleanRoute(path.Join(docsBase, dir, name))
}

// blogRoute follows the blog plugin: a date in the file or folder name
// becomes /YYYY/MM/DD/ as written, any folder before the date follows it, and
// slug is relative to the blog root.
func blogRoute(rel string, meta frontmatter.Meta) string {
	if meta.Slug != "" {
		return cleanRoute(path.Join(blogBase, meta.Slug))
	}

	dir, name := splitRel(rel)
	full := path.Join(dir, name)

	if m := datePath.FindStringSubmatch(full); m != nil {
		return cleanRoute(path.Join(blogBase, strings.ReplaceAll(m[2], "-", "/"), m[1]+m[3]))
	}
	if strings.EqualFold(name, "index") && dir != "" {
		full = dir
	}
	return cleanRoute(path.Join(blogBase, full))
}

func splitRel(rel string) (dir, name string) {
	dir, file := path.Split(filepath.ToSlash(rel))
	return strings.TrimSuffix(dir, "/"), strings.TrimSuffix(file, path.Ext(file))
}

func stripNumberPrefixes(dir string) string {
	if dir == "" {
		return dir
	}
	parts := strings.Split(dir, "/")
	for i, p := range parts {
		parts[i] = stripNumberPrefix(p)
	}
	return strings.Join(parts, "/")
}

func stripNumberPrefix(name string) string {
	if ignoredNumberPrefix.MatchString(name) {
		return name
	}
	if m := numberPrefix.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

func isIndexName(name, dir string) bool {
	return strings.EqualFold(name, "index") ||
		strings.EqualFold(name, "readme") ||
		(dir != "" && strings.EqualFold(name, path.Base(dir)))
}

func cleanRoute(r string) string {
	return path.Clean("/" + r)
}

func tagRoute(base, tag string) string {
	return base + "/tags/" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), " ", "-")
}

// resolve turns an internal href into a route, stripping the query, fragment
// and site base path. Only routes under the docs and blog roots can be
// checked locally.
func resolve(href, basePath string) (string, bool) {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if href == "" {
		return "", false
	}
	if basePath != "/" && strings.HasPrefix(href, basePath) {
		href = "/" + strings.TrimPrefix(href, basePath)
	}
	r := cleanRoute(href)
	for _, base := range []string{docsBase, blogBase} {
		if r == base || strings.HasPrefix(r, base+"/") {
			return r, true
		}
	}
	return r, false
}
