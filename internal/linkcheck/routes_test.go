package linkcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevinreber/sitecfg/internal/frontmatter"
)

func TestDocRoute(t *testing.T) {
	tests := []struct {
		rel  string
		meta frontmatter.Meta
		want string
	}{
		{"tmux-setup.md", frontmatter.Meta{}, "/docs/tmux-setup"},
		{"01-intro.md", frontmatter.Meta{}, "/docs/intro"},
		{"02-guides/03-plugins.mdx", frontmatter.Meta{}, "/docs/guides/plugins"},
		{"guides/index.md", frontmatter.Meta{}, "/docs/guides"},
		{"guides/README.md", frontmatter.Meta{}, "/docs/guides"},
		{"guides/guides.md", frontmatter.Meta{}, "/docs/guides"},
		{"index.md", frontmatter.Meta{}, "/docs"},
		{"guides/x.md", frontmatter.Meta{ID: "custom"}, "/docs/guides/custom"},
		{"guides/x.md", frontmatter.Meta{Slug: "/top"}, "/docs/top"},
		{"guides/x.md", frontmatter.Meta{Slug: "nested/y"}, "/docs/guides/nested/y"},
		{"2023-01-01-notes.md", frontmatter.Meta{}, "/docs/2023-01-01-notes"},
		{"1.0-release.md", frontmatter.Meta{}, "/docs/1.0-release"},
		{"1-2-3-steps.md", frontmatter.Meta{}, "/docs/1-2-3-steps"},
		{"01--intro.md", frontmatter.Meta{}, "/docs/intro"},
		{"01 - intro.md", frontmatter.Meta{}, "/docs/intro"},
		{"01-.md", frontmatter.Meta{}, "/docs/01-"},
		{"2023-01-01-archive/01-notes.md", frontmatter.Meta{}, "/docs/2023-01-01-archive/notes"},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, docRoute(tt.rel, tt.meta))
		})
	}
}

func TestBlogRoute(t *testing.T) {
	tests := []struct {
		rel  string
		meta frontmatter.Meta
		want string
	}{
		{"2024-05-01-hello.md", frontmatter.Meta{}, "/blog/2024/05/01/hello"},
		{"2024/05/01/hello.md", frontmatter.Meta{}, "/blog/2024/05/01/hello"},
		{"2024-05-01-trip/index.md", frontmatter.Meta{}, "/blog/2024/05/01/trip"},
		{"welcome.md", frontmatter.Meta{}, "/blog/welcome"},
		{"welcome/index.md", frontmatter.Meta{}, "/blog/welcome"},
		{"posts/2024-05-01-x.md", frontmatter.Meta{}, "/blog/2024/05/01/posts/x"},
		{"2024-1-5-x.md", frontmatter.Meta{}, "/blog/2024/1/5/x"},
		{"2024-05-01.md", frontmatter.Meta{}, "/blog/2024/05/01"},
		{"welcome.md", frontmatter.Meta{Slug: "hi"}, "/blog/hi"},
		{"welcome.md", frontmatter.Meta{Slug: "/hi"}, "/blog/hi"},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, blogRoute(tt.rel, tt.meta))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		href      string
		want      string
		checkable bool
	}{
		{"/docs/tmux-setup", "/docs/tmux-setup", true},
		{"/docs/tmux-setup/", "/docs/tmux-setup", true},
		{"/docs/tmux-setup#keys", "/docs/tmux-setup", true},
		{"/tmux-configs/docs/tmux-setup?x=1", "/docs/tmux-setup", true},
		{"/blog", "/blog", true},
		{"/img/logo.png", "/img/logo.png", false},
		{"/docsearch", "/docsearch", false},
		{"#top", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, ok := resolve(tt.href, "/tmux-configs/")
			assert.Equal(t, tt.checkable, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
