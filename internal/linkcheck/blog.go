package linkcheck

import (
	"fmt"

	"github.com/kevinreber/sitecfg/internal/markdown"
	"github.com/kevinreber/sitecfg/internal/site"
	"github.com/kevinreber/sitecfg/internal/util/sets"
)

// policySeverity falls back to the builder's default of warn.
func policySeverity(s site.Severity) site.Severity {
	if s == "" {
		return site.SeverityWarn
	}
	return s
}

// checkBlogPosts applies the blog content policies. A tag is inline when it is
// declared in place or, with a tags.yml present, missing from it. An author is
// inline when declared in place.
func checkBlogPosts(posts []*Page, opts *site.BlogOptions, declaredTags sets.Set[string]) []Finding {
	var out []Finding
	for _, p := range posts {
		if !markdown.HasTruncateMarker(p.Body) {
			out = append(out, Finding{
				Policy:   PolicyUntruncatedPosts,
				Severity: policySeverity(opts.OnUntruncatedBlogPosts),
				Source:   p.File,
				Message:  "blog post has no truncate marker",
			})
		}

		for _, t := range p.Meta.Tags {
			if !t.Inline && (declaredTags == nil || declaredTags.Has(t.Key)) {
				continue
			}
			msg := fmt.Sprintf("tag %q is not declared in tags.yml", t.Key)
			if t.Inline {
				msg = fmt.Sprintf("tag %q is declared inline", t.Key)
			}
			out = append(out, Finding{
				Policy:   PolicyInlineTags,
				Severity: policySeverity(opts.OnInlineTags),
				Source:   p.File,
				Target:   t.Key,
				Message:  msg,
			})
		}

		for _, a := range p.Meta.Authors {
			if a.Inline {
				out = append(out, inlineAuthor(p, opts, a.Key))
			}
		}
		if p.Meta.Author != "" {
			out = append(out, inlineAuthor(p, opts, p.Meta.Author))
		}
	}
	return out
}

func inlineAuthor(p *Page, opts *site.BlogOptions, name string) Finding {
	return Finding{
		Policy:   PolicyInlineAuthors,
		Severity: policySeverity(opts.OnInlineAuthors),
		Source:   p.File,
		Target:   name,
		Message:  fmt.Sprintf("author %q is declared inline instead of in authors.yml", name),
	}
}
