// Package markdown extracts the parts of a Markdown body the site checks
// care about, using goldmark's CommonMark parser.
package markdown

import (
	"bytes"
	"regexp"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// ExtractLinks parses a Markdown body (frontmatter already removed) and
// returns its link destinations in document order. Code spans and code
// blocks are skipped.
func ExtractLinks(body []byte) []Link {
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Reference-style usages are resolved to Link nodes by the parser.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	return links
}

var (
	htmlTruncate = regexp.MustCompile(`<!--\s*truncate\s*-->`)
	mdxTruncate  = regexp.MustCompile(`^\{/\*\s*truncate\s*\*/\}$`)
)

// HasTruncateMarker reports whether the body contains the blog excerpt
// marker, either as an HTML comment or as an MDX comment paragraph.
func HasTruncateMarker(body []byte) bool {
	root := md.Parser().Parse(text.NewReader(body))

	found := false
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering || found {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.HTMLBlock:
			found = htmlTruncate.Match(blockText(node, body))
		case *gmast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				buf.Write(seg.Value(body))
			}
			found = htmlTruncate.Match(buf.Bytes())
		case *gmast.Paragraph:
			found = mdxTruncate.Match(bytes.TrimSpace(blockText(node, body)))
		}
		if found {
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return found
}

func blockText(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	if hb, ok := n.(*gmast.HTMLBlock); ok && hb.HasClosure() {
		buf.Write(hb.ClosureLine.Value(source))
	}
	return buf.Bytes()
}
