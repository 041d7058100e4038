package markdown

// LinkKind classifies where a link destination came from.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a Markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// IsExternal reports whether the destination carries a URL scheme or is
// protocol-relative.
func (l Link) IsExternal() bool {
	d := l.Destination
	for i := 0; i < len(d); i++ {
		switch c := d[i]; {
		case c == ':':
			return i > 0
		case c == '/' || c == '?' || c == '#':
			return i == 0 && len(d) > 1 && d[1] == '/'
		}
	}
	return false
}
