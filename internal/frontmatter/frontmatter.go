// Package frontmatter splits YAML frontmatter from Markdown documents and
// decodes the keys the docs and blog plugins route on.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len("---")
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Meta holds the frontmatter keys that affect routing and blog policies.
// Unknown keys are ignored.
type Meta struct {
	ID       string  `yaml:"id"`
	Slug     string  `yaml:"slug"`
	Title    string  `yaml:"title"`
	Draft    bool    `yaml:"draft"`
	Unlisted bool    `yaml:"unlisted"`
	Tags     Entries `yaml:"tags"`
	Authors  Entries `yaml:"authors"`

	// Author is the legacy single inline author field.
	Author string `yaml:"author"`
}

// Entry is a tag or author reference. Keys point into the shared tags.yml /
// authors.yml files; Inline entries are objects declared in place.
type Entry struct {
	Key    string
	Inline bool
}

// Entries accepts a single key, a single inline object, or a list of either.
type Entries []Entry

func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*e = Entry{Key: value.Value}
		return nil
	case yaml.MappingNode:
		var obj map[string]any
		if err := value.Decode(&obj); err != nil {
			return err
		}
		out := Entry{Inline: true}
		for _, k := range []string{"key", "label", "name"} {
			if s, ok := obj[k].(string); ok && s != "" {
				out.Key = s
				break
			}
		}
		*e = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a key or an object", value.Line)
	}
}

func (es *Entries) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		var one Entry
		if err := value.Decode(&one); err != nil {
			return err
		}
		*es = Entries{one}
		return nil
	}
	out := make(Entries, 0, len(value.Content))
	for _, item := range value.Content {
		var e Entry
		if err := item.Decode(&e); err != nil {
			return err
		}
		out = append(out, e)
	}
	*es = out
	return nil
}

// Decode parses raw frontmatter (without delimiters).
func Decode(frontmatter []byte) (Meta, error) {
	var m Meta
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(frontmatter, &m); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// Parse splits content and decodes its frontmatter.
func Parse(content []byte) (Meta, []byte, error) {
	fm, body, _, err := Split(content)
	if err != nil {
		return Meta{}, nil, err
	}
	m, err := Decode(fm)
	if err != nil {
		return Meta{}, nil, err
	}
	return m, body, nil
}
