package site

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// PresetClassic is the preset bundling the docs, blog and theme plugins.
const PresetClassic = "classic"

// Preset is a named plugin bundle. It encodes as a two-element [name, options]
// tuple, the shape the builder's presets list expects.
type Preset struct {
	Name    string
	Options PresetOptions
}

// PresetOptions configures the plugins inside the classic preset.
type PresetOptions struct {
	Docs  *DocsOptions  `json:"docs,omitempty" yaml:"docs,omitempty"`
	Blog  *BlogOptions  `json:"blog,omitempty" yaml:"blog,omitempty"`
	Theme *ThemeOptions `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// DocsOptions configures the documentation plugin.
type DocsOptions struct {
	SidebarPath string `json:"sidebarPath" yaml:"sidebarPath"`
	EditURL     string `json:"editUrl,omitempty" yaml:"editUrl,omitempty"`
}

// BlogOptions configures the blog plugin.
type BlogOptions struct {
	ShowReadingTime        bool        `json:"showReadingTime" yaml:"showReadingTime"`
	FeedOptions            FeedOptions `json:"feedOptions" yaml:"feedOptions"`
	EditURL                string      `json:"editUrl,omitempty" yaml:"editUrl,omitempty"`
	OnInlineTags           Severity    `json:"onInlineTags,omitempty" yaml:"onInlineTags,omitempty"`
	OnInlineAuthors        Severity    `json:"onInlineAuthors,omitempty" yaml:"onInlineAuthors,omitempty"`
	OnUntruncatedBlogPosts Severity    `json:"onUntruncatedBlogPosts,omitempty" yaml:"onUntruncatedBlogPosts,omitempty"`
}

// FeedOptions selects the generated feed formats.
type FeedOptions struct {
	Type []FeedType `json:"type" yaml:"type"`
	XSLT bool       `json:"xslt" yaml:"xslt"`
}

// ThemeOptions configures the classic theme.
type ThemeOptions struct {
	CustomCSS string `json:"customCss" yaml:"customCss"`
}

// MarshalJSON encodes the preset as [name, options].
func (p Preset) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Name, p.Options})
}

// UnmarshalJSON accepts either [name, options] or a bare preset name.
func (p *Preset) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Preset{Name: name}
		return nil
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("preset must be a name or a [name, options] pair: %w", err)
	}
	if len(tuple) == 0 || len(tuple) > 2 {
		return fmt.Errorf("preset tuple must have 1 or 2 elements, got %d", len(tuple))
	}

	var out Preset
	if err := json.Unmarshal(tuple[0], &out.Name); err != nil {
		return fmt.Errorf("preset name: %w", err)
	}
	if len(tuple) == 2 {
		if err := json.Unmarshal(tuple[1], &out.Options); err != nil {
			return fmt.Errorf("preset %q options: %w", out.Name, err)
		}
	}
	*p = out
	return nil
}

// MarshalYAML encodes the preset as a two-item sequence.
func (p Preset) MarshalYAML() (any, error) {
	return []any{p.Name, p.Options}, nil
}

// UnmarshalYAML accepts either a sequence [name, options] or a scalar name.
func (p *Preset) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = Preset{Name: value.Value}
		return nil
	case yaml.SequenceNode:
		if len(value.Content) == 0 || len(value.Content) > 2 {
			return fmt.Errorf("line %d: preset sequence must have 1 or 2 items, got %d", value.Line, len(value.Content))
		}
		var out Preset
		if err := value.Content[0].Decode(&out.Name); err != nil {
			return fmt.Errorf("preset name: %w", err)
		}
		if len(value.Content) == 2 {
			if err := value.Content[1].Decode(&out.Options); err != nil {
				return fmt.Errorf("preset %q options: %w", out.Name, err)
			}
		}
		*p = out
		return nil
	default:
		return fmt.Errorf("line %d: preset must be a name or a [name, options] sequence", value.Line)
	}
}

func (p Preset) clone() Preset {
	out := Preset{Name: p.Name}
	if p.Options.Docs != nil {
		docs := *p.Options.Docs
		out.Options.Docs = &docs
	}
	if p.Options.Blog != nil {
		blog := *p.Options.Blog
		blog.FeedOptions.Type = slices.Clone(p.Options.Blog.FeedOptions.Type)
		out.Options.Blog = &blog
	}
	if p.Options.Theme != nil {
		theme := *p.Options.Theme
		out.Options.Theme = &theme
	}
	return out
}

// NamedPolicy pairs a blog policy key with its configured severity.
type NamedPolicy struct {
	Name     string
	Severity Severity
}

// Policies lists the blog content policies in a fixed order.
func (b *BlogOptions) Policies() []NamedPolicy {
	return []NamedPolicy{
		{Name: "onInlineTags", Severity: b.OnInlineTags},
		{Name: "onInlineAuthors", Severity: b.OnInlineAuthors},
		{Name: "onUntruncatedBlogPosts", Severity: b.OnUntruncatedBlogPosts},
	}
}
