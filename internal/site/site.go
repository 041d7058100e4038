// Package site defines the Site Configuration record handed to the Docusaurus
// entry point, together with its validation rules and URL derivations.
//
// The record is a plain value. Default builds the published configuration;
// everything else reads it. Field tags use the key names the external builder
// expects so the same struct encodes to docusaurus-compatible JSON and YAML.
package site

import "slices"

// Config is the single settings record read by the static-site generator.
type Config struct {
	// Identity
	Title   string `json:"title" yaml:"title"`
	Tagline string `json:"tagline" yaml:"tagline"`
	Favicon string `json:"favicon" yaml:"favicon"`

	Future Future `json:"future" yaml:"future"`

	// Addressing
	URL              string `json:"url" yaml:"url"`
	BaseURL          string `json:"baseUrl" yaml:"baseUrl"`
	OrganizationName string `json:"organizationName" yaml:"organizationName"`
	ProjectName      string `json:"projectName" yaml:"projectName"`

	// Link-integrity policy. The two settings are deliberately separate fields.
	OnBrokenLinks         Severity `json:"onBrokenLinks" yaml:"onBrokenLinks"`
	OnBrokenMarkdownLinks Severity `json:"onBrokenMarkdownLinks" yaml:"onBrokenMarkdownLinks"`

	I18n        I18n        `json:"i18n" yaml:"i18n"`
	Presets     []Preset    `json:"presets" yaml:"presets"`
	ThemeConfig ThemeConfig `json:"themeConfig" yaml:"themeConfig"`
}

// Future holds opt-in compatibility flags for upcoming builder releases.
type Future struct {
	V4 bool `json:"v4" yaml:"v4"`
}

// I18n selects the default locale and the enabled locale set.
type I18n struct {
	DefaultLocale string   `json:"defaultLocale" yaml:"defaultLocale"`
	Locales       []string `json:"locales" yaml:"locales"`
}

// ClassicPreset returns the classic preset, if configured.
func (c *Config) ClassicPreset() (*Preset, bool) {
	for i := range c.Presets {
		if c.Presets[i].Name == PresetClassic {
			return &c.Presets[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the record.
func (c Config) Clone() Config {
	out := c
	out.I18n.Locales = slices.Clone(c.I18n.Locales)

	if c.Presets != nil {
		out.Presets = make([]Preset, len(c.Presets))
		for i, p := range c.Presets {
			out.Presets[i] = p.clone()
		}
	}

	out.ThemeConfig = c.ThemeConfig.clone()
	return out
}
