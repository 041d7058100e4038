package config

import (
	"bytes"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/render"
	"github.com/kevinreber/sitecfg/internal/site"
)

const initHeader = `# sitecfg overlay. Keys under "site" replace the published defaults;
# lists (presets, navbar items, locales) replace the default list entirely.
# ${VAR} references are expanded from the environment and .env files.
`

// exampleSite is the subset of the record written by Init.
type exampleSite struct {
	Title                 string        `yaml:"title"`
	Tagline               string        `yaml:"tagline"`
	URL                   string        `yaml:"url"`
	BaseURL               string        `yaml:"baseUrl"`
	OrganizationName      string        `yaml:"organizationName"`
	ProjectName           string        `yaml:"projectName"`
	OnBrokenLinks         site.Severity `yaml:"onBrokenLinks"`
	OnBrokenMarkdownLinks site.Severity `yaml:"onBrokenMarkdownLinks"`
	Presets               []site.Preset `yaml:"presets,omitempty"`
}

type exampleFile struct {
	Version string        `yaml:"version"`
	Site    exampleSite   `yaml:"site"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Docs    DocsConfig    `yaml:"docs"`
}

// Init writes an example overlay to configPath. When remote is non-nil its
// addressing and edit URLs are written instead of the published values.
func Init(configPath string, force bool, now time.Time, remote *Remote) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	s := site.Default(now)
	example := exampleFile{
		Version: CurrentVersion,
		Output:  OutputConfig{Path: render.FormatTS.DefaultFileName(), Format: render.FormatTS},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Docs:    DocsConfig{Dir: "docs", BlogDir: "blog"},
	}
	if remote != nil {
		remote.Apply(&s)
		example.Site.Presets = s.Presets
	}
	example.Site.Title = s.Title
	example.Site.Tagline = s.Tagline
	example.Site.URL = s.URL
	example.Site.BaseURL = s.BaseURL
	example.Site.OrganizationName = s.OrganizationName
	example.Site.ProjectName = s.ProjectName
	example.Site.OnBrokenLinks = s.OnBrokenLinks
	example.Site.OnBrokenMarkdownLinks = s.OnBrokenMarkdownLinks

	var buf bytes.Buffer
	buf.WriteString(initHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&example); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal example configuration").Build()
	}
	if err := enc.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal example configuration").Build()
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write configuration file").
			WithContext("path", configPath).Build()
	}
	return nil
}
