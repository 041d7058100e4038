// Package config loads the sitecfg.yaml overlay and resolves it into the site
// record plus the tool's own output, logging and content settings.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/logfields"
	"github.com/kevinreber/sitecfg/internal/render"
	"github.com/kevinreber/sitecfg/internal/site"
)

const (
	// CurrentVersion is the only overlay schema version understood.
	CurrentVersion = "1"
	// DefaultPath is the overlay file looked up when none is given.
	DefaultPath = "sitecfg.yaml"
)

// Config is the resolved configuration.
type Config struct {
	Version string
	Site    site.Config
	Output  OutputConfig
	Logging LoggingConfig
	Docs    DocsConfig

	// Path is the overlay file this configuration came from, empty for defaults.
	Path string
}

// OutputConfig selects where and how the rendered record is written.
type OutputConfig struct {
	Path   string        `yaml:"path,omitempty"`
	Format render.Format `yaml:"format,omitempty"`

	// explicitPath records that the overlay named the path itself.
	explicitPath bool
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// DocsConfig locates the content directories checked for link integrity.
type DocsConfig struct {
	Dir     string `yaml:"dir,omitempty"`
	BlogDir string `yaml:"blog_dir,omitempty"`
	// Exclude adds glob patterns to the builder's default content exclusions.
	Exclude []string `yaml:"exclude,omitempty"`
}

// file is the on-disk overlay. The site section is kept as a node so that only
// the keys present in it replace published defaults.
type file struct {
	Version string        `yaml:"version"`
	Site    yaml.Node     `yaml:"site"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Docs    DocsConfig    `yaml:"docs"`
}

// Default returns the configuration used when no overlay file exists.
// Relative paths are resolved against baseDir.
func Default(now time.Time, baseDir string) *Config {
	cfg := &Config{Version: CurrentVersion, Site: site.Default(now)}
	applyDefaults(cfg, baseDir)
	return cfg
}

// Load reads the overlay at configPath and resolves it on top of the
// published defaults: env expansion, parse, normalize, defaults, validate.
func Load(configPath string, now time.Time) (*Config, error) {
	loadEnvFiles(filepath.Dir(configPath))

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithCause(err).WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration file").
			WithContext("path", configPath).Build()
	}

	cfg, err := parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))), now)
	if err != nil {
		return nil, err
	}
	cfg.Path = configPath

	res := NormalizeConfig(cfg)
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", logfields.Path(configPath), slog.String("detail", w))
	}

	applyDefaults(cfg, filepath.Dir(configPath))

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional behaves like Load but falls back to Default when the file is
// missing.
func LoadOptional(configPath string, now time.Time) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Debug("No overlay file, using published defaults", logfields.Path(configPath))
		loadEnvFiles(filepath.Dir(configPath))
		cfg := Default(now, filepath.Dir(configPath))
		if err := ValidateConfig(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(configPath, now)
}

func parse(r io.Reader, now time.Time) (*Config, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse configuration").Build()
	}

	cfg := &Config{
		Version: f.Version,
		Site:    site.Default(now),
		Output:  f.Output,
		Logging: f.Logging,
		Docs:    f.Docs,
	}
	if f.Site.Kind != 0 {
		if err := overlaySite(&cfg.Site, &f.Site); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// overlaySite decodes node onto base. Mappings merge key by key, sequences
// (presets, navbar items, locales) replace the default list.
func overlaySite(base *site.Config, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.ConfigError("site must be a mapping").WithContext("line", node.Line).Build()
	}
	raw, err := yaml.Marshal(node)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "re-encode site section").Build()
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(base); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "parse site section").Build()
	}
	return nil
}

func applyDefaults(cfg *Config, baseDir string) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}

	if cfg.Output.Format == "" {
		if f, ok := render.FormatFromPath(cfg.Output.Path); ok {
			cfg.Output.Format = f
		} else {
			cfg.Output.Format = render.FormatTS
		}
	}
	cfg.Output.explicitPath = cfg.Output.Path != ""
	if cfg.Output.Path == "" {
		cfg.Output.Path = cfg.Output.Format.DefaultFileName()
	}
	if cfg.Output.Path != "-" {
		cfg.Output.Path = resolve(baseDir, cfg.Output.Path)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}

	if cfg.Docs.Dir == "" {
		cfg.Docs.Dir = "docs"
	}
	if cfg.Docs.BlogDir == "" {
		cfg.Docs.BlogDir = "blog"
	}
	cfg.Docs.Dir = resolve(baseDir, cfg.Docs.Dir)
	cfg.Docs.BlogDir = resolve(baseDir, cfg.Docs.BlogDir)
}

// PathFor returns where output in format f goes when f overrides
// output.format. A path the overlay set explicitly is kept, unless its
// extension names a different format. Otherwise the builder's default file
// name for f is used next to the default output.
func (o OutputConfig) PathFor(f render.Format) (string, error) {
	if f == "" || f == o.Format {
		return o.Path, nil
	}
	if !o.explicitPath {
		return filepath.Join(filepath.Dir(o.Path), f.DefaultFileName()), nil
	}
	if inferred, ok := render.FormatFromPath(o.Path); ok && inferred != f {
		return "", errors.ConfigError("output.path extension contradicts the requested format").
			WithContext("path", o.Path).
			WithContext("format", string(f)).
			Build()
	}
	return o.Path, nil
}

func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
