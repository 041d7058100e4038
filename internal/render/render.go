// Package render encodes the site record in the shapes the external builder
// accepts and decodes the data formats back.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/site"
)

// Renderer writes a site record in one format.
type Renderer interface {
	Format() Format
	Render(w io.Writer, cfg site.Config) error
}

// Option configures renderers built by ForFormat.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the clock used to recognise the current year in the copyright.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// ForFormat returns the renderer for f.
func ForFormat(f Format, opts ...Option) (Renderer, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	switch f {
	case FormatJSON:
		return JSONRenderer{}, nil
	case FormatYAML:
		return YAMLRenderer{}, nil
	case FormatTS:
		return NewTSRenderer(o.now), nil
	default:
		return nil, errors.RenderError("unsupported output format").WithContext("format", string(f)).Build()
	}
}

// JSONRenderer writes indented JSON using the builder's key names.
type JSONRenderer struct{}

func (JSONRenderer) Format() Format { return FormatJSON }

func (JSONRenderer) Render(w io.Writer, cfg site.Config) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "encode json").Build()
	}
	return nil
}

// YAMLRenderer writes YAML using the builder's key names.
type YAMLRenderer struct{}

func (YAMLRenderer) Format() Format { return FormatYAML }

func (YAMLRenderer) Render(w io.Writer, cfg site.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "encode yaml").Build()
	}
	if err := enc.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "flush yaml").Build()
	}
	return nil
}

// Parse decodes a JSON or YAML encoded record.
func Parse(f Format, r io.Reader) (site.Config, error) {
	var cfg site.Config
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, errors.WrapError(err, errors.CategoryFileSystem, "read encoded config").Build()
	}

	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	default:
		return cfg, errors.RenderError("format cannot be parsed back").WithContext("format", string(f)).Build()
	}
	if err != nil {
		return cfg, errors.WrapError(err, errors.CategoryRender, fmt.Sprintf("decode %s", f)).Build()
	}
	return cfg, nil
}

// Bytes renders cfg into memory.
func Bytes(r Renderer, cfg site.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
