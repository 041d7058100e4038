package render

import (
	"path/filepath"
	"strings"

	"github.com/kevinreber/sitecfg/internal/foundation"
)

// Format is an output encoding for the site record.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTS   Format = "ts"
)

var formatNormalizer = foundation.NewNormalizer(map[string]Format{
	"json":       FormatJSON,
	"yaml":       FormatYAML,
	"yml":        FormatYAML,
	"ts":         FormatTS,
	"typescript": FormatTS,
}, FormatTS)

// ParseFormat converts user input to a Format.
func ParseFormat(raw string) (Format, error) {
	return formatNormalizer.NormalizeWithError(raw)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Extension returns the conventional file extension, with the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// DefaultFileName is the file the external builder loads for this format.
func (f Format) DefaultFileName() string {
	if f == FormatTS {
		return "docusaurus.config.ts"
	}
	return "docusaurus.config" + f.Extension()
}
