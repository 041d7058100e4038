package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath     = "path"
	KeyFormat   = "format"
	KeyBytes    = "bytes"
	KeyRoute    = "route"
	KeyHref     = "href"
	KeyField    = "field"
	KeyFile     = "file"
	KeyPolicy   = "policy"
	KeySeverity = "severity"
	KeySnapshot = "snapshot"
	KeyURL      = "url"
	KeyCount    = "count"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Bytes(n int) slog.Attr           { return slog.Int(KeyBytes, n) }
func Route(r string) slog.Attr        { return slog.String(KeyRoute, r) }
func Href(h string) slog.Attr         { return slog.String(KeyHref, h) }
func Field(f string) slog.Attr        { return slog.String(KeyField, f) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func Severity(s string) slog.Attr     { return slog.String(KeySeverity, s) }
func Snapshot(s string) slog.Attr     { return slog.String(KeySnapshot, s) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
