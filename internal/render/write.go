package render

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/logfields"
	"github.com/kevinreber/sitecfg/internal/site"
)

// WriteFile renders cfg and replaces path atomically. A failed render never
// truncates an existing file. It reports whether the content changed.
func WriteFile(path string, r Renderer, cfg site.Config) (bool, error) {
	data, err := Bytes(r, cfg)
	if err != nil {
		return false, err
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		slog.Debug("Rendered config unchanged", logfields.Path(path), logfields.Format(string(r.Format())))
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("dir", dir).Build()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "create temp file").
			WithContext("dir", dir).Build()
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, errors.WrapError(err, errors.CategoryFileSystem, "write temp file").Build()
	}
	if err := tmp.Close(); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "close temp file").Build()
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "chmod temp file").Build()
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "replace output file").
			WithContext("path", path).Build()
	}

	slog.Info("Wrote site configuration", logfields.Path(path), logfields.Format(string(r.Format())), logfields.Bytes(len(data)))
	return true, nil
}
