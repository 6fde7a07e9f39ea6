package template

import (
	"io/fs"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const defaultTemplatesDir = "templates"

// defaultCachePath is the known location consulted before scanning sources:
// the precompiled template cache under the user cache directory.
func defaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "go-asttpl", "templates.json")
}

// Option customises an Engine.
type Option func(*Engine)

// WithTemplatesDir points the source fallback at a directory on disk.
// Defaults to "templates" relative to the working directory.
func WithTemplatesDir(dir string) Option {
	return func(e *Engine) {
		e.dir = dir
	}
}

// WithFS supplies the template sources as an fs.FS (embedded templates,
// test fixtures). Takes precedence over WithTemplatesDir.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.fsys = fsys
	}
}

// WithCacheFile overrides the precompiled cache location.
func WithCacheFile(path string) Option {
	return func(e *Engine) {
		e.cachePath = path
	}
}

// WithoutCache skips the precompiled cache lookup entirely and always
// parses template sources.
func WithoutCache() Option {
	return func(e *Engine) {
		e.disableCache = true
	}
}

// WithLogger injects a logger for load-time diagnostics. The default is a
// nop logger; instantiation itself never logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrictPlaceholders makes Instantiate fail with ErrUnusedPlaceholder
// when a supplied placeholder matches nothing in the template tree. The
// default mode silently ignores unmatched placeholders, which keeps partial
// instantiation possible but can mask typos in placeholder names.
func WithStrictPlaceholders() Option {
	return func(e *Engine) {
		e.strict = true
	}
}
